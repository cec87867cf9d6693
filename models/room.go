package models

import "time"

// Room is a bookable room type inside a hotel. AvailableRooms always mirrors
// TotalRooms: there is no reservation flow that decrements it.
type Room struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HotelID uint `gorm:"column:hotel_id;index;not null" json:"hotelId"`

	Name      string  `gorm:"size:128" json:"name"`
	Price     float64 `gorm:"not null;default:0" json:"price"`
	BedType   *string `gorm:"column:bed_type;size:64" json:"bedType"`
	Area      *string `gorm:"size:32" json:"area"`
	Breakfast *string `gorm:"size:64" json:"breakfast"`

	TotalRooms     int `gorm:"column:total_rooms;not null;default:0" json:"totalRooms"`
	AvailableRooms int `gorm:"column:available_rooms;not null;default:0" json:"availableRooms"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
