package models

import (
	"time"

	"gorm.io/datatypes"
)

// Hotel lifecycle status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusOffline  = "offline"
)

// Hotel is a single property listing owned by one merchant.
type Hotel struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MerchantID uint `gorm:"column:merchant_id;index;not null" json:"merchantId"`

	NameCn      string  `gorm:"column:name_cn;size:128;index" json:"nameCn"`
	NameEn      string  `gorm:"column:name_en;size:128" json:"nameEn"`
	City        string  `gorm:"size:64;index" json:"city"`
	Address     string  `gorm:"size:255" json:"address"`
	Star        int     `gorm:"not null;default:0" json:"star"`
	OpenTime    string  `gorm:"column:open_time;size:32" json:"openTime"`
	Description string  `gorm:"type:text" json:"description"`
	Score       float64 `gorm:"not null;default:0" json:"score"`

	Facilities datatypes.JSONSlice[string] `json:"facilities"`
	Images     datatypes.JSONSlice[string] `json:"images"`
	Videos     datatypes.JSONSlice[string] `json:"videos"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// MinPrice caches min(rooms.price) for list sorting; nil when no rooms.
	MinPrice *float64 `gorm:"column:min_price;index" json:"minPrice"`

	Status       string `gorm:"size:16;index;not null;default:pending" json:"status"`
	RejectReason string `gorm:"column:reject_reason;size:255" json:"rejectReason"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms []Room `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}
