package services

import (
	"context"
	"errors"
	"strings"

	"hotel-marketplace/models"
	"hotel-marketplace/storage"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HotelInput is the merchant form for create and update. Media and
// facility fields accept a single string or a list; any status field sent
// by the client is ignored.
type HotelInput struct {
	NameCn      string                   `json:"nameCn"`
	NameEn      string                   `json:"nameEn"`
	City        string                   `json:"city"`
	Address     string                   `json:"address"`
	Star        interface{}              `json:"star"`
	OpenTime    string                   `json:"openTime"`
	Description *string                  `json:"description"`
	Facilities  interface{}              `json:"facilities"`
	Latitude    *float64                 `json:"latitude"`
	Longitude   *float64                 `json:"longitude"`
	Images      interface{}              `json:"images"`
	Videos      interface{}              `json:"videos"`
	Rooms       []map[string]interface{} `json:"rooms"`
}

// ListingService is the merchant side of listings: create, edit, read own.
type ListingService struct {
	DB      *gorm.DB
	Objects storage.ObjectStore
	Cache   CachePurger
}

func NewListingService(db *gorm.DB, objects storage.ObjectStore) *ListingService {
	return &ListingService{DB: db, Objects: objects}
}

// normalizeStrings turns a loosely typed JSON value into a URL/tag list.
// present is false when the value was absent (nil). A single string becomes
// a one-element list; non-string list entries and other types are dropped.
func normalizeStrings(v interface{}) (out []string, present bool) {
	if v == nil {
		return nil, false
	}
	out = []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out, true
}

func optionalString(m map[string]interface{}, keys ...string) *string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			s := strings.TrimSpace(cast.ToString(v))
			if s != "" {
				return &s
			}
		}
	}
	return nil
}

// buildRooms converts the room form entries. An entry needs a name or a
// price; available always equals total.
func buildRooms(entries []map[string]interface{}) []models.Room {
	rooms := make([]models.Room, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		name := ""
		if p := optionalString(e, "name"); p != nil {
			name = *p
		}
		price, priceErr := cast.ToFloat64E(e["price"])
		hasPrice := e["price"] != nil && priceErr == nil
		if name == "" && !hasPrice {
			continue
		}
		if price < 0 {
			price = 0
		}
		total := cast.ToInt(e["totalRooms"])
		if total < 0 {
			total = 0
		}
		rooms = append(rooms, models.Room{
			Name:           name,
			Price:          price,
			BedType:        optionalString(e, "bedType"),
			Area:           optionalString(e, "area"),
			Breakfast:      optionalString(e, "breakfast"),
			TotalRooms:     total,
			AvailableRooms: total,
		})
	}
	return rooms
}

// MinRoomPrice is min(price) over rooms, nil when there are none.
func MinRoomPrice(rooms []models.Room) *float64 {
	if len(rooms) == 0 {
		return nil
	}
	min := rooms[0].Price
	for _, r := range rooms[1:] {
		if r.Price < min {
			min = r.Price
		}
	}
	return &min
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func parseStar(v interface{}) (int, error) {
	star, err := cast.ToIntE(v)
	if err != nil || star < 1 || star > 5 {
		return 0, BadRequest("star must be between 1 and 5")
	}
	return star, nil
}

func (s *ListingService) CreateHotel(ctx context.Context, ownerID uint, in HotelInput) (models.Hotel, error) {
	in.NameCn = strings.TrimSpace(in.NameCn)
	in.NameEn = strings.TrimSpace(in.NameEn)
	in.Address = strings.TrimSpace(in.Address)
	in.OpenTime = strings.TrimSpace(in.OpenTime)
	if in.NameCn == "" || in.NameEn == "" || in.Address == "" || in.OpenTime == "" || in.Star == nil {
		return models.Hotel{}, BadRequest("nameCn, nameEn, address, star and openTime are required")
	}
	star, err := parseStar(in.Star)
	if err != nil {
		return models.Hotel{}, err
	}

	images, _ := normalizeStrings(in.Images)
	videos, _ := normalizeStrings(in.Videos)
	facilities, _ := normalizeStrings(in.Facilities)
	rooms := buildRooms(in.Rooms)

	hotel := models.Hotel{
		MerchantID:  ownerID,
		NameCn:      in.NameCn,
		NameEn:      in.NameEn,
		City:        strings.TrimSpace(in.City),
		Address:     in.Address,
		Star:        star,
		OpenTime:    in.OpenTime,
		Description: derefString(in.Description),
		Facilities:  facilities,
		Images:      images,
		Videos:      videos,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		MinPrice:    MinRoomPrice(rooms),
		Status:      models.StatusPending,
		Rooms:       rooms,
	}
	if err := s.DB.WithContext(ctx).Create(&hotel).Error; err != nil {
		return models.Hotel{}, err
	}
	zap.L().Info("hotel created", zap.Uint("hotel_id", hotel.ID), zap.Uint("merchant_id", ownerID), zap.Int("rooms", len(rooms)))
	afterChange(ctx, s.Cache, nil, nil)
	return hotel, nil
}

// UpdateHotel applies a merchant edit. Non-empty fields replace stored
// values; a supplied room list replaces the whole room set. The hotel
// always goes back to pending review. Media objects no longer referenced
// are deleted afterwards on a best-effort basis.
func (s *ListingService) UpdateHotel(ctx context.Context, ownerID, hotelID uint, in HotelInput) (models.Hotel, error) {
	hotel, err := s.GetOwn(ctx, ownerID, hotelID)
	if err != nil {
		return models.Hotel{}, err
	}
	oldMedia := append(append([]string{}, hotel.Images...), hotel.Videos...)

	if v := strings.TrimSpace(in.NameCn); v != "" {
		hotel.NameCn = v
	}
	if v := strings.TrimSpace(in.NameEn); v != "" {
		hotel.NameEn = v
	}
	if v := strings.TrimSpace(in.City); v != "" {
		hotel.City = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		hotel.Address = v
	}
	if v := strings.TrimSpace(in.OpenTime); v != "" {
		hotel.OpenTime = v
	}
	// nil leaves the description alone; an empty string clears it
	if in.Description != nil {
		hotel.Description = strings.TrimSpace(*in.Description)
	}
	if in.Star != nil {
		star, err := parseStar(in.Star)
		if err != nil {
			return models.Hotel{}, err
		}
		hotel.Star = star
	}
	if in.Latitude != nil {
		hotel.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		hotel.Longitude = in.Longitude
	}
	if list, ok := normalizeStrings(in.Facilities); ok {
		hotel.Facilities = list
	}
	if list, ok := normalizeStrings(in.Images); ok {
		hotel.Images = list
	}
	if list, ok := normalizeStrings(in.Videos); ok {
		hotel.Videos = list
	}

	hotel.Status = models.StatusPending
	hotel.RejectReason = ""

	var newRooms []models.Room
	replaceRooms := in.Rooms != nil
	if replaceRooms {
		newRooms = buildRooms(in.Rooms)
		hotel.MinPrice = MinRoomPrice(newRooms)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceRooms {
			if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.Room{}).Error; err != nil {
				return err
			}
			for i := range newRooms {
				newRooms[i].HotelID = hotel.ID
			}
			if len(newRooms) > 0 {
				if err := tx.Create(&newRooms).Error; err != nil {
					return err
				}
			}
		}
		hotel.Rooms = nil
		return tx.Omit(clause.Associations).Save(&hotel).Error
	})
	if err != nil {
		return models.Hotel{}, err
	}

	if replaceRooms {
		hotel.Rooms = newRooms
	} else if err := s.DB.WithContext(ctx).Where("hotel_id = ?", hotel.ID).Order("id").Find(&hotel.Rooms).Error; err != nil {
		return models.Hotel{}, err
	}

	newMedia := append(append([]string{}, hotel.Images...), hotel.Videos...)
	s.removeOrphanedMedia(ctx, hotel.ID, oldMedia, newMedia)
	afterChange(ctx, s.Cache, nil, nil)
	return hotel, nil
}

// removeOrphanedMedia deletes objects referenced before an edit but not
// after it. A failure on one object is logged and the rest continue.
func (s *ListingService) removeOrphanedMedia(ctx context.Context, hotelID uint, before, after []string) {
	if s.Objects == nil {
		return
	}
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	for _, u := range before {
		if keep[u] {
			continue
		}
		bucket, name, ok := storage.ParseMediaURL(u)
		if !ok {
			continue
		}
		if err := s.Objects.Remove(ctx, bucket, name); err != nil {
			zap.L().Warn("orphaned media delete failed",
				zap.Uint("hotel_id", hotelID), zap.String("bucket", bucket), zap.String("object", name), zap.Error(err))
			continue
		}
		keep[u] = true
	}
}

func (s *ListingService) ListOwn(ctx context.Context, ownerID uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := s.DB.WithContext(ctx).
		Preload("Rooms").
		Where("merchant_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&hotels).Error
	return hotels, err
}

// GetOwn loads a hotel with its rooms; a hotel owned by someone else is
// Forbidden rather than NotFound.
func (s *ListingService) GetOwn(ctx context.Context, ownerID, hotelID uint) (models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&hotel, hotelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, NotFound("hotel not found")
		}
		return models.Hotel{}, err
	}
	if hotel.MerchantID != ownerID {
		return models.Hotel{}, Forbidden("not the owner of this hotel")
	}
	return hotel, nil
}
