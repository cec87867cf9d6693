package assistant

import (
	"context"
	"errors"

	"hotel-marketplace/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrHotelNotFound is returned when a name or id resolves to no approved hotel.
var ErrHotelNotFound = errors.New("hotel not found")

// CityHotel is a city search hit with its cheapest room, if any.
type CityHotel struct {
	Hotel    models.Hotel
	Cheapest *models.Room
}

// HotelStore is the read side of the listing store the assistant queries.
// Only approved hotels are ever returned.
type HotelStore interface {
	HotelsByCity(ctx context.Context, city string, limit int) ([]CityHotel, error)
	FindByName(ctx context.Context, name string) (models.Hotel, error)
	ByID(ctx context.Context, id uint) (models.Hotel, error)
	RoomsOf(ctx context.Context, hotelID uint) ([]models.Room, error)
}

// GormStore implements HotelStore over the shared gorm handle.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) approved(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Hotel{}).Where("status = ?", models.StatusApproved)
}

func (s *GormStore) HotelsByCity(ctx context.Context, city string, limit int) ([]CityHotel, error) {
	var hotels []models.Hotel
	err := s.approved(ctx).
		Where("city LIKE ?", "%"+city+"%").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&hotels).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query hotels by city")
	}
	if len(hotels) == 0 {
		return []CityHotel{}, nil
	}

	ids := make([]uint, len(hotels))
	for i, h := range hotels {
		ids[i] = h.ID
	}
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Where("hotel_id IN ?", ids).Order("price ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "query cheapest rooms")
	}
	cheapest := make(map[uint]*models.Room, len(hotels))
	for i := range rooms {
		if _, ok := cheapest[rooms[i].HotelID]; !ok {
			cheapest[rooms[i].HotelID] = &rooms[i]
		}
	}

	out := make([]CityHotel, len(hotels))
	for i, h := range hotels {
		out[i] = CityHotel{Hotel: h, Cheapest: cheapest[h.ID]}
	}
	return out, nil
}

// FindByName tries exact Chinese name, exact English name, then substring
// on Chinese and English in that order.
func (s *GormStore) FindByName(ctx context.Context, name string) (models.Hotel, error) {
	like := "%" + name + "%"
	attempts := []struct {
		query string
		arg   string
	}{
		{"name_cn = ?", name},
		{"name_en = ?", name},
		{"name_cn LIKE ?", like},
		{"name_en LIKE ?", like},
	}
	for _, a := range attempts {
		var hotel models.Hotel
		err := s.approved(ctx).Where(a.query, a.arg).Order("id ASC").First(&hotel).Error
		if err == nil {
			return hotel, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, pkgerrors.Wrapf(err, "find hotel by %s", a.query)
		}
	}
	return models.Hotel{}, ErrHotelNotFound
}

func (s *GormStore) ByID(ctx context.Context, id uint) (models.Hotel, error) {
	var hotel models.Hotel
	err := s.approved(ctx).Where("id = ?", id).First(&hotel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Hotel{}, ErrHotelNotFound
	}
	if err != nil {
		return models.Hotel{}, pkgerrors.Wrap(err, "find hotel by id")
	}
	return hotel, nil
}

func (s *GormStore) RoomsOf(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("price ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "query rooms")
	}
	return rooms, nil
}
