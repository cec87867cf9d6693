package services

import (
	"context"
	"errors"
	"strings"

	"hotel-marketplace/models"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// Sort keys accepted by the hotel list.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortScoreDesc = "score_desc"
)

// SearchParams are the public list filters. Nil bounds mean unbounded.
type SearchParams struct {
	City     string
	Keyword  string
	MinPrice *float64
	MaxPrice *float64
	Stars    []int
	Sort     string
	Page     int
	PageSize int
	// Status overrides the approved-only default; only admin callers set it.
	Status string
}

type HotelListItem struct {
	models.Hotel
	MinPrice *float64 `json:"minPrice"`
}

type HotelPage struct {
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int64           `json:"total"`
	Items    []HotelListItem `json:"items"`
}

type HotelDetail struct {
	Hotel models.Hotel  `json:"hotel"`
	Rooms []models.Room `json:"rooms"`
}

// SearchService resolves the consumer-facing hotel list and detail.
type SearchService struct {
	DB *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{DB: db}
}

// ParseStars reads a csv star filter, keeping only values in 1..5.
func ParseStars(csv string) []int {
	var out []int
	seen := map[int]bool{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := cast.ToIntE(part)
		if err != nil || n < 1 || n > 5 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ClampPage bounds page to >=1 and pageSize to [1,50]; zero size means default.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// effectivePrice is the cached min_price, or the live cheapest room when
// the cache was never filled.
const effectivePrice = "COALESCE(hotels.min_price, (SELECT MIN(rooms.price) FROM rooms WHERE rooms.hotel_id = hotels.id))"

func orderFor(sort string) string {
	switch sort {
	case SortPriceAsc:
		return effectivePrice + " ASC, id DESC"
	case SortPriceDesc:
		return effectivePrice + " DESC, id DESC"
	case SortScoreDesc:
		return "score DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (s *SearchService) List(ctx context.Context, p SearchParams) (HotelPage, error) {
	page, pageSize := ClampPage(p.Page, p.PageSize)

	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = models.StatusApproved
	} else if !validStatus(status) {
		return HotelPage{}, BadRequest("invalid status")
	}

	q := s.DB.WithContext(ctx).Model(&models.Hotel{}).Where("status = ?", status)
	if city := strings.TrimSpace(p.City); city != "" {
		q = q.Where("city LIKE ?", "%"+city+"%")
	}
	if kw := strings.TrimSpace(p.Keyword); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("name_cn LIKE ? OR name_en LIKE ? OR address LIKE ?", like, like, like)
	}
	if p.MinPrice != nil {
		q = q.Where(effectivePrice+" >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		q = q.Where(effectivePrice+" <= ?", *p.MaxPrice)
	}
	if len(p.Stars) > 0 {
		q = q.Where("star IN ?", p.Stars)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return HotelPage{}, err
	}

	var hotels []models.Hotel
	if err := q.Order(orderFor(p.Sort)).Offset((page - 1) * pageSize).Limit(pageSize).Find(&hotels).Error; err != nil {
		return HotelPage{}, err
	}

	live, err := s.liveMinPrices(ctx, hotels)
	if err != nil {
		return HotelPage{}, err
	}
	items := make([]HotelListItem, 0, len(hotels))
	for _, h := range hotels {
		price := h.MinPrice
		if price == nil {
			if v, ok := live[h.ID]; ok {
				price = &v
			}
		}
		items = append(items, HotelListItem{Hotel: h, MinPrice: price})
	}

	return HotelPage{Page: page, PageSize: pageSize, Total: total, Items: items}, nil
}

// liveMinPrices computes MIN(room.price) for hotels without a cached value.
func (s *SearchService) liveMinPrices(ctx context.Context, hotels []models.Hotel) (map[uint]float64, error) {
	var ids []uint
	for _, h := range hotels {
		if h.MinPrice == nil {
			ids = append(ids, h.ID)
		}
	}
	out := map[uint]float64{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		HotelID  uint
		MinPrice float64
	}
	err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Select("hotel_id, MIN(price) AS min_price").
		Where("hotel_id IN ?", ids).
		Group("hotel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.HotelID] = r.MinPrice
	}
	return out, nil
}

// Detail returns an approved hotel with its rooms, cheapest first.
func (s *SearchService) Detail(ctx context.Context, id uint) (HotelDetail, error) {
	var hotel models.Hotel
	err := s.DB.WithContext(ctx).Where("id = ? AND status = ?", id, models.StatusApproved).First(&hotel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HotelDetail{}, NotFound("hotel not found")
		}
		return HotelDetail{}, err
	}
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Where("hotel_id = ?", id).Order("price ASC, id ASC").Find(&rooms).Error; err != nil {
		return HotelDetail{}, err
	}
	if hotel.MinPrice == nil {
		hotel.MinPrice = MinRoomPrice(rooms)
	}
	return HotelDetail{Hotel: hotel, Rooms: rooms}, nil
}
