// Package assistant answers hotel questions in Chinese free text. A fixed
// rule table routes each message to a store-backed intent; whatever the
// table cannot route goes to a hosted LLM.
package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotel-marketplace/models"
	"hotel-marketplace/services"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// CityLimit caps a city query result.
const CityLimit = 20

// Result is one assistant turn. Context is what the client must send back
// with the next message.
type Result struct {
	Reply   string      `json:"reply"`
	Intent  Intent      `json:"intent"`
	Data    interface{} `json:"data"`
	Context ChatContext `json:"context"`
}

// CityHotelItem is the data row of a city query.
type CityHotelItem struct {
	HotelSummary
	MinPrice     *float64     `json:"minPrice"`
	CheapestRoom *models.Room `json:"cheapestRoom"`
}

// HotelRooms is the data payload of the inventory and rooms intents.
type HotelRooms struct {
	Hotel HotelSummary  `json:"hotel"`
	Rooms []models.Room `json:"rooms"`
}

// Resolver routes a message through the intent table and answers it.
type Resolver struct {
	Store HotelStore
	LLM   Completer
}

func NewResolver(store HotelStore, llm Completer) *Resolver {
	return &Resolver{Store: store, LLM: llm}
}

func (r *Resolver) Chat(ctx context.Context, message string, cctx ChatContext) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, services.BadRequest("message is required")
	}
	cctx = cctx.normalized()

	m := Classify(message, cctx)
	switch m.Intent {
	case IntentCityHotels:
		return r.cityHotels(ctx, m, cctx)
	case IntentHotelInfo:
		return r.hotelInfo(ctx, m, cctx)
	case IntentInventory:
		return r.inventory(ctx, m, cctx)
	case IntentHotelRooms:
		return r.hotelRooms(ctx, m, cctx)
	default:
		return r.fallback(ctx, message, cctx)
	}
}

func (r *Resolver) cityHotels(ctx context.Context, m Match, cctx ChatContext) (Result, error) {
	hits, err := r.Store.HotelsByCity(ctx, m.City, CityLimit)
	if err != nil {
		return Result{}, err
	}
	items := make([]CityHotelItem, len(hits))
	summaries := make([]HotelSummary, len(hits))
	for i, hit := range hits {
		summaries[i] = summarize(hit.Hotel)
		item := CityHotelItem{HotelSummary: summaries[i], MinPrice: hit.Hotel.MinPrice, CheapestRoom: hit.Cheapest}
		if hit.Cheapest != nil {
			p := hit.Cheapest.Price
			item.MinPrice = &p
		}
		items[i] = item
	}
	return Result{
		Reply:   formatCityHotels(m.City, hits),
		Intent:  IntentCityHotels,
		Data:    items,
		Context: ChatContext{LastHotels: summaries},
	}, nil
}

// resolveHotel turns a HotelRef into an approved hotel. ok is false when the
// reply has already been decided (unresolved reference or no match).
func (r *Resolver) resolveHotel(ctx context.Context, m Match) (hotel models.Hotel, reply string, ok bool, err error) {
	ref := m.Hotel
	if ref.Referential {
		if ref.ID == 0 {
			return models.Hotel{}, replyAskWhichHotel, false, nil
		}
		hotel, err = r.Store.ByID(ctx, ref.ID)
	} else {
		hotel, err = r.Store.FindByName(ctx, ref.Name)
	}
	if errors.Is(err, ErrHotelNotFound) {
		return models.Hotel{}, replyHotelNotFound(ref.Name), false, nil
	}
	if err != nil {
		return models.Hotel{}, "", false, err
	}
	return hotel, "", true, nil
}

func (r *Resolver) hotelInfo(ctx context.Context, m Match, cctx ChatContext) (Result, error) {
	hotel, reply, ok, err := r.resolveHotel(ctx, m)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Reply: reply, Intent: IntentHotelInfo, Context: cctx}, nil
	}
	return Result{
		Reply:   formatHotelInfo(hotel),
		Intent:  IntentHotelInfo,
		Data:    hotel,
		Context: cctx.focus(hotel),
	}, nil
}

func (r *Resolver) inventory(ctx context.Context, m Match, cctx ChatContext) (Result, error) {
	hotel, reply, ok, err := r.resolveHotel(ctx, m)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Reply: reply, Intent: IntentInventory, Context: cctx}, nil
	}
	rooms, err := r.Store.RoomsOf(ctx, hotel.ID)
	if err != nil {
		return Result{}, err
	}
	next := cctx.focus(hotel)
	data := HotelRooms{Hotel: summarize(hotel), Rooms: []models.Room{}}

	if len(rooms) == 0 && m.RoomName == "" {
		return Result{Reply: formatRooms(hotel, nil), Intent: IntentInventory, Data: data, Context: next}, nil
	}

	named := rooms
	if m.RoomName != "" {
		named = filterRooms(rooms, func(room models.Room) bool {
			return strings.Contains(strings.ToLower(room.Name), strings.ToLower(m.RoomName))
		})
		if len(named) == 0 {
			return Result{Reply: replyNoRoomNamed(hotel, m.RoomName), Intent: IntentInventory, Data: data, Context: next}, nil
		}
	}
	// Availability mirrors capacity; there is no reservation flow decrementing it.
	inStock := filterRooms(named, func(room models.Room) bool { return room.AvailableRooms > 0 })
	if len(inStock) == 0 {
		return Result{Reply: replyNoStock(hotel, m.RoomName), Intent: IntentInventory, Data: data, Context: next}, nil
	}
	data.Rooms = inStock
	return Result{Reply: formatInventory(hotel, inStock), Intent: IntentInventory, Data: data, Context: next}, nil
}

func (r *Resolver) hotelRooms(ctx context.Context, m Match, cctx ChatContext) (Result, error) {
	hotel, reply, ok, err := r.resolveHotel(ctx, m)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Reply: reply, Intent: IntentHotelRooms, Context: cctx}, nil
	}
	rooms, err := r.Store.RoomsOf(ctx, hotel.ID)
	if err != nil {
		return Result{}, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return Result{
		Reply:   formatRooms(hotel, rooms),
		Intent:  IntentHotelRooms,
		Data:    HotelRooms{Hotel: summarize(hotel), Rooms: rooms},
		Context: cctx.focus(hotel),
	}, nil
}

func (r *Resolver) fallback(ctx context.Context, message string, cctx ChatContext) (Result, error) {
	if r.LLM == nil {
		return Result{}, services.ServerError("llm is not configured", ErrMissingCredential)
	}
	reply, err := r.LLM.Complete(ctx, message)
	if err != nil {
		if appErr := mapLLMError(err); appErr != nil {
			return Result{}, appErr
		}
		zap.L().Warn("llm fallback failed", zap.Error(err))
		return Result{Reply: replyLLMFailed, Intent: IntentLLM, Context: cctx}, nil
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = replyLLMFailed
	}
	return Result{Reply: reply, Intent: IntentLLM, Context: cctx}, nil
}

type httpCoder interface {
	HTTPCode() int
}

// mapLLMError returns the error to surface for a failed completion, or nil
// when the turn should degrade to the generic failure reply.
func mapLLMError(err error) error {
	if errors.Is(err, ErrMissingCredential) {
		return services.ServerError("llm api key is not configured", err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code > 0 {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		return services.Upstream(gerr.Code, msg, err)
	}
	var coder httpCoder
	if errors.As(err, &coder) && coder.HTTPCode() > 0 {
		return services.Upstream(coder.HTTPCode(), err.Error(), err)
	}
	return nil
}

func filterRooms(rooms []models.Room, keep func(models.Room) bool) []models.Room {
	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if keep(room) {
			out = append(out, room)
		}
	}
	return out
}
