package assistant

import "hotel-marketplace/models"

// HotelSummary is the slice of a hotel the client keeps between turns.
type HotelSummary struct {
	ID      uint   `json:"id"`
	NameCn  string `json:"nameCn"`
	NameEn  string `json:"nameEn"`
	City    string `json:"city"`
	Address string `json:"address"`
	Star    int    `json:"star"`
}

// ChatContext is the short-term memory of a chat session. The server keeps
// no copy: it arrives with every request and the updated value goes back
// in every response.
type ChatContext struct {
	LastHotels  []HotelSummary `json:"lastHotels"`
	LastHotelID uint           `json:"lastHotelId"`
}

func summarize(h models.Hotel) HotelSummary {
	return HotelSummary{
		ID:      h.ID,
		NameCn:  h.NameCn,
		NameEn:  h.NameEn,
		City:    h.City,
		Address: h.Address,
		Star:    h.Star,
	}
}

// focus returns the context after a turn about a single hotel: it becomes
// the last referenced hotel and the surfaced list is kept for ordinals.
func (c ChatContext) focus(h models.Hotel) ChatContext {
	out := ChatContext{LastHotels: c.LastHotels, LastHotelID: h.ID}
	if len(out.LastHotels) == 0 {
		out.LastHotels = []HotelSummary{summarize(h)}
	}
	return out
}

func (c ChatContext) normalized() ChatContext {
	if c.LastHotels == nil {
		c.LastHotels = []HotelSummary{}
	}
	return c
}
