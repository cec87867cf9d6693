package controllers

import (
	"net/http"
	"strings"

	"hotel-marketplace/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// HotelController serves the consumer-facing list and detail.
type HotelController struct {
	SearchSvc *services.SearchService
}

func NewHotelController(svc *services.SearchService) *HotelController {
	return &HotelController{SearchSvc: svc}
}

func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (c *HotelController) List(ctx *gin.Context) {
	params := services.SearchParams{
		City:     ctx.Query("city"),
		Keyword:  ctx.Query("keyword"),
		MinPrice: optionalFloat(ctx.Query("minPrice")),
		MaxPrice: optionalFloat(ctx.Query("maxPrice")),
		Stars:    services.ParseStars(ctx.Query("star")),
		Sort:     ctx.Query("sort"),
		Page:     cast.ToInt(ctx.Query("page")),
		PageSize: cast.ToInt(ctx.Query("pageSize")),
	}
	page, err := c.SearchSvc.List(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *HotelController) Detail(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.SearchSvc.Detail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
