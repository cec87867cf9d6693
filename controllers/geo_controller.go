package controllers

import (
	"net/http"
	"strings"

	"hotel-marketplace/services"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type geocodePayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

type GeoController struct {
	GeoSvc *services.GeoService
}

func NewGeoController(svc *services.GeoService) *GeoController {
	return &GeoController{GeoSvc: svc}
}

func (c *GeoController) Geocode(ctx *gin.Context) {
	var payload geocodePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	result, err := c.GeoSvc.Geocode(ctx.Request.Context(), payload.Address, payload.City)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *GeoController) Nearby(ctx *gin.Context) {
	lngRaw, latRaw := strings.TrimSpace(ctx.Query("lng")), strings.TrimSpace(ctx.Query("lat"))
	lng, errLng := cast.ToFloat64E(lngRaw)
	lat, errLat := cast.ToFloat64E(latRaw)
	if lngRaw == "" || latRaw == "" || errLng != nil || errLat != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "lng and lat are required numbers", nil)
		return
	}
	raw, err := c.GeoSvc.Nearby(ctx.Request.Context(), lng, lat, ctx.Query("keywords"), cast.ToInt(ctx.Query("radius")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, raw)
}
