package controllers

import (
	"net/http"

	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// MerchantController is the listing side of the merchant console.
type MerchantController struct {
	ListingSvc *services.ListingService
}

func NewMerchantController(svc *services.ListingService) *MerchantController {
	return &MerchantController{ListingSvc: svc}
}

func (c *MerchantController) ListOwn(ctx *gin.Context) {
	hotels, err := c.ListingSvc.ListOwn(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	ctx.JSON(http.StatusOK, gin.H{"items": hotels})
}

func (c *MerchantController) GetOwn(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	hotel, err := c.ListingSvc.GetOwn(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (c *MerchantController) Create(ctx *gin.Context) {
	var in services.HotelInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	hotel, err := c.ListingSvc.CreateHotel(ctx.Request.Context(), middleware.UserID(ctx), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"hotel": hotel})
}

func (c *MerchantController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var in services.HotelInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	hotel, err := c.ListingSvc.UpdateHotel(ctx.Request.Context(), middleware.UserID(ctx), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hotel": hotel})
}
