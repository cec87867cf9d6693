package controllers

import (
	"context"
	"net/http"

	"hotel-marketplace/models"
	"hotel-marketplace/services"

	"github.com/gin-gonic/gin"
)

type rejectPayload struct {
	Reason string `json:"reason"`
}

// AdminController is the audit console: list by status and drive the
// hotel lifecycle.
type AdminController struct {
	AuditSvc *services.AuditService
}

func NewAdminController(svc *services.AuditService) *AdminController {
	return &AdminController{AuditSvc: svc}
}

func (c *AdminController) ListAudit(ctx *gin.Context) {
	hotels, err := c.AuditSvc.List(ctx.Query("status"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	ctx.JSON(http.StatusOK, gin.H{"items": hotels})
}

func (c *AdminController) Approve(ctx *gin.Context) {
	c.transition(ctx, c.AuditSvc.Approve)
}

func (c *AdminController) Reject(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var payload rejectPayload
	// an empty or missing body falls back to the default reason
	_ = ctx.ShouldBindJSON(&payload)
	hotel, err := c.AuditSvc.Reject(ctx.Request.Context(), id, payload.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (c *AdminController) Offline(ctx *gin.Context) {
	c.transition(ctx, c.AuditSvc.Offline)
}

func (c *AdminController) Online(ctx *gin.Context) {
	c.transition(ctx, c.AuditSvc.Online)
}

func (c *AdminController) transition(ctx *gin.Context, apply func(context.Context, uint) (models.Hotel, error)) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	hotel, err := apply(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hotel": hotel})
}
