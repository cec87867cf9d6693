package controllers

import (
	"net/http"

	"hotel-marketplace/middleware"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type profilePayload struct {
	Username string `json:"username"`
}

type passwordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var payload credentialsPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	session, err := c.AuthSvc.Register(payload.Username, payload.Password, payload.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var payload credentialsPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	session, err := c.AuthSvc.Login(payload.Username, payload.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.AuthSvc.Me(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var payload profilePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	session, err := c.AuthSvc.UpdateProfile(middleware.UserID(ctx), payload.Username)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var payload passwordPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	if err := c.AuthSvc.ChangePassword(middleware.UserID(ctx), payload.OldPassword, payload.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
