package controllers

import (
	"net/http"

	"hotel-marketplace/assistant"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type chatPayload struct {
	Message string                `json:"message"`
	Context assistant.ChatContext `json:"context"`
}

type AssistantController struct {
	Resolver *assistant.Resolver
}

func NewAssistantController(resolver *assistant.Resolver) *AssistantController {
	return &AssistantController{Resolver: resolver}
}

func (c *AssistantController) Chat(ctx *gin.Context) {
	var payload chatPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	result, err := c.Resolver.Chat(ctx.Request.Context(), payload.Message, payload.Context)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
