package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-marketplace/services"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError is the single exit for failed requests. Typed service errors
// map to their status; anything else is a 500 carrying the raw message.
func respondError(ctx *gin.Context, err error) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		var detail interface{}
		if appErr.Kind == services.KindUpstream && appErr.UpstreamStatus != 0 {
			detail = gin.H{"upstreamStatus": appErr.UpstreamStatus}
		}
		if appErr.Kind == services.KindServer || appErr.Kind == services.KindUpstream {
			zap.L().Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		}
		utils.JSONError(ctx, appErr.HTTPStatus(), appErr.Message, detail)
		return
	}
	zap.L().Error("unhandled error", zap.String("path", ctx.FullPath()), zap.Error(err))
	utils.JSONError(ctx, http.StatusInternalServerError, err.Error(), nil)
}

// paramID reads a positive numeric path parameter.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
