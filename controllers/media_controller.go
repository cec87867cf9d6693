package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hotel-marketplace/storage"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// MediaController streams objects through the API with single-range support.
type MediaController struct {
	Objects storage.ObjectStore
}

func NewMediaController(objects storage.ObjectStore) *MediaController {
	return &MediaController{Objects: objects}
}

func (c *MediaController) Stream(ctx *gin.Context) {
	bucket := ctx.Param("bucket")
	name := strings.TrimPrefix(ctx.Param("object"), "/")
	if bucket == "" || name == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "bucket and object are required", nil)
		return
	}

	reqCtx := ctx.Request.Context()
	info, err := c.Objects.Stat(reqCtx, bucket, name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		utils.JSONError(ctx, http.StatusNotFound, "object not found", nil)
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{
		"Accept-Ranges": "bytes",
		"Cache-Control": "public, max-age=86400",
	}
	if info.ETag != "" {
		headers["ETag"] = `"` + strings.Trim(info.ETag, `"`) + `"`
	}
	if !info.LastModified.IsZero() {
		headers["Last-Modified"] = info.LastModified.UTC().Format(http.TimeFormat)
	}

	rng, partial, err := utils.ParseByteRange(ctx.GetHeader("Range"), info.Size)
	if errors.Is(err, utils.ErrRangeNotSatisfiable) {
		ctx.Header("Content-Range", fmt.Sprintf("bytes */%d", info.Size))
		utils.JSONError(ctx, http.StatusRequestedRangeNotSatisfiable, "range not satisfiable", nil)
		return
	}

	status := http.StatusOK
	start, end, length := int64(0), int64(-1), info.Size
	if partial {
		status = http.StatusPartialContent
		start, end, length = rng.Start, rng.End, rng.Length()
		headers["Content-Range"] = fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, info.Size)
	}

	body, err := c.Objects.Open(reqCtx, bucket, name, start, end)
	if errors.Is(err, storage.ErrObjectNotFound) {
		utils.JSONError(ctx, http.StatusNotFound, "object not found", nil)
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer body.Close()

	ctx.DataFromReader(status, length, contentType, body, headers)
}
