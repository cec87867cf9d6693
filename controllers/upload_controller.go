package controllers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"hotel-marketplace/middleware"
	"hotel-marketplace/storage"
	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 200 << 20
)

// UploadController stores merchant media in the object store and hands
// back the proxied URL to save on the hotel.
type UploadController struct {
	Objects     storage.ObjectStore
	ImageBucket string
	VideoBucket string
}

func NewUploadController(objects storage.ObjectStore, imageBucket, videoBucket string) *UploadController {
	return &UploadController{Objects: objects, ImageBucket: imageBucket, VideoBucket: videoBucket}
}

// sniffMIME prefers the content sniffed from the first bytes and falls back
// to the part header when sniffing is inconclusive.
func sniffMIME(r io.ReadSeeker, declared string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	detected := http.DetectContentType(head[:n])
	if detected == "application/octet-stream" && declared != "" {
		detected = declared
	}
	if mt, _, err := mime.ParseMediaType(detected); err == nil {
		return mt, nil
	}
	return detected, nil
}

func (c *UploadController) UploadSingle(ctx *gin.Context) {
	kind := strings.ToLower(strings.TrimSpace(ctx.DefaultQuery("type", "image")))
	var bucket string
	var limit int64
	switch kind {
	case "image":
		bucket, limit = c.ImageBucket, MaxImageBytes
	case "video":
		bucket, limit = c.VideoBucket, MaxVideoBytes
	default:
		utils.JSONError(ctx, http.StatusBadRequest, "type must be image or video", nil)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "file is required", err.Error())
		return
	}
	if fileHeader.Size <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "file is empty", nil)
		return
	}
	if fileHeader.Size > limit {
		utils.JSONError(ctx, http.StatusBadRequest, fmt.Sprintf("%s exceeds %d MiB", kind, limit>>20), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := sniffMIME(file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !strings.HasPrefix(mimeType, kind+"/") {
		utils.JSONError(ctx, http.StatusBadRequest, fmt.Sprintf("file must be %s/*", kind), gin.H{"mimeType": mimeType})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	objectName := fmt.Sprintf("merchant-%d/%s/%s%s",
		middleware.UserID(ctx), time.Now().Format("20060102"), uuid.NewString(), ext)

	if err := c.Objects.Put(ctx.Request.Context(), bucket, objectName, file, fileHeader.Size, mimeType); err != nil {
		respondError(ctx, err)
		return
	}
	zap.L().Info("media uploaded",
		zap.String("bucket", bucket), zap.String("object", objectName), zap.Int64("size", fileHeader.Size))

	ctx.JSON(http.StatusOK, gin.H{
		"url":        storage.MediaURL(bucket, objectName),
		"bucket":     bucket,
		"objectName": objectName,
		"mimeType":   mimeType,
		"size":       fileHeader.Size,
	})
}
