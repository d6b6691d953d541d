package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sokakpati/shelter-api/internal/upload"
)

// maxUploadBytes caps accepted image files at 5MB.
const maxUploadBytes = 5 << 20

// UploadHandler accepts a multipart image, spools it to a temp file,
// forwards it to the image host and returns the public URL. The temp file
// is removed on every exit path.
type UploadHandler struct {
	Uploader *upload.Client
}

func NewUploadHandler(u *upload.Client) *UploadHandler {
	if u == nil {
		panic("nil uploader passed to NewUploadHandler")
	}
	return &UploadHandler{Uploader: u}
}

// Upload handles POST /v1/upload.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image must be smaller than 5MB"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file unreadable"})
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "shelter-upload-*")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	tmpPath := tmp.Name()
	defer func() {
		// Cleanup runs on success and on every failure path.
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Printf("upload: remove temp file %s: %v", tmpPath, err)
		}
	}()

	if _, err := io.Copy(tmp, io.LimitReader(src, maxUploadBytes+1)); err != nil {
		tmp.Close()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	if err := tmp.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	imageURL, err := h.Uploader.UploadFile(ctx, tmpPath)
	if err != nil {
		log.Printf("upload: forward to image host failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"imageUrl": imageURL})
}
