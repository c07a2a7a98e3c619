package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"simlok-backend/internal/infrastructure/storage"
)

// Max upload size; support documents are scans, worker photos are small.
const maxUploadBytes = 5 << 20

var allowedUploadExt = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedFolders = map[string]bool{
	"documents": true,
	"photos":    true,
}

type UploadHandler struct{ store storage.Uploader }

func NewUploadHandler(store storage.Uploader) *UploadHandler { return &UploadHandler{store: store} }

// Upload accepts one multipart file and returns its stored path, which the
// client then references from submission payloads.
func (h *UploadHandler) Upload(c echo.Context) error {
	folder := c.FormValue("folder")
	if !allowedFolders[folder] {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "folder must be documents or photos"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file exceeds 5MB limit"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedUploadExt[ext] {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file type not allowed (pdf, jpg, jpeg, png)"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()

	buf, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	if len(buf) > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file exceeds 5MB limit"})
	}

	path, err := h.store.UploadBytes(c.Request().Context(), folder, fh.Filename, buf)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"path": path})
}
