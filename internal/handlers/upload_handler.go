package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedUploadExtensions limits uploads to the media types questions can
// reference: recorded speaking answers and listening/nonverbal prompts.
var allowedUploadExtensions = map[string]bool{
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type UploadHandler struct {
	BaseHandler
	uploadDir string
	maxBytes  int64
}

func NewUploadHandler(uploadDir string, maxBytes int64, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		uploadDir:   uploadDir,
		maxBytes:    maxBytes,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	file, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "No file provided", err)
		return
	}
	if file.Size > h.maxBytes {
		h.RespondWithError(c, http.StatusBadRequest, "File too large", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported file type", nil)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	// Stored names are generated, never taken from the client.
	filename := uuid.NewString() + ext
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	mimetype := file.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}
	h.RespondWithSuccess(c, http.StatusCreated, "File uploaded", gin.H{
		"filename": filename,
		"url":      "/api/upload/" + filename,
		"size":     file.Size,
		"mimetype": mimetype,
	})
}

func (h *UploadHandler) Serve(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == string(filepath.Separator) {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid filename", nil)
		return
	}

	path := filepath.Join(h.uploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		h.RespondWithError(c, http.StatusNotFound, "File not found", nil)
		return
	}

	c.File(path)
}
