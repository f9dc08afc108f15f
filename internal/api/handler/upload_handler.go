package handler

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"blogql/internal/api/middleware"
	"blogql/internal/common"
	"blogql/internal/platform/queue"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadHandler accepts a single-file multipart image upload and hands the
// replaced image (if any) to the cleanup queue.
type UploadHandler struct {
	imageDir string
	cleanup  queue.ImageCleanup
}

func NewUploadHandler(imageDir string, cleanup queue.ImageCleanup) *UploadHandler {
	return &UploadHandler{imageDir: imageDir, cleanup: cleanup}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Put("/image-file", h.uploadImage)
}

type uploadResponse struct {
	Message   string `json:"message"`
	ImagePath string `json:"imagePath,omitempty"`
}

func (h *UploadHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromContext(r.Context())
	if !auth.IsAuth {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, uploadResponse{Message: "No file found"})
		return
	}
	defer file.Close()

	// Anything but a jpeg/png payload is treated the same as no file.
	// The type is sniffed from the content, not trusted from the name.
	head := make([]byte, 512)
	n, readErr := io.ReadFull(file, head)
	if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	head = head[:n]
	if !allowedImageType(http.DetectContentType(head)) {
		common.RespondWithJSON(w, http.StatusOK, uploadResponse{Message: "No file found"})
		return
	}

	if err := os.MkdirAll(h.imageDir, 0o755); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare image directory")
		return
	}

	name := uuid.NewString() + "-" + filepath.Base(header.Filename)
	target := filepath.Join(h.imageDir, name)
	dst, err := os.Create(target)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	// The previous image, when one is being replaced, is cleaned up
	// best-effort and never fails the upload.
	if oldPath := r.FormValue("oldPath"); oldPath != "" {
		if err := h.cleanup.Enqueue(r.Context(), oldPath); err != nil {
			log.Printf("WARN: Failed to enqueue cleanup for %s: %v", oldPath, err)
		}
	}

	common.RespondWithJSON(w, http.StatusCreated, uploadResponse{
		Message:   "New file saved",
		ImagePath: filepath.ToSlash(target),
	})
}

func allowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}
