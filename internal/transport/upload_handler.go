package transport

import (
	"errors"
	"net/http"

	"catalog-admin/internal/middleware"
	"catalog-admin/internal/upload"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 512 * 1024

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// UploadErrorResponse is returned when an upload is rejected
type UploadErrorResponse struct {
	Error string `json:"error"`
}

// UploadHandler handles image uploads
type UploadHandler struct {
	uploader *upload.Uploader
	logger   *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader *upload.Uploader, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger,
	}
}

// RegisterRoutes registers the upload endpoint behind the given middleware
func (h *UploadHandler) RegisterRoutes(r chi.Router, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Post("/upload", h.Upload)
}

// Upload stores the multipart field "file"
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.uploader.MaxSize() + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), r.ContentLength > limit:
			h.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			h.respondError(w, http.StatusBadRequest, "No file uploaded")
		default:
			h.logger.Warn("Failed to parse upload", zap.Error(err))
			h.respondError(w, http.StatusBadRequest, "Invalid upload request")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		h.respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	result, err := h.uploader.Upload(r.Context(), files[0])
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrNoFile):
			h.respondError(w, http.StatusBadRequest, "No file uploaded")
		case errors.Is(err, upload.ErrNotImage):
			h.respondError(w, http.StatusBadRequest, "Only image files are allowed!")
		case errors.Is(err, upload.ErrTooLarge):
			h.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
		default:
			h.logger.Error("Failed to store upload", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "Failed to upload file")
		}
		return
	}

	h.logger.Info("File uploaded",
		zap.String("filename", result.Filename),
		zap.Int64("size", files[0].Size),
	)

	middleware.RespondWithJSON(w, http.StatusOK, UploadResponse{
		Success:  true,
		URL:      result.URL,
		Filename: result.Filename,
	})
}

func (h *UploadHandler) respondError(w http.ResponseWriter, status int, message string) {
	middleware.RespondWithJSON(w, status, UploadErrorResponse{Error: message})
}
