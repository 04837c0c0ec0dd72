package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/wreckster1507/sentiment-analysis/internal/api/respond"
	"github.com/wreckster1507/sentiment-analysis/internal/auth"
	"github.com/wreckster1507/sentiment-analysis/internal/services"
)

// UploadHandler provides HTTP transport for upload operations.
type UploadHandler struct {
	svc        *services.UploadService
	authorizer auth.Authorizer
	maxBytes   int64
}

func NewUploadHandler(svc *services.UploadService, authorizer auth.Authorizer, maxBytes int64) *UploadHandler {
	return &UploadHandler{svc: svc, authorizer: authorizer, maxBytes: maxBytes}
}

// InitUpload POST /api/upload-url
func (h *UploadHandler) InitUpload(w http.ResponseWriter, r *http.Request) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, "API key required")
		return
	}
	if _, err := h.authorizer.Authorize(r.Context(), apiKey); err != nil {
		writeDomainError(w, err)
		return
	}

	var req struct {
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	ticket, err := h.svc.InitUpload(r.Context(), req.FileType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ticket)
}

// UploadVideo POST /api/upload-video (multipart: file, fileId)
func (h *UploadHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, "API key required")
		return
	}
	actor, err := h.authorizer.Authorize(r.Context(), apiKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respond.WriteBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.WriteBadRequest(w, "no file provided")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.WriteInternalError(w, "failed to read upload")
		return
	}

	key, err := h.svc.UploadVideo(r.Context(), actor.UserID, r.FormValue("fileId"), header.Filename, data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"key":     key,
	})
}
