package http

import (
	"encoding/json"
	"net/http"

	"github.com/wreckster1507/sentiment-analysis/internal/api/respond"
	"github.com/wreckster1507/sentiment-analysis/internal/auth"
	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/services"
)

// AnalysisHandler provides HTTP transport for the inference operation.
type AnalysisHandler struct {
	svc        *services.AnalysisService
	authorizer auth.Authorizer
}

func NewAnalysisHandler(svc *services.AnalysisService, authorizer auth.Authorizer) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, authorizer: authorizer}
}

// Analyze POST /api/sentiment-inference
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Key == "" {
		respond.WriteBadRequest(w, "key is required")
		return
	}

	an, err := h.svc.Analyze(r.Context(), actor.UserID, req.Key)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]*model.Analysis{"analysis": an})
}
