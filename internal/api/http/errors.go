package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wreckster1507/sentiment-analysis/internal/api/respond"
	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

// writeDomainError maps the orchestration error taxonomy onto stable
// HTTP status codes. Anything outside the taxonomy is logged with full
// detail server-side and surfaced only as a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteUnauthorized(w, "invalid API key")
	case errors.Is(err, model.ErrForbidden):
		respond.WriteError(w, http.StatusForbidden, "file belongs to another user")
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "file not found")
	case errors.Is(err, model.ErrInvalidInput):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrAlreadyAnalyzed):
		respond.WriteBadRequest(w, model.ErrAlreadyAnalyzed.Error())
	case errors.Is(err, model.ErrQuotaExceeded):
		respond.WriteError(w, http.StatusTooManyRequests, model.ErrQuotaExceeded.Error())
	case errors.Is(err, model.ErrUpstreamUnavailable):
		respond.WriteError(w, http.StatusServiceUnavailable, model.ErrUpstreamUnavailable.Error())
	case errors.Is(err, model.ErrUpstreamError):
		respond.WriteError(w, http.StatusBadGateway, model.ErrUpstreamError.Error())
	default:
		log.Error().Err(err).Msg("unexpected error")
		respond.WriteInternalError(w, "internal server error")
	}
}
