package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// StoreAuthorizer resolves API keys against the quota store: the secret
// key on a quota record is the bearer credential.
type StoreAuthorizer struct {
	store store.Store
}

func NewStoreAuthorizer(s store.Store) *StoreAuthorizer {
	return &StoreAuthorizer{store: s}
}

// Authorize looks the key up by its unique secret_key column. No lookup
// is attempted for an empty key.
func (a *StoreAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	if apiKey == "" {
		return nil, model.ErrUnauthorized
	}
	q, err := a.store.Quotas().GetBySecretKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthorized
		}
		return nil, fmt.Errorf("authorize lookup: %w", err)
	}
	return &ActorInfo{UserID: q.UserID, Remaining: q.Remaining()}, nil
}
