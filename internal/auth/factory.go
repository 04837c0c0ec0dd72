package auth

import (
	"github.com/wreckster1507/sentiment-analysis/internal/config"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// NewAuthorizer creates the appropriate Authorizer for the environment:
// the hardcoded dev key in dev mode, the quota store otherwise.
func NewAuthorizer(cfg *config.Config, s store.Store) Authorizer {
	if cfg.DevMode {
		return NewMockAuthorizer()
	}
	return NewStoreAuthorizer(s)
}
