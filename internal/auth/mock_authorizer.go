package auth

import (
	"context"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only
	LocalDevAPIKey = "sk_local_sentiment_dev_key"
)

// MockAuthorizer provides a simple authorizer for local development.
// It only recognizes the hardcoded LocalDevAPIKey.
type MockAuthorizer struct{}

// NewMockAuthorizer creates a new MockAuthorizer for local development
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

// Authorize validates the hardcoded API key
func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, model.ErrUnauthorized
	}
	return &ActorInfo{UserID: "sentiment-dev", Remaining: 1 << 30}, nil
}
