package auth

import (
	"context"
)

// ActorInfo contains information about an authenticated actor
type ActorInfo struct {
	UserID    string `json:"user_id"`   // Owning user resolved from the secret key
	Remaining int    `json:"remaining"` // Quota units left at auth time (informational)
}

// Authorizer resolves a bearer API key to the owning user.
type Authorizer interface {
	// Authorize validates the API key and returns the resolved actor.
	// A missing or unknown key yields model.ErrUnauthorized.
	Authorize(ctx context.Context, apiKey string) (*ActorInfo, error)
}
