package store

import (
	"context"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., postgres).
type Store interface {
	Quotas() Quotas
	Files() Files
}

// Quotas manages per-user API quota records. Consume is the only mutation
// the orchestration core performs; records are provisioned out of band.
type Quotas interface {
	Create(ctx context.Context, q *model.ApiQuota) (*model.ApiQuota, error)
	Get(ctx context.Context, userID string) (*model.ApiQuota, error)
	GetBySecretKey(ctx context.Context, secretKey string) (*model.ApiQuota, error)

	// Consume atomically charges one quota unit. It must be a single
	// conditional update in the store: two concurrent calls with one unit
	// remaining must not both succeed. Returns model.ErrQuotaExceeded when
	// the ceiling is reached and model.ErrNotFound for unknown users.
	Consume(ctx context.Context, userID string) error
}

// Files manages uploaded video records.
type Files interface {
	Create(ctx context.Context, f *model.VideoFile) (*model.VideoFile, error)
	Get(ctx context.Context, key string) (*model.VideoFile, error)

	// MarkAnalyzed flips the analyzed flag false -> true. The flip is a
	// conditional update so it can succeed at most once per record; a
	// second call returns model.ErrAlreadyAnalyzed.
	MarkAnalyzed(ctx context.Context, key string) error
}
