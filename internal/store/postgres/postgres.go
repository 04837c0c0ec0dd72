package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Quotas() store.Quotas { return &quotas{db: s.db} }
func (s *pgStore) Files() store.Files   { return &files{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap applies the embedded schema. Safe to run repeatedly; every
// statement is IF NOT EXISTS.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range store.DefaultDDLStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// --- Quotas ---
type quotas struct{ db *sql.DB }

func (q *quotas) Create(ctx context.Context, m *model.ApiQuota) (*model.ApiQuota, error) {
	_, err := q.db.ExecContext(ctx, `
        INSERT INTO api_quotas (user_id, secret_key, requests_used, max_requests)
        VALUES ($1,$2,$3,$4)
    `, m.UserID, m.SecretKey, m.RequestsUsed, m.MaxRequests)
	if err != nil {
		return nil, err
	}
	out := *m
	return &out, nil
}

func (q *quotas) Get(ctx context.Context, userID string) (*model.ApiQuota, error) {
	var out model.ApiQuota
	row := q.db.QueryRowContext(ctx, `
        SELECT user_id, secret_key, requests_used, max_requests
        FROM api_quotas WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.SecretKey, &out.RequestsUsed, &out.MaxRequests); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (q *quotas) GetBySecretKey(ctx context.Context, secretKey string) (*model.ApiQuota, error) {
	var out model.ApiQuota
	row := q.db.QueryRowContext(ctx, `
        SELECT user_id, secret_key, requests_used, max_requests
        FROM api_quotas WHERE secret_key=$1
    `, secretKey)
	if err := row.Scan(&out.UserID, &out.SecretKey, &out.RequestsUsed, &out.MaxRequests); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Consume is the single conditional update that closes the quota race:
// the WHERE clause re-checks the ceiling inside the statement, so two
// concurrent calls with one unit left cannot both match a row.
func (q *quotas) Consume(ctx context.Context, userID string) error {
	res, err := q.db.ExecContext(ctx, `
        UPDATE api_quotas SET requests_used = requests_used + 1
        WHERE user_id=$1 AND requests_used < max_requests
    `, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// Zero rows: either the user is unknown or the quota is exhausted.
	if _, err := q.Get(ctx, userID); err != nil {
		return err
	}
	return model.ErrQuotaExceeded
}

// --- Files ---
type files struct{ db *sql.DB }

func (f *files) Create(ctx context.Context, m *model.VideoFile) (*model.VideoFile, error) {
	var created sql.NullTime
	row := f.db.QueryRowContext(ctx, `
        INSERT INTO video_files (key, user_id, analyzed)
        VALUES ($1,$2,FALSE)
        RETURNING creation_time
    `, m.Key, m.UserID)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.Analyzed = false
	if created.Valid {
		out.CreationTime = created.Time
	}
	return &out, nil
}

func (f *files) Get(ctx context.Context, key string) (*model.VideoFile, error) {
	var out model.VideoFile
	row := f.db.QueryRowContext(ctx, `
        SELECT key, user_id, analyzed, creation_time
        FROM video_files WHERE key=$1
    `, key)
	if err := row.Scan(&out.Key, &out.UserID, &out.Analyzed, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// MarkAnalyzed flips the flag at most once; the WHERE clause makes the
// transition conditional so concurrent calls cannot both observe false.
func (f *files) MarkAnalyzed(ctx context.Context, key string) error {
	res, err := f.db.ExecContext(ctx, `
        UPDATE video_files SET analyzed=TRUE
        WHERE key=$1 AND analyzed=FALSE
    `, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := f.Get(ctx, key); err != nil {
		return err
	}
	return model.ErrAlreadyAnalyzed
}
