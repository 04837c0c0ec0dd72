package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wreckster1507/sentiment-analysis/internal/blob"
	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// Predictor is the slice of the inference client the analysis flow needs.
type Predictor interface {
	Predict(ctx context.Context, videoURL string) (*model.Analysis, error)
	PredictUpload(ctx context.Context, filename string, video []byte) (*model.Analysis, error)
}

// Downloader fetches a stored blob back by URL (bounded-retry policy).
type Downloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AnalysisService drives the analyze sequence: preconditions, quota
// charge, predict call with byte-upload fallback, analyzed-flag flip.
type AnalysisService struct {
	store store.Store
	blobs blob.Store
	model Predictor
	fetch Downloader
}

func NewAnalysisService(s store.Store, b blob.Store, p Predictor, d Downloader) *AnalysisService {
	return &AnalysisService{store: s, blobs: b, model: p, fetch: d}
}

// Analyze runs inference over the blob at key on behalf of userID.
//
// Precondition order is load-bearing: unknown key, wrong owner, and
// already-analyzed all fail before any quota is charged. Once the quota
// unit is consumed it is not refunded, even if the predict call fails.
// A failed predict leaves the record analyzable.
func (s *AnalysisService) Analyze(ctx context.Context, userID, key string) (*model.Analysis, error) {
	f, err := s.store.Files().Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if f.UserID != userID {
		return nil, model.ErrForbidden
	}
	if f.Analyzed {
		return nil, model.ErrAlreadyAnalyzed
	}

	if err := s.store.Quotas().Consume(ctx, userID); err != nil {
		return nil, err
	}

	url, err := s.blobs.PresignGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign blob: %w", err)
	}

	an, err := s.model.Predict(ctx, url)
	if err != nil {
		if errors.Is(err, model.ErrUpstreamUnavailable) {
			return nil, err
		}
		// The model rejected the URL; download the blob and upload the
		// bytes before declaring the operation failed.
		log.Warn().Err(err).Str("key", key).Msg("url-based predict failed, falling back to byte upload")
		data, ferr := s.fetch.Fetch(ctx, url)
		if ferr != nil {
			return nil, fmt.Errorf("downloading blob for upload fallback: %w", ferr)
		}
		an, err = s.model.PredictUpload(ctx, uploadFilename(key), data)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.Files().MarkAnalyzed(ctx, key); err != nil {
		return nil, err
	}
	return an, nil
}

// uploadFilename derives the multipart filename from the blob key, e.g.
// "inference/<id>" -> "<id>.mp4".
func uploadFilename(key string) string {
	if i := strings.IndexByte(key, '/'); i >= 0 && i+1 < len(key) {
		return key[i+1:] + ".mp4"
	}
	return key + ".mp4"
}
