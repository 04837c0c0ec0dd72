package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// memStore is an in-memory store.Store for service tests. Consume and
// MarkAnalyzed keep the conditional-update semantics of the real store.
type memStore struct {
	mu     sync.Mutex
	quotas map[string]*model.ApiQuota
	files  map[string]*model.VideoFile
}

func newMemStore() *memStore {
	return &memStore{
		quotas: make(map[string]*model.ApiQuota),
		files:  make(map[string]*model.VideoFile),
	}
}

func (m *memStore) Quotas() store.Quotas { return &memQuotas{m} }
func (m *memStore) Files() store.Files   { return &memFiles{m} }

type memQuotas struct{ s *memStore }

func (q *memQuotas) Create(ctx context.Context, in *model.ApiQuota) (*model.ApiQuota, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	cp := *in
	q.s.quotas[in.UserID] = &cp
	out := cp
	return &out, nil
}

func (q *memQuotas) Get(ctx context.Context, userID string) (*model.ApiQuota, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	rec, ok := q.s.quotas[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (q *memQuotas) GetBySecretKey(ctx context.Context, secretKey string) (*model.ApiQuota, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	for _, rec := range q.s.quotas {
		if rec.SecretKey == secretKey {
			out := *rec
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (q *memQuotas) Consume(ctx context.Context, userID string) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	rec, ok := q.s.quotas[userID]
	if !ok {
		return model.ErrNotFound
	}
	if rec.RequestsUsed >= rec.MaxRequests {
		return model.ErrQuotaExceeded
	}
	rec.RequestsUsed++
	return nil
}

type memFiles struct{ s *memStore }

func (f *memFiles) Create(ctx context.Context, in *model.VideoFile) (*model.VideoFile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, exists := f.s.files[in.Key]; exists {
		return nil, fmt.Errorf("duplicate key %s", in.Key)
	}
	cp := *in
	cp.CreationTime = time.Now()
	f.s.files[in.Key] = &cp
	out := cp
	return &out, nil
}

func (f *memFiles) Get(ctx context.Context, key string) (*model.VideoFile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rec, ok := f.s.files[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (f *memFiles) MarkAnalyzed(ctx context.Context, key string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rec, ok := f.s.files[key]
	if !ok {
		return model.ErrNotFound
	}
	if rec.Analyzed {
		return model.ErrAlreadyAnalyzed
	}
	rec.Analyzed = true
	return nil
}

// fakeBlobStore records Put/PresignGet calls and can fail on demand.
type fakeBlobStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	putErr   error
	puts     int
	presigns int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobStore) PresignGet(ctx context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presigns++
	return "https://blobs.test/" + key, nil
}

// fakePredictor scripts the Predict / PredictUpload outcomes.
type fakePredictor struct {
	predictErr    error
	uploadErr     error
	predictCalls  int
	uploadCalls   int
	lastURL       string
	lastFilename  string
	lastVideoSize int
	result        *model.Analysis
}

func (p *fakePredictor) Predict(ctx context.Context, videoURL string) (*model.Analysis, error) {
	p.predictCalls++
	p.lastURL = videoURL
	if p.predictErr != nil {
		return nil, p.predictErr
	}
	return p.analysis(), nil
}

func (p *fakePredictor) PredictUpload(ctx context.Context, filename string, video []byte) (*model.Analysis, error) {
	p.uploadCalls++
	p.lastFilename = filename
	p.lastVideoSize = len(video)
	if p.uploadErr != nil {
		return nil, p.uploadErr
	}
	return p.analysis(), nil
}

func (p *fakePredictor) analysis() *model.Analysis {
	if p.result != nil {
		return p.result
	}
	return &model.Analysis{Utterances: []model.Utterance{{Text: "ok"}}}
}

// fakeFetcher returns canned bytes or an error.
type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}
