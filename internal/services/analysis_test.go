package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

type analysisFixture struct {
	store     *memStore
	blobs     *fakeBlobStore
	predictor *fakePredictor
	fetcher   *fakeFetcher
	svc       *AnalysisService
}

func newAnalysisFixture(t *testing.T) *analysisFixture {
	t.Helper()
	st := newMemStore()
	ctx := context.Background()
	if _, err := st.Quotas().Create(ctx, &model.ApiQuota{
		UserID: "user-1", SecretKey: "sk_1", RequestsUsed: 0, MaxRequests: 10,
	}); err != nil {
		t.Fatalf("seed quota: %v", err)
	}
	if _, err := st.Files().Create(ctx, &model.VideoFile{Key: "inference/abc", UserID: "user-1"}); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	f := &analysisFixture{
		store:     st,
		blobs:     newFakeBlobStore(),
		predictor: &fakePredictor{},
		fetcher:   &fakeFetcher{data: []byte("video bytes")},
	}
	f.svc = NewAnalysisService(st, f.blobs, f.predictor, f.fetcher)
	return f
}

func (f *analysisFixture) quotaUsed(t *testing.T) int {
	t.Helper()
	q, err := f.store.Quotas().Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get quota: %v", err)
	}
	return q.RequestsUsed
}

func (f *analysisFixture) analyzed(t *testing.T) bool {
	t.Helper()
	v, err := f.store.Files().Get(context.Background(), "inference/abc")
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	return v.Analyzed
}

func TestAnalyze_HappyPath(t *testing.T) {
	f := newAnalysisFixture(t)

	an, err := f.svc.Analyze(context.Background(), "user-1", "inference/abc")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(an.Utterances) != 1 {
		t.Fatalf("unexpected analysis: %+v", an)
	}
	if f.predictor.lastURL != "https://blobs.test/inference/abc" {
		t.Fatalf("predict called with %q", f.predictor.lastURL)
	}
	if f.quotaUsed(t) != 1 {
		t.Fatalf("expected 1 quota unit charged, got %d", f.quotaUsed(t))
	}
	if !f.analyzed(t) {
		t.Fatal("file not marked analyzed")
	}
	if f.predictor.uploadCalls != 0 {
		t.Fatal("byte-upload fallback should not run on success")
	}
}

func TestAnalyze_UnknownKeyChargesNothing(t *testing.T) {
	f := newAnalysisFixture(t)

	_, err := f.svc.Analyze(context.Background(), "user-1", "inference/nope")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.quotaUsed(t) != 0 {
		t.Fatal("quota charged for unknown key")
	}
	if f.predictor.predictCalls != 0 {
		t.Fatal("predict called for unknown key")
	}
}

func TestAnalyze_WrongOwnerChargesNothing(t *testing.T) {
	f := newAnalysisFixture(t)

	_, err := f.svc.Analyze(context.Background(), "user-2", "inference/abc")
	if !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.quotaUsed(t) != 0 {
		t.Fatal("quota charged for wrong owner")
	}
}

func TestAnalyze_SecondAnalysisRejected(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Analyze(ctx, "user-1", "inference/abc"); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	_, err := f.svc.Analyze(ctx, "user-1", "inference/abc")
	if !errors.Is(err, model.ErrAlreadyAnalyzed) {
		t.Fatalf("expected ErrAlreadyAnalyzed, got %v", err)
	}
	if f.quotaUsed(t) != 1 {
		t.Fatalf("rejected re-analysis must not charge quota, used=%d", f.quotaUsed(t))
	}
}

func TestAnalyze_QuotaExhausted(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()
	q, _ := f.store.Quotas().Get(ctx, "user-1")
	for i := 0; i < q.MaxRequests; i++ {
		if err := f.store.Quotas().Consume(ctx, "user-1"); err != nil {
			t.Fatalf("drain quota: %v", err)
		}
	}

	_, err := f.svc.Analyze(ctx, "user-1", "inference/abc")
	if !errors.Is(err, model.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if f.predictor.predictCalls != 0 {
		t.Fatal("predict called despite exhausted quota")
	}
	if f.analyzed(t) {
		t.Fatal("file marked analyzed despite exhausted quota")
	}
}

func TestAnalyze_FailedPredictKeepsQuotaCharge(t *testing.T) {
	f := newAnalysisFixture(t)
	f.predictor.predictErr = fmt.Errorf("%w: predict status 500", model.ErrUpstreamError)
	f.predictor.uploadErr = fmt.Errorf("%w: predict status 500", model.ErrUpstreamError)

	_, err := f.svc.Analyze(context.Background(), "user-1", "inference/abc")
	if !errors.Is(err, model.ErrUpstreamError) {
		t.Fatalf("expected ErrUpstreamError, got %v", err)
	}
	if f.quotaUsed(t) != 1 {
		t.Fatalf("quota charge must survive a failed attempt, used=%d", f.quotaUsed(t))
	}
	if f.analyzed(t) {
		t.Fatal("failed attempt must leave the file analyzable")
	}
}

func TestAnalyze_FallsBackToByteUpload(t *testing.T) {
	f := newAnalysisFixture(t)
	f.predictor.predictErr = fmt.Errorf("%w: predict status 400", model.ErrUpstreamError)

	an, err := f.svc.Analyze(context.Background(), "user-1", "inference/abc")
	if err != nil {
		t.Fatalf("analyze with fallback: %v", err)
	}
	if len(an.Utterances) != 1 {
		t.Fatalf("unexpected analysis: %+v", an)
	}
	if f.fetcher.calls != 1 {
		t.Fatalf("expected one blob fetch, got %d", f.fetcher.calls)
	}
	if f.predictor.uploadCalls != 1 {
		t.Fatalf("expected one byte-upload predict, got %d", f.predictor.uploadCalls)
	}
	if f.predictor.lastFilename != "abc.mp4" {
		t.Fatalf("unexpected fallback filename %q", f.predictor.lastFilename)
	}
	if f.predictor.lastVideoSize != len("video bytes") {
		t.Fatalf("fallback did not forward fetched bytes, size=%d", f.predictor.lastVideoSize)
	}
	if !f.analyzed(t) {
		t.Fatal("file not marked analyzed after successful fallback")
	}
}

func TestAnalyze_UnreachableModelSkipsFallback(t *testing.T) {
	f := newAnalysisFixture(t)
	f.predictor.predictErr = fmt.Errorf("%w: dial refused", model.ErrUpstreamUnavailable)

	_, err := f.svc.Analyze(context.Background(), "user-1", "inference/abc")
	if !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if f.fetcher.calls != 0 || f.predictor.uploadCalls != 0 {
		t.Fatal("fallback must not run when the model is unreachable")
	}
	if f.quotaUsed(t) != 1 {
		t.Fatal("quota charge must survive the unreachable-model attempt")
	}
}

func TestAnalyze_FetchFailureAbortsFallback(t *testing.T) {
	f := newAnalysisFixture(t)
	f.predictor.predictErr = fmt.Errorf("%w: predict status 400", model.ErrUpstreamError)
	f.fetcher.err = errors.New("blob gone")

	_, err := f.svc.Analyze(context.Background(), "user-1", "inference/abc")
	if err == nil {
		t.Fatal("expected error when fallback download fails")
	}
	if f.predictor.uploadCalls != 0 {
		t.Fatal("byte upload attempted without downloaded bytes")
	}
	if f.analyzed(t) {
		t.Fatal("file must stay analyzable after fallback failure")
	}
}

func TestUploadFilename(t *testing.T) {
	cases := map[string]string{
		"inference/abc-123": "abc-123.mp4",
		"plainkey":          "plainkey.mp4",
	}
	for in, want := range cases {
		if got := uploadFilename(in); got != want {
			t.Fatalf("uploadFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
