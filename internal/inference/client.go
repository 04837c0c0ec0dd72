// Package inference is the HTTP client for the local sentiment/emotion
// model server. The model accepts either the video's playable URL or a
// raw upload of its bytes; both paths land on POST /predict.
package inference

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

// Client calls the inference model server.
type Client struct {
	c *resty.Client
}

// NewClient creates a client for the model server at baseURL. Predict
// calls can take minutes for long videos, hence the generous timeout.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Minute)
	return &Client{c: c}
}

// Predict submits the video by URL (form field video_url).
func (cl *Client) Predict(ctx context.Context, videoURL string) (*model.Analysis, error) {
	resp, err := cl.c.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"video_url": videoURL}).
		Post("/predict")
	return cl.decode(resp, err)
}

// PredictUpload submits the video bytes directly (form field video_file).
func (cl *Client) PredictUpload(ctx context.Context, filename string, video []byte) (*model.Analysis, error) {
	resp, err := cl.c.R().
		SetContext(ctx).
		SetFileReader("video_file", filename, bytes.NewReader(video)).
		Post("/predict")
	return cl.decode(resp, err)
}

func (cl *Client) decode(resp *resty.Response, err error) (*model.Analysis, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: predict status %d: %s", model.ErrUpstreamError, resp.StatusCode(), resp.String())
	}
	an, err := Normalize(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamError, err)
	}
	return an, nil
}

// HealthPing implements health.HealthPinger; the model exposes GET /health.
func (cl *Client) HealthPing(ctx context.Context) error {
	resp, err := cl.c.R().SetContext(ctx).Get("/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("model health status %d", resp.StatusCode())
	}
	return nil
}
