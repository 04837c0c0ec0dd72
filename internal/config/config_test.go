package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	for _, v := range []string{
		"SENTIMENT_HTTP_PORT",
		"SENTIMENT_INFERENCE_URL",
		"SENTIMENT_MAX_UPLOAD_BYTES",
		"SENTIMENT_HEALTH_INTERVAL",
		"SENTIMENT_DEV_MODE",
	} {
		_ = os.Unsetenv(v)
	}

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.InferenceURL)
	assert.Equal(t, int64(104857600), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval)
	assert.False(t, cfg.DevMode, "dev mode must default to off")
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("SENTIMENT_HTTP_PORT", "9999")
	_ = os.Setenv("SENTIMENT_INFERENCE_URL", "http://model.internal:8000")
	defer func() {
		_ = os.Unsetenv("SENTIMENT_HTTP_PORT")
		_ = os.Unsetenv("SENTIMENT_INFERENCE_URL")
	}()

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, "http://model.internal:8000", cfg.InferenceURL)
}

func TestConfigLoad_InvalidPortRejected(t *testing.T) {
	_ = os.Setenv("SENTIMENT_HTTP_PORT", "70000")
	defer func() { _ = os.Unsetenv("SENTIMENT_HTTP_PORT") }()

	_, err := New()
	require.Error(t, err)
}

func TestValidate_RejectsEmptyInferenceURL(t *testing.T) {
	cfg := NewForTesting()
	cfg.InferenceURL = ""
	require.Error(t, cfg.Validate())
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := NewForTesting()
	cfg.HTTPPort = 8081
	assert.Equal(t, ":8081", cfg.GetHTTPAddr())
}
