package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingService struct {
	err error
}

func (f *failingService) ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error) {
	return "", f.err
}

func (f *failingService) GenerateApplicationEmail(ctx context.Context, req EmailGenerationRequest) (string, error) {
	return "", f.err
}

func newOllamaStub(t *testing.T, response string) *OllamaService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": response,
			"done":     true,
		})
	}))
	t.Cleanup(server.Close)
	return NewOllamaService(server.URL, "llama3")
}

func TestFallbackUsesOllamaOnQuotaError(t *testing.T) {
	openai := &failingService{err: errors.New("openai API error (429): insufficient_quota")}
	ollama := newOllamaStub(t, "REJECTED")

	svc := NewFallbackService(openai, ollama)

	status, err := svc.ClassifyApplicationStatus(context.Background(), "unfortunately...")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", status)
}

func TestFallbackUsesOllamaOnConnectionError(t *testing.T) {
	openai := &failingService{err: errors.New("dial tcp 127.0.0.1:443: connection refused")}
	ollama := newOllamaStub(t, "Subject: Application\n\nHi Jane,")

	svc := NewFallbackService(openai, ollama)

	email, err := svc.GenerateApplicationEmail(context.Background(), EmailGenerationRequest{})
	require.NoError(t, err)
	assert.Contains(t, email, "Subject:")
}

func TestFallbackNoProviders(t *testing.T) {
	svc := NewFallbackService(nil, nil)

	_, err := svc.ClassifyApplicationStatus(context.Background(), "text")
	assert.Error(t, err)

	_, err = svc.GenerateApplicationEmail(context.Background(), EmailGenerationRequest{})
	assert.Error(t, err)
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(errors.New("API error (429)")))
	assert.True(t, isQuotaError(errors.New("rate limit exceeded")))
	assert.False(t, isQuotaError(errors.New("bad request")))
	assert.False(t, isQuotaError(nil))
}

func TestIsConnectionError(t *testing.T) {
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("no such host")))
	assert.False(t, isConnectionError(errors.New("invalid model")))
	assert.False(t, isConnectionError(nil))
}
