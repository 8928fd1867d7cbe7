package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIStub(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OpenAIService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewOpenAIService("test-key", server.URL, "gpt-3.5-turbo")
}

func TestClassifyApplicationStatus(t *testing.T) {
	var captured chatCompletionRequest
	_, svc := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(chatCompletionResponse{
			ID: "cmpl-1",
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: " INTERVIEWING \n"}},
			},
		})
	})

	status, err := svc.ClassifyApplicationStatus(context.Background(), "We'd like to schedule an interview")
	require.NoError(t, err)
	assert.Equal(t, "INTERVIEWING", status)

	assert.Equal(t, "gpt-3.5-turbo", captured.Model)
	require.Len(t, captured.Messages, 1)
	assert.Contains(t, captured.Messages[0].Content, "schedule an interview")
	assert.Contains(t, captured.Messages[0].Content, "APPLIED")
}

func TestGenerateApplicationEmailSendsSystemPrompt(t *testing.T) {
	var captured chatCompletionRequest
	_, svc := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "Subject: Application\n\nHi Jane,..."}},
			},
		})
	})

	email, err := svc.GenerateApplicationEmail(context.Background(), EmailGenerationRequest{
		CompanyName:    "Corp",
		JobDescription: "Backend role",
		RecruiterName:  "Jane",
		ApplicantName:  "John",
		ResumeText:     "Go, Postgres",
	})
	require.NoError(t, err)
	assert.Contains(t, email, "Subject:")

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "Corp")
	assert.Contains(t, captured.Messages[1].Content, "Jane")
}

func TestClassifyAPIError(t *testing.T) {
	_, svc := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"insufficient_quota"}`, http.StatusTooManyRequests)
	})

	_, err := svc.ClassifyApplicationStatus(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClassifyNoChoices(t *testing.T) {
	_, svc := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{ID: "cmpl-2"})
	})

	_, err := svc.ClassifyApplicationStatus(context.Background(), "text")
	assert.Error(t, err)
}
