package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaService implements Service using Ollama local LLM
type OllamaService struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	// Use static values (for backward compatibility when no runtime config)
	return &OllamaService{
		getBaseURL: func() string { return baseURL },
		getModel:   func() string { return model },
	}
}

// NewOllamaServiceWithGetters creates a new Ollama service with dynamic getters
func NewOllamaServiceWithGetters(getBaseURL, getModel func() string) *OllamaService {
	return &OllamaService{
		getBaseURL: getBaseURL,
		getModel:   getModel,
	}
}

// ClassifyApplicationStatus implements Service
func (o *OllamaService) ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error) {
	prompt := fmt.Sprintf(`Determine the application status based on the email content. The status can be one of the following:
- APPLIED
- INTERVIEWING
- OFFER
- OTHER
- REJECTED

You can only reply with one of the five words listed above based on the email content, and make sure it is uppercase.
If the email content is inconclusive, you can reply with "OTHER".

Email content:
%s`, emailText)

	response, err := o.generate(ctx, prompt, map[string]interface{}{
		"temperature": 0.2,
		"num_predict": 10,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// GenerateApplicationEmail implements Service
func (o *OllamaService) GenerateApplicationEmail(ctx context.Context, req EmailGenerationRequest) (string, error) {
	prompt := fmt.Sprintf(`%s

The company I am looking to apply to is %s, with the following job description: %s.

Here is my resume:
%s

Send a job application email to the recruiter, %s, that is personalized, formal, and aligned with my profile, skills, and experience as they relate to the job description provided.
Sign the email with my name, %s.`,
		generationSystemPrompt, req.CompanyName, req.JobDescription, req.ResumeText, req.RecruiterName, req.ApplicantName)

	response, err := o.generate(ctx, prompt, map[string]interface{}{
		"temperature": 0.7,
		"num_predict": 500,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (o *OllamaService) generate(ctx context.Context, prompt string, options map[string]interface{}) (string, error) {
	url := o.getBaseURL() + "/api/generate"

	payload := map[string]interface{}{
		"model":   o.getModel(),
		"prompt":  prompt,
		"stream":  false,
		"options": options,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Response, nil
}
