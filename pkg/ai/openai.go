package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const generationSystemPrompt = `You are a professional email generator that creates highly effective job application emails.
The emails should be personalized, formal, and aligned with the user's profile, skills, and experience as they relate to the job description provided.
Ensure the email includes:
- A courteous and professional greeting with "Hi" or "Hello", followed by the recruiter's name
- A brief introduction of the applicant
- Highlights of relevant skills and experiences tailored to the job description
- A clear, polite call to action for follow-up
- Always specify the subject with "Subject:" followed by the subject of the email
- A formal closing with the applicant's name and something like "Best regards" or "Sincerely"
- Keep the tone professional and succinct, avoiding overly casual language or excessive detail.`

// OpenAIService implements Service using the OpenAI chat completions API
type OpenAIService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIService creates a new OpenAI service
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &OpenAIService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ClassifyApplicationStatus implements Service. The model is instructed to
// answer with exactly one status word; callers still validate the reply.
func (o *OpenAIService) ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error) {
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

	content, err := o.complete(ctx, []chatMessage{
		{Role: "user", Content: prompt},
	}, 10)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// GenerateApplicationEmail implements Service
func (o *OpenAIService) GenerateApplicationEmail(ctx context.Context, req EmailGenerationRequest) (string, error) {
	prompt := fmt.Sprintf(`The company I am looking to apply to is %s, with the following job description: %s.

Here is my resume:
%s

Send a job application email to the recruiter, %s, that is personalized, formal, and aligned with my profile, skills, and experience as they relate to the job description provided.
Try to highlight the most relevant skills and experiences from my resume that match the job description, and if the job description is vague, focus on general skills and experiences that are applicable to the role.
Sign the email with my name, %s.`,
		req.CompanyName, req.JobDescription, req.ResumeText, req.RecruiterName, req.ApplicantName)

	content, err := o.complete(ctx, []chatMessage{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: prompt},
	}, 500)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (o *OpenAIService) complete(ctx context.Context, messages []chatMessage, maxTokens int) (string, error) {
	payload := chatCompletionRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
