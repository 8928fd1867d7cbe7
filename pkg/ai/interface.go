package ai

import (
	"context"
)

// EmailGenerationRequest carries everything the generator needs to draft a
// job application email.
type EmailGenerationRequest struct {
	CompanyName    string `json:"company_name"`
	JobDescription string `json:"job_description"`
	RecruiterName  string `json:"recruiter_name"`
	ApplicantName  string `json:"applicant_name"`
	ResumeText     string `json:"resume_text"`
}

// Service is the interface for LLM-backed features: status classification of
// recruiter emails and application email drafting.
// Implement this interface to add new AI providers (OpenAI, Ollama, etc.)
type Service interface {
	ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error)
	GenerateApplicationEmail(ctx context.Context, req EmailGenerationRequest) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
