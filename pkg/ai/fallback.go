package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService implements smart AI provider routing with fallback
// - Classification: OpenAI first (better quality), fallback to Ollama
// - Email generation: OpenAI first, fallback to Ollama
type FallbackService struct {
	openai Service
	ollama *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(openai Service, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		openai: openai,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors
	if _, ok := err.(net.Error); ok {
		return true
	}

	// Check for common connection error messages
	errStr := err.Error()
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(indicator)) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"insufficient_quota",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(indicator)) {
			return true
		}
	}

	return false
}

// ClassifyApplicationStatus tries OpenAI first (better quality), falls back to Ollama
func (f *FallbackService) ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error) {
	if f.openai != nil {
		result, err := f.openai.ClassifyApplicationStatus(ctx, emailText)
		if err == nil {
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] OpenAI quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] OpenAI error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.ClassifyApplicationStatus(ctx, emailText)
		if err == nil {
			return result, nil
		}

		if isConnectionError(err) && f.openai != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying OpenAI", err)
			return f.openai.ClassifyApplicationStatus(ctx, emailText)
		}

		return "", fmt.Errorf("ollama classification failed: %w", err)
	}

	return "", fmt.Errorf("no AI provider available for classification")
}

// GenerateApplicationEmail tries OpenAI first, falls back to Ollama on quota/connection errors
func (f *FallbackService) GenerateApplicationEmail(ctx context.Context, req EmailGenerationRequest) (string, error) {
	if f.openai != nil {
		log.Println("[AI] Trying OpenAI for email generation...")
		result, err := f.openai.GenerateApplicationEmail(ctx, req)
		if err == nil {
			log.Println("[AI] OpenAI email generation successful")
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] OpenAI quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] OpenAI error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		log.Println("[AI] Using Ollama for email generation...")
		result, err := f.ollama.GenerateApplicationEmail(ctx, req)
		if err == nil {
			log.Println("[AI] Ollama email generation successful")
			return result, nil
		}

		if isConnectionError(err) && f.openai != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying OpenAI", err)
			return f.openai.GenerateApplicationEmail(ctx, req)
		}

		return "", fmt.Errorf("ollama email generation failed: %w", err)
	}

	return "", fmt.Errorf("no AI provider available for email generation")
}
