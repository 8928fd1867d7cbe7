package usecase

import (
	"context"

	"snowmail-backend/internal/outreach/domain"
)

// OutreachUsecase defines the interface for drafting and sending job
// application emails.
type OutreachUsecase interface {
	// Draft an application email with the configured LLM provider
	GenerateEmail(ctx context.Context, req domain.GenerateEmailRequest) (string, error)
	// Send an application email through the user's linked mailbox and record
	// the application
	SendEmail(ctx context.Context, userID string, req domain.SendEmailRequest) error
}
