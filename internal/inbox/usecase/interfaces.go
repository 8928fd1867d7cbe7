package usecase

import (
	"context"

	"snowmail-backend/internal/inbox/domain"
)

// SyncUsecase defines the interface for the mailbox sync session: scan,
// classify, confirm or discard, then advance the checkpoint.
type SyncUsecase interface {
	// Scan the linked mailbox for new recruiter emails and classify them
	Sync(ctx context.Context, userID string) ([]domain.ClassifiedEmail, error)
	// Apply a confirmed status to an application and clean up the email's
	// stored attachments
	ConfirmStatus(ctx context.Context, userID, appID string, statusID int, attachmentNames []string) error
	// Drop a scanned email without acting on it
	DiscardEmail(ctx context.Context, userID string, attachmentNames []string) error
	// Mark the sync session finished, advancing the scan checkpoint
	CompleteSync(userID string) error
}
