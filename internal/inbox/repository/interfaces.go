package repository

import (
	"time"

	"snowmail-backend/internal/inbox/domain"
)

// AttachmentLedgerRepository tracks attachment blobs written to storage so
// abandoned ones can be found and cleaned up later.
type AttachmentLedgerRepository interface {
	Record(userID, name, url string) error
	Remove(userID, name string) error
	ListOlderThan(cutoff time.Time) ([]domain.UploadedAttachment, error)
	RemoveByID(id string) error
}
