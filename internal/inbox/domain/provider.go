package domain

import (
	"context"
	"io"
	"time"
)

// MailboxScanner scans a mailbox for messages newer than checkpoint whose
// sender is in trackedSenders. Results are returned newest-first. Attachments
// of matched messages are persisted through the scanner's attachment store
// before the caller ever confirms anything; cleanup is the caller's job.
type MailboxScanner interface {
	Scan(ctx context.Context, account, password string, checkpoint time.Time, trackedSenders []string) ([]ScannedEmail, error)
}

// AttachmentStore persists attachment blobs and hands back retrieval URLs.
type AttachmentStore interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// StatusClassifier maps an email body to an application status label. The
// reply is free text from a model; callers must tolerate labels outside the
// known set and fall back to OTHER.
type StatusClassifier interface {
	ClassifyApplicationStatus(ctx context.Context, emailText string) (string, error)
}
