package domain

import (
	"time"

	appdomain "snowmail-backend/internal/application/domain"
)

// ScannedAttachment is one attachment persisted during a scan: its sanitized
// filename and the signed URL it can be retrieved from.
type ScannedAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ScannedEmail is the transient result of one matched mailbox message. It
// lives for the duration of a sync session: produced by the scanner, consumed
// by classification and user confirmation, then discarded (its stored
// attachments deleted).
type ScannedEmail struct {
	SenderEmail string              `json:"sender_email"`
	Subject     string              `json:"subject"`
	Body        string              `json:"body"`
	Attachments []ScannedAttachment `json:"attachments"`
	ReceivedAt  time.Time           `json:"received_at"`
}

// ClassifiedEmail is a ScannedEmail with the classifier's suggested status
// and the user's applications matching the sender, ready for confirmation.
type ClassifiedEmail struct {
	ScannedEmail
	SuggestedStatusID int                           `json:"suggested_status_id"`
	SuggestedStatus   string                        `json:"suggested_status"`
	MatchingJobs      []appdomain.JobProgressWithID `json:"matching_jobs"`
}
