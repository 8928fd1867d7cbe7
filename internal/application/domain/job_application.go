package domain

import (
	"strings"
	"time"
)

// Application status ids as stored in app_status_id. Status 5 (rejected) is
// never stored: applying it deletes the row instead.
const (
	StatusApplied      = 1
	StatusInterviewing = 2
	StatusOffer        = 3
	StatusOther        = 4
	StatusRejected     = 5
)

var statusLabels = map[int]string{
	StatusApplied:      "APPLIED",
	StatusInterviewing: "INTERVIEWING",
	StatusOffer:        "OFFER",
	StatusOther:        "OTHER",
	StatusRejected:     "REJECTED",
}

// StatusLabel returns the display label for a status id, or "OTHER" for an
// unknown id.
func StatusLabel(statusID int) string {
	if label, ok := statusLabels[statusID]; ok {
		return label
	}
	return "OTHER"
}

// ParseStatusLabel maps a classifier reply to a status id. Anything that is
// not an exact (case-insensitive) match falls back to OTHER.
func ParseStatusLabel(label string) int {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for id, l := range statusLabels {
		if l == normalized {
			return id
		}
	}
	return StatusOther
}

// IsValidStatus reports whether statusID is one of the five known ids.
func IsValidStatus(statusID int) bool {
	_, ok := statusLabels[statusID]
	return ok
}

// JobApplication is one tracked application. Created when an outbound
// application email is sent, mutated only through the progress usecase.
type JobApplication struct {
	AppID       string    `json:"app_id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	JobTitle    string    `json:"job_title" gorm:"not null"`
	CompanyName string    `json:"company_name" gorm:"not null"`
	AppStatusID int       `json:"app_status_id" gorm:"index:idx_user_status;not null"`
	RecruiterID uint      `json:"recruiter_id" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (JobApplication) TableName() string {
	return "job_application_details"
}

// Recruiter holds one known recruiter contact address. Shared between
// applications, so the same sender address maps to a single row.
type Recruiter struct {
	RecruiterID uint      `json:"recruiter_id" gorm:"primaryKey;autoIncrement"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobProgress is the per-job summary shown on the progress dashboard.
type JobProgress struct {
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	RecruiterEmail string `json:"recruiter_email"`
}

// JobProgressWithID pairs a summary with its application id, for flows where
// the caller picks one application to update.
type JobProgressWithID struct {
	JobProgress
	AppID string `json:"app_id"`
}

// Progress buckets a user's applications by status. Rejected applications are
// deleted rather than tracked, so there is no rejected bucket.
type Progress struct {
	AppliedCount      int           `json:"applied_count"`
	InterviewingCount int           `json:"interviewing_count"`
	OfferCount        int           `json:"offer_count"`
	OtherCount        int           `json:"other_count"`
	AppliedJobs       []JobProgress `json:"applied_jobs"`
	InterviewingJobs  []JobProgress `json:"interviewing_jobs"`
	OfferJobs         []JobProgress `json:"offer_jobs"`
	OtherJobs         []JobProgress `json:"other_jobs"`
}
