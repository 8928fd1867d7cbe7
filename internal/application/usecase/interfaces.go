package usecase

import (
	"snowmail-backend/internal/application/domain"
)

// ProgressUsecase defines the interface for job application progress
// tracking and mailbox credential management.
type ProgressUsecase interface {
	// Full progress snapshot bucketed by status; fails as a whole if any
	// lookup fails
	GetProgress(userID string) (*domain.Progress, error)
	// All of a user's applications, newest first, with ids
	ListJobs(userID string) ([]domain.JobProgressWithID, error)
	// Applications whose recruiter matches the given email
	CorrespondingJobs(userID, recruiterEmail string) ([]domain.JobProgressWithID, error)
	// Move one of the user's applications to a new status; REJECTED deletes
	// the row
	ApplyStatus(userID, appID string, statusID int) error
	// Record a freshly sent application, starting at APPLIED
	CreateJobApplication(userID, jobTitle, companyName, recruiterEmail string) error
	// Store mailbox credentials; the app password is encrypted at rest
	LinkMailbox(userID, account, appPassword string) error
}
