package repository

import (
	"time"

	"snowmail-backend/internal/application/domain"
)

// JobApplicationRepository defines the interface for job application and
// recruiter persistence.
type JobApplicationRepository interface {
	// Create a new application for userID, reusing an existing recruiter row
	// for recruiterEmail or creating one.
	CreateJobApplication(userID, jobTitle, companyName, recruiterEmail string) (*domain.JobApplication, error)
	// List all applications for a user
	ListByUser(userID string) ([]*domain.JobApplication, error)
	// List a user's applications with a given status
	ListByStatus(userID string, statusID int) ([]*domain.JobApplication, error)
	// Update the status of one of userID's applications in place
	UpdateStatus(userID, appID string, statusID int) error
	// Delete one of userID's application rows entirely
	Delete(userID, appID string) error
	// Resolve a recruiter id to its email address
	RecruiterEmail(recruiterID uint) (string, error)
	// Resolve a recruiter email address to its id
	RecruiterID(email string) (uint, error)
}

// UserProfileRepository defines the interface for the credential and
// checkpoint slice of the user profile.
type UserProfileRepository interface {
	// Linked mailbox account, "" if the user never linked one
	GetLinkedAccount(userID string) (string, error)
	// Encrypted app password, "" if absent
	GetAppPassword(userID string) (string, error)
	// Store (or replace) the linked account and encrypted app password
	SetMailboxCredentials(userID, account, encryptedPassword string) error
	// Last successfully scanned mailbox instant; zero time if never set
	GetRefreshTime(userID string) (time.Time, error)
	// Overwrite the checkpoint
	SetRefreshTime(userID string, t time.Time) error
}
