package repository

import (
	"errors"
	"fmt"

	"snowmail-backend/internal/application/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// jobApplicationRepository implements JobApplicationRepository
type jobApplicationRepository struct {
	db *gorm.DB
}

// NewJobApplicationRepository creates a new instance of jobApplicationRepository
func NewJobApplicationRepository(db *gorm.DB) JobApplicationRepository {
	return &jobApplicationRepository{db: db}
}

func (r *jobApplicationRepository) CreateJobApplication(userID, jobTitle, companyName, recruiterEmail string) (*domain.JobApplication, error) {
	recruiterID, err := r.ensureRecruiter(recruiterEmail)
	if err != nil {
		return nil, err
	}

	app := &domain.JobApplication{
		AppID:       uuid.New().String(),
		UserID:      userID,
		JobTitle:    jobTitle,
		CompanyName: companyName,
		AppStatusID: domain.StatusApplied,
		RecruiterID: recruiterID,
	}
	if err := r.db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create job application: %w", err)
	}
	return app, nil
}

// ensureRecruiter returns the id of the recruiter row for email, creating it
// if it does not exist yet.
func (r *jobApplicationRepository) ensureRecruiter(email string) (uint, error) {
	var recruiter domain.Recruiter
	err := r.db.Where("email = ?", email).First(&recruiter).Error
	if err == nil {
		return recruiter.RecruiterID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	recruiter = domain.Recruiter{Email: email}
	if err := r.db.Create(&recruiter).Error; err != nil {
		return 0, fmt.Errorf("failed to create recruiter: %w", err)
	}
	return recruiter.RecruiterID, nil
}

func (r *jobApplicationRepository) ListByUser(userID string) ([]*domain.JobApplication, error) {
	var apps []*domain.JobApplication
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *jobApplicationRepository) ListByStatus(userID string, statusID int) ([]*domain.JobApplication, error) {
	var apps []*domain.JobApplication
	err := r.db.Where("user_id = ? AND app_status_id = ?", userID, statusID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *jobApplicationRepository) UpdateStatus(userID, appID string, statusID int) error {
	result := r.db.Model(&domain.JobApplication{}).
		Where("user_id = ? AND app_id = ?", userID, appID).
		Update("app_status_id", statusID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobApplicationRepository) Delete(userID, appID string) error {
	result := r.db.Where("user_id = ? AND app_id = ?", userID, appID).Delete(&domain.JobApplication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobApplicationRepository) RecruiterEmail(recruiterID uint) (string, error) {
	var recruiter domain.Recruiter
	err := r.db.Where("recruiter_id = ?", recruiterID).First(&recruiter).Error
	if err != nil {
		return "", err
	}
	return recruiter.Email, nil
}

func (r *jobApplicationRepository) RecruiterID(email string) (uint, error) {
	var recruiter domain.Recruiter
	err := r.db.Where("email = ?", email).First(&recruiter).Error
	if err != nil {
		return 0, err
	}
	return recruiter.RecruiterID, nil
}
