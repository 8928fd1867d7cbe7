package usecase

import (
	"errors"
	"fmt"
	"log"
	"time"

	"snowmail-backend/internal/application/domain"
	"snowmail-backend/internal/application/repository"
	"snowmail-backend/pkg/crypto"

	"gorm.io/gorm"
)

// progressUsecase implements ProgressUsecase
type progressUsecase struct {
	appRepo       repository.JobApplicationRepository
	profileRepo   repository.UserProfileRepository
	encryptionKey string
}

// NewProgressUsecase creates a new instance of progressUsecase
func NewProgressUsecase(appRepo repository.JobApplicationRepository, profileRepo repository.UserProfileRepository, encryptionKey string) ProgressUsecase {
	return &progressUsecase{
		appRepo:       appRepo,
		profileRepo:   profileRepo,
		encryptionKey: encryptionKey,
	}
}

func (u *progressUsecase) GetProgress(userID string) (*domain.Progress, error) {
	progress := &domain.Progress{}

	buckets := []struct {
		statusID int
		jobs     *[]domain.JobProgress
		count    *int
	}{
		{domain.StatusApplied, &progress.AppliedJobs, &progress.AppliedCount},
		{domain.StatusInterviewing, &progress.InterviewingJobs, &progress.InterviewingCount},
		{domain.StatusOffer, &progress.OfferJobs, &progress.OfferCount},
		{domain.StatusOther, &progress.OtherJobs, &progress.OtherCount},
	}

	for _, bucket := range buckets {
		apps, err := u.appRepo.ListByStatus(userID, bucket.statusID)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s applications: %w", domain.StatusLabel(bucket.statusID), err)
		}
		for _, app := range apps {
			summary, err := u.summarize(app)
			if err != nil {
				return nil, err
			}
			*bucket.jobs = append(*bucket.jobs, summary.JobProgress)
		}
		*bucket.count = len(apps)
	}

	return progress, nil
}

func (u *progressUsecase) ListJobs(userID string) ([]domain.JobProgressWithID, error) {
	apps, err := u.appRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return u.summarizeAll(apps)
}

func (u *progressUsecase) CorrespondingJobs(userID, recruiterEmail string) ([]domain.JobProgressWithID, error) {
	recruiterID, err := u.appRepo.RecruiterID(recruiterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve recruiter: %w", err)
	}

	apps, err := u.appRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	var matching []*domain.JobApplication
	for _, app := range apps {
		if app.RecruiterID == recruiterID {
			matching = append(matching, app)
		}
	}
	return u.summarizeAll(matching)
}

func (u *progressUsecase) ApplyStatus(userID, appID string, statusID int) error {
	if !domain.IsValidStatus(statusID) {
		return fmt.Errorf("invalid status id %d", statusID)
	}

	// A rejection ends tracking for the application
	if statusID == domain.StatusRejected {
		return u.appRepo.Delete(userID, appID)
	}
	return u.appRepo.UpdateStatus(userID, appID, statusID)
}

func (u *progressUsecase) CreateJobApplication(userID, jobTitle, companyName, recruiterEmail string) error {
	existing, err := u.appRepo.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if _, err := u.appRepo.CreateJobApplication(userID, jobTitle, companyName, recruiterEmail); err != nil {
		return err
	}

	// First application: anchor the scan checkpoint to now so the first sync
	// does not trawl the whole mailbox history.
	if len(existing) == 0 {
		if err := u.profileRepo.SetRefreshTime(userID, time.Now()); err != nil {
			log.Printf("[Progress] Failed to initialize refresh time for user %s: %v", userID, err)
		}
	}

	return nil
}

func (u *progressUsecase) LinkMailbox(userID, account, appPassword string) error {
	if account == "" || appPassword == "" {
		return fmt.Errorf("account and app password are required")
	}

	encrypted, err := crypto.Encrypt(appPassword, u.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt app password: %w", err)
	}
	return u.profileRepo.SetMailboxCredentials(userID, account, encrypted)
}

func (u *progressUsecase) summarize(app *domain.JobApplication) (domain.JobProgressWithID, error) {
	email, err := u.appRepo.RecruiterEmail(app.RecruiterID)
	if err != nil {
		return domain.JobProgressWithID{}, fmt.Errorf("failed to resolve recruiter for application %s: %w", app.AppID, err)
	}
	return domain.JobProgressWithID{
		JobProgress: domain.JobProgress{
			JobTitle:       app.JobTitle,
			CompanyName:    app.CompanyName,
			RecruiterEmail: email,
		},
		AppID: app.AppID,
	}, nil
}

func (u *progressUsecase) summarizeAll(apps []*domain.JobApplication) ([]domain.JobProgressWithID, error) {
	var summaries []domain.JobProgressWithID
	for _, app := range apps {
		summary, err := u.summarize(app)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
