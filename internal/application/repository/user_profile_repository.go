package repository

import (
	"errors"
	"time"

	"snowmail-backend/internal/application/domain"

	"gorm.io/gorm"
)

// userProfileRepository implements UserProfileRepository
type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new instance of userProfileRepository
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) find(userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepository) GetLinkedAccount(userID string) (string, error) {
	profile, err := r.find(userID)
	if err != nil || profile == nil {
		return "", err
	}
	return profile.LinkedEmailAccount, nil
}

func (r *userProfileRepository) GetAppPassword(userID string) (string, error) {
	profile, err := r.find(userID)
	if err != nil || profile == nil {
		return "", err
	}
	return profile.EmailAppPassword, nil
}

func (r *userProfileRepository) SetMailboxCredentials(userID, account, encryptedPassword string) error {
	profile, err := r.find(userID)
	if err != nil {
		return err
	}

	if profile == nil {
		profile = &domain.UserProfile{
			UserID:             userID,
			LinkedEmailAccount: account,
			EmailAppPassword:   encryptedPassword,
		}
		return r.db.Create(profile).Error
	}

	return r.db.Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"linked_email_account": account,
			"email_app_password":   encryptedPassword,
		}).Error
}

func (r *userProfileRepository) GetRefreshTime(userID string) (time.Time, error) {
	profile, err := r.find(userID)
	if err != nil || profile == nil {
		return time.Time{}, err
	}
	if profile.LastEmailRefreshTime == nil {
		return time.Time{}, nil
	}
	return *profile.LastEmailRefreshTime, nil
}

func (r *userProfileRepository) SetRefreshTime(userID string, t time.Time) error {
	profile, err := r.find(userID)
	if err != nil {
		return err
	}

	if profile == nil {
		profile = &domain.UserProfile{
			UserID:               userID,
			LastEmailRefreshTime: &t,
		}
		return r.db.Create(profile).Error
	}

	return r.db.Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Update("last_email_refresh_time", t).Error
}
