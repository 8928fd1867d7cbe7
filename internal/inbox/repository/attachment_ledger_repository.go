package repository

import (
	"time"

	"snowmail-backend/internal/inbox/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attachmentLedgerRepository implements AttachmentLedgerRepository
type attachmentLedgerRepository struct {
	db *gorm.DB
}

// NewAttachmentLedgerRepository creates a new instance of attachmentLedgerRepository
func NewAttachmentLedgerRepository(db *gorm.DB) AttachmentLedgerRepository {
	return &attachmentLedgerRepository{db: db}
}

func (r *attachmentLedgerRepository) Record(userID, name, url string) error {
	entry := &domain.UploadedAttachment{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		URL:    url,
	}
	return r.db.Create(entry).Error
}

func (r *attachmentLedgerRepository) Remove(userID, name string) error {
	return r.db.Where("user_id = ? AND name = ?", userID, name).
		Delete(&domain.UploadedAttachment{}).Error
}

func (r *attachmentLedgerRepository) ListOlderThan(cutoff time.Time) ([]domain.UploadedAttachment, error) {
	var entries []domain.UploadedAttachment
	err := r.db.Where("created_at < ?", cutoff).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *attachmentLedgerRepository) RemoveByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.UploadedAttachment{}).Error
}
