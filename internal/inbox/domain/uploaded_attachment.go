package domain

import "time"

// UploadedAttachment records one attachment blob written to storage during a
// scan. Rows are removed when the attachment is deleted after confirmation or
// discard; the cleanup scheduler removes whatever is left behind by abandoned
// sync sessions.
type UploadedAttachment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (UploadedAttachment) TableName() string {
	return "uploaded_attachments"
}
