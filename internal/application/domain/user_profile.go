package domain

import "time"

// UserProfile carries the slice of the profile this service owns: the linked
// mailbox credentials and the inbox sync checkpoint. The app password is
// stored encrypted (see pkg/crypto).
type UserProfile struct {
	UserID               string     `json:"user_id" gorm:"primaryKey"`
	LinkedEmailAccount   string     `json:"linked_email_account"`
	EmailAppPassword     string     `json:"-" gorm:"column:email_app_password"`
	LastEmailRefreshTime *time.Time `json:"last_email_refresh_time"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
