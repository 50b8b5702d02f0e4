package models

import "time"

// Notification is an in-app message for one user, usually mirroring an e-mail
// the system sent. SubmissionID links it to the manuscript it concerns, when
// there is one.
type Notification struct {
	NotificationID int        `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID         int        `gorm:"column:user_id" json:"user_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Message        string     `gorm:"column:message" json:"message"`
	Type           string     `gorm:"column:type" json:"type"` // info|success|warning|error
	SubmissionID   *int       `gorm:"column:submission_id" json:"submission_id,omitempty"`
	IsRead         bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"-"`
}

// TableName overrides the table name for Notification.
func (Notification) TableName() string {
	return "notifications"
}
