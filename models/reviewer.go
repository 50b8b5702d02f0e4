package models

import "time"

// Reviewer invitation statuses.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
	InvitationExpired  = "expired"
)

// SuggestedReviewer represents the suggested_reviewers table. Follows the
// same optional-user-reference pattern as CoAuthor. EditorApproved is set
// only by editorial staff, never by the reviewer's own response.
type SuggestedReviewer struct {
	SuggestedReviewerID int  `gorm:"primaryKey;column:suggested_reviewer_id" json:"suggested_reviewer_id"`
	SubmissionID        int  `gorm:"column:submission_id" json:"submission_id"`
	UserID              *int `gorm:"column:user_id" json:"user_id,omitempty"`

	FirstName   string  `gorm:"column:first_name" json:"first_name"`
	LastName    string  `gorm:"column:last_name" json:"last_name"`
	Email       string  `gorm:"column:email" json:"email"`
	Affiliation *string `gorm:"column:affiliation" json:"affiliation,omitempty"`

	DisplayOrder int `gorm:"column:display_order" json:"display_order"`

	InvitationStatus    string     `gorm:"column:invitation_status" json:"invitation_status"`
	InvitationToken     *string    `gorm:"column:invitation_token" json:"-"`
	InvitationSentAt    *time.Time `gorm:"column:invitation_sent_at" json:"invitation_sent_at,omitempty"`
	InvitationExpiresAt *time.Time `gorm:"column:invitation_expires_at" json:"-"`
	RespondedAt         *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`

	EditorApproved bool `gorm:"column:editor_approved" json:"editor_approved"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides the table name for SuggestedReviewer.
func (SuggestedReviewer) TableName() string {
	return "suggested_reviewers"
}
