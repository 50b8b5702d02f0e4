package models

import "time"

// Co-author consent statuses.
const (
	ConsentPending  = "pending"
	ConsentAccepted = "accepted"
	ConsentRejected = "rejected"
)

// CoAuthor represents the co_authors table. A co-author either references a
// registered user or stays a manual entry until that person registers, at
// which point reconciliation claims the row by e-mail match. The consent
// workflow is identical either way.
type CoAuthor struct {
	CoAuthorID   int  `gorm:"primaryKey;column:co_author_id" json:"co_author_id"`
	SubmissionID int  `gorm:"column:submission_id" json:"submission_id"`
	UserID       *int `gorm:"column:user_id" json:"user_id,omitempty"`

	FirstName   string  `gorm:"column:first_name" json:"first_name"`
	LastName    string  `gorm:"column:last_name" json:"last_name"`
	Email       string  `gorm:"column:email" json:"email"`
	Affiliation *string `gorm:"column:affiliation" json:"affiliation,omitempty"`

	AuthorOrder     int  `gorm:"column:author_order" json:"author_order"`
	IsCorresponding bool `gorm:"column:is_corresponding" json:"is_corresponding"`

	ConsentStatus         string     `gorm:"column:consent_status" json:"consent_status"`
	ConsentToken          *string    `gorm:"column:consent_token" json:"-"`
	ConsentTokenExpiresAt *time.Time `gorm:"column:consent_token_expires_at" json:"-"`
	ConsentDate           *time.Time `gorm:"column:consent_date" json:"consent_date,omitempty"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides the table name for CoAuthor.
func (CoAuthor) TableName() string {
	return "co_authors"
}
