package models

// SubmissionSequence backs the year-scoped running counter for submission
// numbers. LastNumber is only advanced through a compare-and-swap update so
// concurrent submissions can never reserve the same number.
type SubmissionSequence struct {
	Year       int `gorm:"primaryKey;column:year" json:"year"`
	LastNumber int `gorm:"column:last_number" json:"last_number"`
}

// TableName overrides the table name for SubmissionSequence.
func (SubmissionSequence) TableName() string {
	return "submission_sequences"
}
