package models

import "time"

// ManuscriptVersion represents the manuscript_versions table: one row per
// uploaded file set within a cycle, unique on (submission_id, version_number)
// with version numbers strictly increasing from 1. Rows are immutable; a new
// revision always creates a new version instead of mutating an old one.
type ManuscriptVersion struct {
	VersionID     int `gorm:"primaryKey;column:version_id" json:"version_id"`
	SubmissionID  int `gorm:"column:submission_id;uniqueIndex:uniq_submission_version" json:"submission_id"`
	VersionNumber int `gorm:"column:version_number;uniqueIndex:uniq_submission_version" json:"version_number"`

	CycleID *int `gorm:"column:cycle_id" json:"cycle_id,omitempty"`

	FileRefs []int    `gorm:"column:file_refs;serializer:json" json:"file_refs"`
	Remarks  []string `gorm:"column:remarks;serializer:json" json:"remarks,omitempty"`

	UploadedBy   int    `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploaderRole string `gorm:"column:uploader_role" json:"uploader_role"`

	CreateAt time.Time `gorm:"column:create_at" json:"create_at"`

	Uploader *User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// TableName overrides the table name for ManuscriptVersion.
func (ManuscriptVersion) TableName() string {
	return "manuscript_versions"
}
