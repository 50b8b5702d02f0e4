package models

import (
	"time"

	"journal-management-api/errs"
)

// Submission lifecycle statuses.
const (
	StatusDraft                 = "draft"
	StatusSubmitted             = "submitted"
	StatusUnderReview           = "under_review"
	StatusRevisionRequested     = "revision_requested"
	StatusProvisionallyAccepted = "provisionally_accepted"
	StatusAccepted              = "accepted"
	StatusRejected              = "rejected"
)

// Article types accepted by the journal.
const (
	ArticleTypeOriginal      = "original_article"
	ArticleTypeReview        = "review_article"
	ArticleTypeCaseReport    = "case_report"
	ArticleTypeShortComm     = "short_communication"
	ArticleTypeLetter        = "letter_to_editor"
)

// ValidArticleTypes enumerates the closed article-type set.
var ValidArticleTypes = []string{
	ArticleTypeOriginal,
	ArticleTypeReview,
	ArticleTypeCaseReport,
	ArticleTypeShortComm,
	ArticleTypeLetter,
}

// Submission represents the submissions table: one manuscript with its full
// editorial metadata, tracked as a single aggregate across its lifetime.
// Rows are never hard-deleted; accepted/rejected are terminal statuses.
type Submission struct {
	SubmissionID     int    `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string `gorm:"column:submission_number" json:"submission_number"`

	ArticleType  string `gorm:"column:article_type" json:"article_type"`
	Title        string `gorm:"column:title" json:"title"`
	RunningTitle string `gorm:"column:running_title" json:"running_title"`
	Abstract     string `gorm:"column:abstract" json:"abstract"`

	WordCount   int `gorm:"column:word_count" json:"word_count"`
	FigureCount int `gorm:"column:figure_count" json:"figure_count"`
	TableCount  int `gorm:"column:table_count" json:"table_count"`
	PageCount   int `gorm:"column:page_count" json:"page_count"`

	Keywords []string `gorm:"column:keywords;serializer:json" json:"keywords"`

	IECNumber         *string `gorm:"column:iec_number" json:"iec_number,omitempty"`
	ProsperoNumber    *string `gorm:"column:prospero_number" json:"prospero_number,omitempty"`
	TrialRegistration *string `gorm:"column:trial_registration" json:"trial_registration,omitempty"`

	AuthorID              int  `gorm:"column:author_id" json:"author_id"`
	AuthorIsCorresponding bool `gorm:"column:author_is_corresponding" json:"author_is_corresponding"`

	Status        string `gorm:"column:status" json:"status"`
	PaymentStatus bool   `gorm:"column:payment_status" json:"payment_status"`

	ChecklistVersion string `gorm:"column:checklist_version" json:"checklist_version"`
	CopeCompliance   bool   `gorm:"column:cope_compliance" json:"cope_compliance"`

	// Conflict of interest must be explicitly declared before submission,
	// hence the nullable bool: nil means "not yet answered".
	HasConflict     *bool   `gorm:"column:has_conflict" json:"has_conflict"`
	ConflictDetails *string `gorm:"column:conflict_details" json:"conflict_details,omitempty"`

	CopyrightAccepted   bool       `gorm:"column:copyright_accepted" json:"copyright_accepted"`
	CopyrightAcceptedAt *time.Time `gorm:"column:copyright_accepted_at" json:"copyright_accepted_at,omitempty"`
	CopyrightOrigin     *string    `gorm:"column:copyright_origin" json:"copyright_origin,omitempty"`

	PdfPreviewConfirmed bool `gorm:"column:pdf_preview_confirmed" json:"pdf_preview_confirmed"`

	AssignedEditorID *int       `gorm:"column:assigned_editor_id" json:"assigned_editor_id,omitempty"`
	AssignedEditorAt *time.Time `gorm:"column:assigned_editor_at" json:"assigned_editor_at,omitempty"`

	InternalNotes *string `gorm:"column:internal_notes" json:"internal_notes,omitempty"`

	CurrentCycleID *int `gorm:"column:current_cycle_id" json:"current_cycle_id,omitempty"`

	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	AcceptedAt  *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`

	// LockVersion backs optimistic conditional writes on status transitions.
	LockVersion int `gorm:"column:lock_version" json:"-"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Author             *User                     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AssignedEditor     *User                     `gorm:"foreignKey:AssignedEditorID" json:"assigned_editor,omitempty"`
	CoAuthors          []CoAuthor                `gorm:"foreignKey:SubmissionID" json:"co_authors,omitempty"`
	SuggestedReviewers []SuggestedReviewer       `gorm:"foreignKey:SubmissionID" json:"suggested_reviewers,omitempty"`
	ChecklistResponses []ChecklistResponse       `gorm:"foreignKey:SubmissionID" json:"checklist_responses,omitempty"`
	Files              []SubmissionFile          `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	TechnicalEditors   []AssignedTechnicalEditor `gorm:"foreignKey:SubmissionID" json:"assigned_technical_editors,omitempty"`
	Reviewers          []AssignedReviewer        `gorm:"foreignKey:SubmissionID" json:"assigned_reviewers,omitempty"`
	CurrentCycle       *SubmissionCycle          `gorm:"foreignKey:CurrentCycleID" json:"current_cycle,omitempty"`
}

// ChecklistResponse stores one per-question answer of the declaration
// checklist. Answers use YES/NO/NA.
type ChecklistResponse struct {
	ResponseID   int       `gorm:"primaryKey;column:response_id" json:"response_id"`
	SubmissionID int       `gorm:"column:submission_id;uniqueIndex:uniq_submission_question" json:"submission_id"`
	QuestionCode string    `gorm:"column:question_code;uniqueIndex:uniq_submission_question" json:"question_code"`
	Answer       string    `gorm:"column:answer" json:"answer"` // YES|NO|NA
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time `gorm:"column:update_at" json:"update_at"`
}

// SubmissionFile kinds.
const (
	FileKindCoverLetter     = "cover_letter"
	FileKindBlindManuscript = "blind_manuscript"
	FileKindFigure          = "figure"
	FileKindTable           = "table"
	FileKindSupplement      = "supplement"
)

// SubmissionFile links an uploaded file to a submission under a specific kind.
// Files start out temporary and are pinned when the manuscript is submitted.
type SubmissionFile struct {
	SubmissionFileID int        `gorm:"primaryKey;column:submission_file_id" json:"submission_file_id"`
	SubmissionID     int        `gorm:"column:submission_id" json:"submission_id"`
	FileID           int        `gorm:"column:file_id" json:"file_id"`
	Kind             string     `gorm:"column:kind" json:"kind"`
	IsTemporary      bool       `gorm:"column:is_temporary" json:"is_temporary"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	File *FileUpload `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

// Technical editor assignment statuses.
const (
	TechEditorPending    = "pending"
	TechEditorInProgress = "in_progress"
	TechEditorCompleted  = "completed"
)

type AssignedTechnicalEditor struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	Status       string     `gorm:"column:status" json:"status"`
	AssignedAt   time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type AssignedReviewer struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	DueDate      *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Status       string     `gorm:"column:status" json:"status"`
	IsAnonymous  bool       `gorm:"column:is_anonymous" json:"is_anonymous"`
	AssignedAt   time.Time  `gorm:"column:assigned_at" json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (ChecklistResponse) TableName() string {
	return "checklist_responses"
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}

func (AssignedTechnicalEditor) TableName() string {
	return "assigned_technical_editors"
}

func (AssignedReviewer) TableName() string {
	return "assigned_reviewers"
}

// IsEditable reports whether manuscript content may still change. Once a
// submission leaves draft, content edits are only possible during a revision
// round and must go through the revision flow.
func (s *Submission) IsEditable() bool {
	return s.Status == StatusDraft || s.Status == StatusRevisionRequested
}

// IsTerminal reports whether the submission reached a final status.
func (s *Submission) IsTerminal() bool {
	return s.Status == StatusAccepted || s.Status == StatusRejected
}

// IsValidArticleType reports membership in the closed article-type set.
func IsValidArticleType(articleType string) bool {
	for _, t := range ValidArticleTypes {
		if t == articleType {
			return true
		}
	}
	return false
}

// ValidateCorrespondingAuthors enforces the single-corresponding-author
// invariant across the main author flag and the co-author list.
func ValidateCorrespondingAuthors(authorIsCorresponding bool, coAuthors []CoAuthor) error {
	count := 0
	if authorIsCorresponding {
		count++
	}
	for i := range coAuthors {
		if coAuthors[i].IsCorresponding {
			count++
		}
	}
	if count > 1 {
		return errs.NewValidation("is_corresponding", "only one corresponding author is allowed")
	}
	return nil
}
