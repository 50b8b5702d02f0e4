package models

import "time"

// Cycle statuses.
const (
	CycleInProgress        = "in_progress"
	CycleCompleted         = "completed"
	CycleRevisionRequested = "revision_requested"
)

// Editor decision types.
const (
	DecisionRevision = "revision"
	DecisionAccept   = "accept"
	DecisionReject   = "reject"
)

// Editor decision stages.
const (
	StageInitialScreening = "initial_screening"
	StagePostTechEditor   = "post_tech_editor"
	StagePostReviewer     = "post_reviewer"
	StageFinalDecision    = "final_decision"
)

// MaxEditorDecisions caps how many times an editor may record a decision
// within one revision round.
const MaxEditorDecisions = 4

// SubmissionCycle represents the submission_cycles table: one row per
// revision round, unique on (submission_id, cycle_number). A cycle bounds one
// set of editor / technical-editor / reviewer activity and is closed once a
// terminal decision for the round is recorded.
type SubmissionCycle struct {
	CycleID      int `gorm:"primaryKey;column:cycle_id" json:"cycle_id"`
	SubmissionID int `gorm:"column:submission_id;uniqueIndex:uniq_submission_cycle" json:"submission_id"`
	CycleNumber  int `gorm:"column:cycle_number;uniqueIndex:uniq_submission_cycle" json:"cycle_number"`

	ManuscriptVersionID *int `gorm:"column:manuscript_version_id" json:"manuscript_version_id,omitempty"`
	TechnicalEditorID   *int `gorm:"column:technical_editor_id" json:"technical_editor_id,omitempty"`

	// Editor decision for this round. DecisionNumber counts recorded
	// decisions (1-4); DecisionStage and DecisionNumber are independently
	// supplied inputs, validated only for enum/range membership.
	EditorDecision       *string    `gorm:"column:editor_decision" json:"editor_decision,omitempty"`
	EditorDecisionReason *string    `gorm:"column:editor_decision_reason" json:"editor_decision_reason,omitempty"`
	EditorDecidedAt      *time.Time `gorm:"column:editor_decided_at" json:"editor_decided_at,omitempty"`
	DecisionNumber       int        `gorm:"column:decision_number" json:"decision_number"`
	DecisionStage        *string    `gorm:"column:decision_stage" json:"decision_stage,omitempty"`

	// Technical editor review: informational input the editor consults; it
	// never changes submission status by itself.
	TechReviewerID    *int       `gorm:"column:tech_reviewer_id" json:"tech_reviewer_id,omitempty"`
	TechDecision      *string    `gorm:"column:tech_decision" json:"tech_decision,omitempty"`
	TechRemarks       *string    `gorm:"column:tech_remarks" json:"tech_remarks,omitempty"`
	TechAttachmentIDs []int      `gorm:"column:tech_attachment_ids;serializer:json" json:"tech_attachment_ids,omitempty"`
	TechReviewedAt    *time.Time `gorm:"column:tech_reviewed_at" json:"tech_reviewed_at,omitempty"`

	Status string `gorm:"column:status" json:"status"`

	CreateAt time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time `gorm:"column:update_at" json:"update_at"`

	ReviewerFeedbacks []ReviewerFeedback `gorm:"foreignKey:CycleID" json:"reviewer_feedbacks,omitempty"`
	TechnicalEditor   *User              `gorm:"foreignKey:TechnicalEditorID" json:"technical_editor,omitempty"`
}

// ReviewerFeedback represents the reviewer_feedbacks table. One entry per
// participating reviewer per cycle; the unique index rejects duplicates.
type ReviewerFeedback struct {
	FeedbackID    int       `gorm:"primaryKey;column:feedback_id" json:"feedback_id"`
	CycleID       int       `gorm:"column:cycle_id;uniqueIndex:uniq_cycle_reviewer" json:"cycle_id"`
	ReviewerID    int       `gorm:"column:reviewer_id;uniqueIndex:uniq_cycle_reviewer" json:"reviewer_id"`
	Remarks       string    `gorm:"column:remarks" json:"remarks"`
	AttachmentIDs []int     `gorm:"column:attachment_ids;serializer:json" json:"attachment_ids,omitempty"`
	SubmittedAt   time.Time `gorm:"column:submitted_at" json:"submitted_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName overrides
func (SubmissionCycle) TableName() string {
	return "submission_cycles"
}

func (ReviewerFeedback) TableName() string {
	return "reviewer_feedbacks"
}

// IsValidDecision reports membership in the editor decision set.
func IsValidDecision(decision string) bool {
	return decision == DecisionRevision || decision == DecisionAccept || decision == DecisionReject
}

// IsValidDecisionStage reports membership in the decision stage set.
func IsValidDecisionStage(stage string) bool {
	switch stage {
	case StageInitialScreening, StagePostTechEditor, StagePostReviewer, StageFinalDecision:
		return true
	}
	return false
}
