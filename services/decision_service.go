package services

import (
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// EditorDecisionResult is returned from MakeEditorDecision.
type EditorDecisionResult struct {
	Submission         *models.Submission      `json:"submission"`
	Cycle              *models.SubmissionCycle `json:"cycle"`
	DecisionsRemaining int                     `json:"decisions_remaining"`
}

// TechDecisionResult is returned from MakeTechnicalEditorDecision. Note is an
// advisory summary for the handling editor.
type TechDecisionResult struct {
	Cycle *models.SubmissionCycle `json:"cycle"`
	Note  string                  `json:"note"`
}

// DecisionService records editor decisions, technical-editor reviews and
// reviewer feedback on the active cycle of a submission.
type DecisionService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
	notifier  *NotificationService
}

func NewDecisionService(db *gorm.DB, lifecycle *LifecycleService, notifier *NotificationService) *DecisionService {
	return &DecisionService{db: db, lifecycle: lifecycle, notifier: notifier}
}

// currentCycle loads a submission and its active cycle.
func (s *DecisionService) currentCycle(submissionID int) (*models.Submission, *models.SubmissionCycle, error) {
	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		return nil, nil, errs.ErrNotFound
	}
	if submission.CurrentCycleID == nil {
		return nil, nil, errs.NewValidation("cycle", "submission has no active review cycle")
	}

	var cycle models.SubmissionCycle
	if err := s.db.Where("cycle_id = ?", *submission.CurrentCycleID).First(&cycle).Error; err != nil {
		return nil, nil, errs.ErrNotFound
	}
	return &submission, &cycle, nil
}

// MakeEditorDecision records one editor decision on the active cycle. The
// decision number is advanced with a conditional update so two concurrent
// decisions cannot both pass the per-cycle cap. The submission status moves
// per the decision: revision -> revision_requested, accept ->
// provisionally_accepted, reject -> rejected.
func (s *DecisionService) MakeEditorDecision(submissionID int, actor Actor, decision, stage, reason string, attachmentIDs []int) (*EditorDecisionResult, error) {
	if actor.RoleID != models.RoleEditor {
		return nil, &errs.PermissionDeniedError{Action: "record an editor decision"}
	}
	if !models.IsValidDecision(decision) {
		return nil, errs.NewValidation("decision", "must be revision, accept or reject")
	}
	if !models.IsValidDecisionStage(stage) {
		return nil, errs.NewValidation("decision_stage", "unknown decision stage")
	}

	submission, cycle, err := s.currentCycle(submissionID)
	if err != nil {
		return nil, err
	}

	if cycle.DecisionNumber >= models.MaxEditorDecisions {
		return nil, errs.ErrDecisionLimitExceeded
	}

	var targetStatus, cycleStatus string
	switch decision {
	case models.DecisionRevision:
		targetStatus = models.StatusRevisionRequested
		cycleStatus = models.CycleRevisionRequested
	case models.DecisionAccept:
		targetStatus = models.StatusProvisionallyAccepted
		cycleStatus = models.CycleCompleted
	case models.DecisionReject:
		targetStatus = models.StatusRejected
		cycleStatus = models.CycleCompleted
	}

	// Fail before touching the cycle if the status transition is off-graph.
	if !CanTransition(submission.Status, targetStatus) {
		return nil, &errs.InvalidTransitionError{From: submission.Status, To: targetStatus}
	}

	now := time.Now()
	nextNumber := cycle.DecisionNumber + 1

	// The decision write and the status write commit together: when another
	// actor moved the submission between the load above and the status CAS,
	// the recorded decision and the consumed decision number roll back with
	// the failed transition.
	var updatedSubmission *models.Submission
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SubmissionCycle{}).
			Where("cycle_id = ? AND decision_number = ?", cycle.CycleID, cycle.DecisionNumber).
			Updates(map[string]interface{}{
				"editor_decision":        decision,
				"editor_decision_reason": reason,
				"editor_decided_at":      now,
				"decision_number":        nextNumber,
				"decision_stage":         stage,
				"status":                 cycleStatus,
				"update_at":              now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrConcurrentModification
		}

		var txErr error
		updatedSubmission, txErr = s.lifecycle.transitionLoaded(tx, submission, targetStatus, actor)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	var updatedCycle models.SubmissionCycle
	if err := s.db.Where("cycle_id = ?", cycle.CycleID).First(&updatedCycle).Error; err != nil {
		return nil, err
	}

	if s.lifecycle.notifier != nil {
		s.lifecycle.notifier.NotifyStatusChanged(updatedSubmission, submission.Status)
	}
	if s.notifier != nil {
		s.notifier.NotifyDecisionMade(updatedSubmission, decision, reason)
	}

	return &EditorDecisionResult{
		Submission:         updatedSubmission,
		Cycle:              &updatedCycle,
		DecisionsRemaining: models.MaxEditorDecisions - nextNumber,
	}, nil
}

// MakeTechnicalEditorDecision records the technical editor's accept/reject
// recommendation on the active cycle. It never changes the submission status;
// it is informational input the handling editor consults.
func (s *DecisionService) MakeTechnicalEditorDecision(submissionID int, actor Actor, decision, remarks string, attachmentIDs []int) (*TechDecisionResult, error) {
	if actor.RoleID != models.RoleTechnicalEditor {
		return nil, &errs.PermissionDeniedError{Action: "record a technical editor decision"}
	}
	if decision != models.DecisionAccept && decision != models.DecisionReject {
		return nil, errs.NewValidation("decision", "must be accept or reject")
	}

	var assignment models.AssignedTechnicalEditor
	if err := s.db.Where("submission_id = ? AND user_id = ?", submissionID, actor.UserID).
		First(&assignment).Error; err != nil {
		return nil, &errs.PermissionDeniedError{Action: "review a submission not assigned to you"}
	}

	_, cycle, err := s.currentCycle(submissionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cycle.TechReviewerID = &actor.UserID
	cycle.TechDecision = &decision
	cycle.TechRemarks = &remarks
	cycle.TechAttachmentIDs = attachmentIDs
	cycle.TechReviewedAt = &now
	cycle.UpdateAt = now

	if err := s.db.Save(cycle).Error; err != nil {
		return nil, err
	}

	s.db.Model(&assignment).Updates(map[string]interface{}{
		"status":    models.TechEditorCompleted,
		"update_at": now,
	})

	note := "Technical editor recommends rejection; the handling editor makes the final decision."
	if decision == models.DecisionAccept {
		note = "Technical editor recommends acceptance; the handling editor makes the final decision."
	}

	return &TechDecisionResult{Cycle: cycle, Note: note}, nil
}

// SubmitReviewerFeedback appends one reviewer's feedback to the active cycle.
// A reviewer may contribute exactly one entry per cycle; a second submission
// is rejected as a conflict.
func (s *DecisionService) SubmitReviewerFeedback(submissionID int, actor Actor, remarks string, attachmentIDs []int) (*models.ReviewerFeedback, error) {
	if actor.RoleID != models.RoleReviewer {
		return nil, &errs.PermissionDeniedError{Action: "submit reviewer feedback"}
	}
	if remarks == "" {
		return nil, errs.NewValidation("remarks", "feedback remarks are required")
	}

	var assignment models.AssignedReviewer
	if err := s.db.Where("submission_id = ? AND user_id = ?", submissionID, actor.UserID).
		First(&assignment).Error; err != nil {
		return nil, &errs.PermissionDeniedError{Action: "review a submission not assigned to you"}
	}

	_, cycle, err := s.currentCycle(submissionID)
	if err != nil {
		return nil, err
	}

	var existing models.ReviewerFeedback
	if err := s.db.Where("cycle_id = ? AND reviewer_id = ?", cycle.CycleID, actor.UserID).
		First(&existing).Error; err == nil {
		return nil, errs.ErrAlreadyExists
	}

	now := time.Now()
	feedback := models.ReviewerFeedback{
		CycleID:       cycle.CycleID,
		ReviewerID:    actor.UserID,
		Remarks:       remarks,
		AttachmentIDs: attachmentIDs,
		SubmittedAt:   now,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, err
	}

	s.db.Model(&assignment).Update("status", "completed")

	return &feedback, nil
}
