package services

import (
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"
	"journal-management-api/utils"

	"gorm.io/gorm"
)

// Actor identifies who is performing an operation.
type Actor struct {
	UserID int
	RoleID int
}

// allowedTransitions is the submission lifecycle graph. A status missing from
// the map (accepted, rejected) is terminal.
var allowedTransitions = map[string][]string{
	models.StatusDraft:                 {models.StatusSubmitted},
	models.StatusSubmitted:             {models.StatusUnderReview},
	models.StatusUnderReview:           {models.StatusRevisionRequested, models.StatusProvisionallyAccepted, models.StatusRejected},
	models.StatusRevisionRequested:     {models.StatusSubmitted},
	models.StatusProvisionallyAccepted: {models.StatusAccepted},
}

// CanTransition reports whether to is reachable from from in one step.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LifecycleService owns the submission status state machine: transition
// validation, submitted-entry preconditions, submission number assignment and
// the optimistic status write.
type LifecycleService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewLifecycleService constructs the service. notifier may be nil; all
// notification sends are best-effort.
func NewLifecycleService(db *gorm.DB, notifier *NotificationService) *LifecycleService {
	return &LifecycleService{db: db, notifier: notifier}
}

// TransitionStatus moves a submission along one edge of the lifecycle graph.
// The write is conditional on the submission's current status and lock
// version; a concurrent transition surfaces as ErrConcurrentModification.
func (s *LifecycleService) TransitionStatus(submissionID int, newStatus string, actor Actor) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.Preload("CoAuthors").Preload("ChecklistResponses").
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	updated, err := s.transitionLoaded(s.db, &submission, newStatus, actor)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(updated, submission.Status)
	}

	return updated, nil
}

// transitionLoaded validates and performs the status write against db, which
// may be a transaction handle. The conditional UPDATE pins the status and lock
// version captured in submission, so a row changed since that load matches
// zero rows and returns ErrConcurrentModification instead of overwriting the
// other writer. Callers making related writes run this in the same transaction
// so those writes roll back when the transition fails.
func (s *LifecycleService) transitionLoaded(db *gorm.DB, submission *models.Submission, newStatus string, actor Actor) (*models.Submission, error) {
	if err := s.checkTransitionPermission(submission, newStatus, actor); err != nil {
		return nil, err
	}

	if !CanTransition(submission.Status, newStatus) {
		return nil, &errs.InvalidTransitionError{From: submission.Status, To: newStatus}
	}

	if newStatus == models.StatusSubmitted {
		if err := s.checkSubmittedPreconditions(submission); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       newStatus,
		"lock_version": submission.LockVersion + 1,
		"update_at":    now,
	}

	firstSubmission := newStatus == models.StatusSubmitted && submission.SubmissionNumber == ""
	if firstSubmission {
		number, err := NewSequenceService(db).NextSubmissionNumber(now.Year())
		if err != nil {
			return nil, err
		}
		updates["submission_number"] = number
		updates["submitted_at"] = now
	}

	switch newStatus {
	case models.StatusAccepted:
		updates["accepted_at"] = now
	case models.StatusRejected:
		updates["rejected_at"] = now
	}

	res := db.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ? AND lock_version = ?",
			submission.SubmissionID, submission.Status, submission.LockVersion).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrConcurrentModification
	}

	// Uploaded files stop being temporary once the manuscript is submitted.
	if newStatus == models.StatusSubmitted {
		db.Model(&models.SubmissionFile{}).
			Where("submission_id = ? AND is_temporary = ?", submission.SubmissionID, true).
			Updates(map[string]interface{}{"is_temporary": false, "update_at": now})
	}

	history := models.SubmissionStatusHistory{
		SubmissionID: submission.SubmissionID,
		OldStatus:    submission.Status,
		NewStatus:    newStatus,
		ChangedBy:    actor.UserID,
		CreatedAt:    now,
	}
	if err := db.Create(&history).Error; err != nil {
		return nil, err
	}

	var updated models.Submission
	if err := db.Preload("Author").
		Where("submission_id = ?", submission.SubmissionID).
		First(&updated).Error; err != nil {
		return nil, err
	}

	return &updated, nil
}

// checkTransitionPermission maps target statuses to the roles that may drive
// them: authors submit their own manuscripts, editorial staff drive the rest.
func (s *LifecycleService) checkTransitionPermission(submission *models.Submission, newStatus string, actor Actor) error {
	if actor.RoleID == models.RoleEditor {
		return nil
	}
	if newStatus == models.StatusSubmitted && submission.AuthorID == actor.UserID {
		return nil
	}
	return &errs.PermissionDeniedError{Action: "change submission status to " + newStatus}
}

// checkSubmittedPreconditions verifies everything the author must complete
// before the manuscript may enter the submitted status. Each missing item is
// reported independently.
func (s *LifecycleService) checkSubmittedPreconditions(submission *models.Submission) error {
	if len(submission.ChecklistResponses) == 0 {
		return &errs.IncompleteSubmissionError{Missing: "checklist responses"}
	}

	responses := make(map[string]string, len(submission.ChecklistResponses))
	for _, r := range submission.ChecklistResponses {
		responses[r.QuestionCode] = r.Answer
	}
	if result := utils.ValidateChecklist(responses, submission.CopeCompliance); !result.IsValid {
		return &errs.IncompleteSubmissionError{Missing: result.Error}
	}

	if submission.HasConflict == nil {
		return &errs.IncompleteSubmissionError{Missing: "conflict of interest declaration"}
	}
	if !submission.CopyrightAccepted || submission.CopyrightAcceptedAt == nil {
		return &errs.IncompleteSubmissionError{Missing: "copyright agreement"}
	}
	if !submission.PdfPreviewConfirmed {
		return &errs.IncompleteSubmissionError{Missing: "pdf preview confirmation"}
	}

	// A submission cannot leave draft while any co-author consent is
	// outstanding.
	if submission.Status == models.StatusDraft {
		for i := range submission.CoAuthors {
			if submission.CoAuthors[i].DeleteAt == nil && submission.CoAuthors[i].ConsentStatus == models.ConsentPending {
				return &errs.IncompleteSubmissionError{Missing: "co-author consent"}
			}
		}
	}

	return nil
}
