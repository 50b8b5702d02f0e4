package services

import (
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// RevisionPayload carries the author's revised upload.
type RevisionPayload struct {
	FileRefs []int  `json:"file_refs"`
	Remarks  string `json:"remarks"`
}

// RevisionResult is returned from SubmitRevision.
type RevisionResult struct {
	Submission *models.Submission        `json:"submission"`
	Cycle      *models.SubmissionCycle   `json:"cycle"`
	Version    *models.ManuscriptVersion `json:"version"`
}

// RevisionService handles the author's response to a revision request: a new
// immutable manuscript version, a new cycle, and re-entry into the submitted
// status.
type RevisionService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
}

func NewRevisionService(db *gorm.DB, lifecycle *LifecycleService) *RevisionService {
	return &RevisionService{db: db, lifecycle: lifecycle}
}

// SubmitRevision creates manuscript version previousMax+1 and cycle
// previousMax+1 for the submission, then transitions revision_requested ->
// submitted. The standard submitted preconditions apply again; the
// submission number is never reassigned. Versions are append-only.
func (s *RevisionService) SubmitRevision(submissionID int, actor Actor, payload RevisionPayload) (*RevisionResult, error) {
	var submission models.Submission
	if err := s.db.Preload("CoAuthors").Preload("ChecklistResponses").
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	if submission.AuthorID != actor.UserID {
		return nil, &errs.PermissionDeniedError{Action: "submit a revision for this manuscript"}
	}
	if submission.Status != models.StatusRevisionRequested {
		return nil, &errs.InvalidTransitionError{From: submission.Status, To: models.StatusSubmitted}
	}
	if len(payload.FileRefs) == 0 {
		return nil, errs.NewValidation("file_refs", "a revision requires at least one file")
	}

	now := time.Now()
	cycle := models.SubmissionCycle{
		SubmissionID: submissionID,
		Status:       models.CycleInProgress,
		CreateAt:     now,
		UpdateAt:     now,
	}
	version := models.ManuscriptVersion{
		SubmissionID: submissionID,
		FileRefs:     payload.FileRefs,
		UploadedBy:   actor.UserID,
		UploaderRole: "author",
		CreateAt:     now,
	}
	if payload.Remarks != "" {
		version.Remarks = []string{payload.Remarks}
	}

	// The cycle, the version and the status re-entry commit together: a
	// failed precondition or a concurrent transition leaves no orphaned
	// cycle or version behind.
	var updated *models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.ManuscriptVersion{}).
			Where("submission_id = ?", submissionID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		var maxCycle int
		if err := tx.Model(&models.SubmissionCycle{}).
			Where("submission_id = ?", submissionID).
			Select("COALESCE(MAX(cycle_number), 0)").
			Scan(&maxCycle).Error; err != nil {
			return err
		}

		cycle.CycleNumber = maxCycle + 1
		if err := tx.Create(&cycle).Error; err != nil {
			return err
		}

		version.VersionNumber = maxVersion + 1
		version.CycleID = &cycle.CycleID
		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.SubmissionCycle{}).
			Where("cycle_id = ?", cycle.CycleID).
			Updates(map[string]interface{}{"manuscript_version_id": version.VersionID, "update_at": now}).Error; err != nil {
			return err
		}

		var txErr error
		updated, txErr = s.lifecycle.transitionLoaded(tx, &submission, models.StatusSubmitted, actor)
		if txErr != nil {
			return txErr
		}

		return tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{"current_cycle_id": cycle.CycleID, "update_at": now}).Error
	})
	if err != nil {
		return nil, err
	}
	updated.CurrentCycleID = &cycle.CycleID

	if s.lifecycle.notifier != nil {
		s.lifecycle.notifier.NotifyStatusChanged(updated, submission.Status)
	}

	cycle.ManuscriptVersionID = &version.VersionID
	return &RevisionResult{Submission: updated, Cycle: &cycle, Version: &version}, nil
}

// Versions lists the manuscript versions of a submission in ascending order.
func (s *RevisionService) Versions(submissionID int) ([]models.ManuscriptVersion, error) {
	var versions []models.ManuscriptVersion
	if err := s.db.Where("submission_id = ?", submissionID).
		Order("version_number ASC").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}
