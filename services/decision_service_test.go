package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"gorm.io/gorm"
)

func newDecisionServiceForTest(db *gorm.DB) *DecisionService {
	return NewDecisionService(db, NewLifecycleService(db, nil), nil)
}

func TestEditorDecisionRevision(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	editor := seedUser(t, db, "editor@example.org", models.RoleEditor)
	submission := seedUnderReview(t, db, author.UserID)

	svc := newDecisionServiceForTest(db)
	result, err := svc.MakeEditorDecision(submission.SubmissionID,
		Actor{UserID: editor.UserID, RoleID: models.RoleEditor},
		models.DecisionRevision, models.StagePostReviewer, "Please address reviewer 2's comments", nil)
	if err != nil {
		t.Fatalf("MakeEditorDecision failed: %v", err)
	}

	if result.Submission.Status != models.StatusRevisionRequested {
		t.Errorf("status = %s, want revision_requested", result.Submission.Status)
	}
	if result.Cycle.DecisionNumber != 1 {
		t.Errorf("decision number = %d, want 1", result.Cycle.DecisionNumber)
	}
	if result.DecisionsRemaining != models.MaxEditorDecisions-1 {
		t.Errorf("decisions remaining = %d, want %d", result.DecisionsRemaining, models.MaxEditorDecisions-1)
	}
	if result.Cycle.Status != models.CycleRevisionRequested {
		t.Errorf("cycle status = %s, want revision_requested", result.Cycle.Status)
	}
	if result.Cycle.EditorDecision == nil || *result.Cycle.EditorDecision != models.DecisionRevision {
		t.Error("editor decision not recorded on cycle")
	}
}

func TestEditorDecisionAcceptAndReject(t *testing.T) {
	cases := []struct {
		decision   string
		wantStatus string
	}{
		{models.DecisionAccept, models.StatusProvisionallyAccepted},
		{models.DecisionReject, models.StatusRejected},
	}

	for _, tc := range cases {
		t.Run(tc.decision, func(t *testing.T) {
			db := newTestDB(t)
			author := seedUser(t, db, "author@example.org", models.RoleAuthor)
			editor := seedUser(t, db, "editor@example.org", models.RoleEditor)
			submission := seedUnderReview(t, db, author.UserID)

			svc := newDecisionServiceForTest(db)
			result, err := svc.MakeEditorDecision(submission.SubmissionID,
				Actor{UserID: editor.UserID, RoleID: models.RoleEditor},
				tc.decision, models.StageFinalDecision, "", nil)
			if err != nil {
				t.Fatalf("MakeEditorDecision failed: %v", err)
			}
			if result.Submission.Status != tc.wantStatus {
				t.Errorf("status = %s, want %s", result.Submission.Status, tc.wantStatus)
			}
			if result.Cycle.Status != models.CycleCompleted {
				t.Errorf("cycle status = %s, want completed", result.Cycle.Status)
			}
		})
	}
}

func TestEditorDecisionCap(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	editor := seedUser(t, db, "editor@example.org", models.RoleEditor)
	submission := seedUnderReview(t, db, author.UserID)
	editorActor := Actor{UserID: editor.UserID, RoleID: models.RoleEditor}

	svc := newDecisionServiceForTest(db)

	for i := 1; i <= models.MaxEditorDecisions; i++ {
		result, err := svc.MakeEditorDecision(submission.SubmissionID, editorActor,
			models.DecisionRevision, models.StagePostReviewer, "", nil)
		if err != nil {
			t.Fatalf("decision %d failed: %v", i, err)
		}
		if result.Cycle.DecisionNumber != i {
			t.Errorf("decision number = %d, want %d", result.Cycle.DecisionNumber, i)
		}
		if result.DecisionsRemaining != models.MaxEditorDecisions-i {
			t.Errorf("decisions remaining = %d, want %d", result.DecisionsRemaining, models.MaxEditorDecisions-i)
		}

		// Put the manuscript back under review for the next round without
		// opening a new cycle, so the cap applies to this one.
		mustExec(t, db.Model(&models.Submission{}).
			Where("submission_id = ?", submission.SubmissionID).
			Update("status", models.StatusUnderReview))
	}

	_, err := svc.MakeEditorDecision(submission.SubmissionID, editorActor,
		models.DecisionRevision, models.StagePostReviewer, "", nil)
	if !errors.Is(err, errs.ErrDecisionLimitExceeded) {
		t.Errorf("decision %d error = %v, want ErrDecisionLimitExceeded", models.MaxEditorDecisions+1, err)
	}
}

func TestEditorDecisionValidation(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	editor := seedUser(t, db, "editor@example.org", models.RoleEditor)
	reviewer := seedUser(t, db, "reviewer@example.org", models.RoleReviewer)
	submission := seedUnderReview(t, db, author.UserID)
	editorActor := Actor{UserID: editor.UserID, RoleID: models.RoleEditor}

	svc := newDecisionServiceForTest(db)

	var denied *errs.PermissionDeniedError
	if _, err := svc.MakeEditorDecision(submission.SubmissionID,
		Actor{UserID: reviewer.UserID, RoleID: models.RoleReviewer},
		models.DecisionAccept, models.StageFinalDecision, "", nil); !errors.As(err, &denied) {
		t.Errorf("reviewer decision: error = %v, want PermissionDeniedError", err)
	}

	var validation *errs.ValidationError
	if _, err := svc.MakeEditorDecision(submission.SubmissionID, editorActor,
		"escalate", models.StageFinalDecision, "", nil); !errors.As(err, &validation) {
		t.Errorf("unknown decision: error = %v, want ValidationError", err)
	}
	if _, err := svc.MakeEditorDecision(submission.SubmissionID, editorActor,
		models.DecisionAccept, "midnight_review", "", nil); !errors.As(err, &validation) {
		t.Errorf("unknown stage: error = %v, want ValidationError", err)
	}
}

func TestEditorDecisionRolledBackOnConcurrentTransition(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	editor := seedUser(t, db, "editor@example.org", models.RoleEditor)
	submission := seedUnderReview(t, db, author.UserID)

	// Bump the lock version right before the submission's status write, the
	// way a transition committed by another actor between the decision's
	// cycle write and its status write would.
	interfered := false
	err := db.Callback().Update().Before("gorm:update").Register("conflicting_writer", func(d *gorm.DB) {
		if interfered || d.Statement.Table != (models.Submission{}).TableName() {
			return
		}
		interfered = true
		if _, execErr := d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"UPDATE submissions SET lock_version = lock_version + 1 WHERE submission_id = ?",
			submission.SubmissionID); execErr != nil {
			t.Errorf("conflicting write failed: %v", execErr)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	svc := newDecisionServiceForTest(db)
	_, err = svc.MakeEditorDecision(submission.SubmissionID,
		Actor{UserID: editor.UserID, RoleID: models.RoleEditor},
		models.DecisionReject, models.StageFinalDecision, "out of scope", nil)
	if !errors.Is(err, errs.ErrConcurrentModification) {
		t.Fatalf("error = %v, want ErrConcurrentModification", err)
	}
	if !interfered {
		t.Fatal("conflicting write never ran")
	}

	// The losing decision must not survive on the cycle.
	var cycle models.SubmissionCycle
	if err := db.First(&cycle, *submission.CurrentCycleID).Error; err != nil {
		t.Fatalf("failed to reload cycle: %v", err)
	}
	if cycle.DecisionNumber != 0 {
		t.Errorf("decision number = %d after failed decision, want 0", cycle.DecisionNumber)
	}
	if cycle.EditorDecision != nil {
		t.Errorf("editor decision = %q after failed decision, want none", *cycle.EditorDecision)
	}
	if cycle.Status != models.CycleInProgress {
		t.Errorf("cycle status = %s after failed decision, want in_progress", cycle.Status)
	}
	if got := reloadSubmission(t, db, submission.SubmissionID); got.Status != models.StatusUnderReview {
		t.Errorf("status = %s after failed decision, want under_review", got.Status)
	}
}

func TestTechnicalEditorDecision(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	techEditor := seedUser(t, db, "tech@example.org", models.RoleTechnicalEditor)
	outsider := seedUser(t, db, "outsider@example.org", models.RoleTechnicalEditor)
	submission := seedUnderReview(t, db, author.UserID)

	now := time.Now()
	assignment := models.AssignedTechnicalEditor{
		SubmissionID: submission.SubmissionID,
		UserID:       techEditor.UserID,
		Status:       models.TechEditorPending,
		AssignedAt:   now,
	}
	mustExec(t, db.Create(&assignment))

	svc := newDecisionServiceForTest(db)

	// Unassigned technical editor is refused.
	var denied *errs.PermissionDeniedError
	if _, err := svc.MakeTechnicalEditorDecision(submission.SubmissionID,
		Actor{UserID: outsider.UserID, RoleID: models.RoleTechnicalEditor},
		models.DecisionAccept, "", nil); !errors.As(err, &denied) {
		t.Errorf("unassigned tech editor: error = %v, want PermissionDeniedError", err)
	}

	result, err := svc.MakeTechnicalEditorDecision(submission.SubmissionID,
		Actor{UserID: techEditor.UserID, RoleID: models.RoleTechnicalEditor},
		models.DecisionAccept, "Formatting is fine", []int{7})
	if err != nil {
		t.Fatalf("MakeTechnicalEditorDecision failed: %v", err)
	}

	if result.Cycle.TechDecision == nil || *result.Cycle.TechDecision != models.DecisionAccept {
		t.Error("tech decision not recorded on cycle")
	}
	if !strings.Contains(result.Note, "handling editor") {
		t.Errorf("note = %q, want advisory wording", result.Note)
	}

	// The recommendation never moves the submission status.
	if got := reloadSubmission(t, db, submission.SubmissionID); got.Status != models.StatusUnderReview {
		t.Errorf("status = %s after tech decision, want under_review", got.Status)
	}

	var stored models.AssignedTechnicalEditor
	if err := db.First(&stored, assignment.AssignmentID).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if stored.Status != models.TechEditorCompleted {
		t.Errorf("assignment status = %s, want completed", stored.Status)
	}
}

func TestReviewerFeedbackOncePerCycle(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	reviewer := seedUser(t, db, "reviewer@example.org", models.RoleReviewer)
	submission := seedUnderReview(t, db, author.UserID)

	now := time.Now()
	assignment := models.AssignedReviewer{
		SubmissionID: submission.SubmissionID,
		UserID:       reviewer.UserID,
		Status:       "pending",
		AssignedAt:   now,
	}
	mustExec(t, db.Create(&assignment))

	svc := newDecisionServiceForTest(db)
	reviewerActor := Actor{UserID: reviewer.UserID, RoleID: models.RoleReviewer}

	feedback, err := svc.SubmitReviewerFeedback(submission.SubmissionID, reviewerActor,
		"Methods section needs a power calculation", []int{3})
	if err != nil {
		t.Fatalf("SubmitReviewerFeedback failed: %v", err)
	}
	if feedback.ReviewerID != reviewer.UserID {
		t.Errorf("feedback reviewer = %d, want %d", feedback.ReviewerID, reviewer.UserID)
	}

	// Second entry within the same cycle conflicts.
	_, err = svc.SubmitReviewerFeedback(submission.SubmissionID, reviewerActor, "Changed my mind", nil)
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Errorf("duplicate feedback: error = %v, want ErrAlreadyExists", err)
	}

	var validation *errs.ValidationError
	if _, err := svc.SubmitReviewerFeedback(submission.SubmissionID, reviewerActor, "", nil); !errors.As(err, &validation) {
		t.Errorf("empty remarks: error = %v, want ValidationError", err)
	}
}
