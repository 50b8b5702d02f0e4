package services

import (
	"testing"
	"time"

	"journal-management-api/models"
	"journal-management-api/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Submission{},
		&models.ChecklistResponse{},
		&models.FileUpload{},
		&models.SubmissionFile{},
		&models.AssignedTechnicalEditor{},
		&models.AssignedReviewer{},
		&models.CoAuthor{},
		&models.SuggestedReviewer{},
		&models.SubmissionCycle{},
		&models.ReviewerFeedback{},
		&models.ManuscriptVersion{},
		&models.SubmissionSequence{},
		&models.SubmissionStatusHistory{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, roleID int) *models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "not-a-real-hash",
		RoleID:    roleID,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

// seedReadySubmission creates a draft with every submitted-entry precondition
// satisfied: full checklist, COPE certified, declarations done.
func seedReadySubmission(t *testing.T, db *gorm.DB, authorID int) *models.Submission {
	t.Helper()

	now := time.Now()
	hasConflict := false
	submission := models.Submission{
		ArticleType:         models.ArticleTypeOriginal,
		Title:               "Outcomes of early mobilization after hip surgery",
		Abstract:            "A prospective cohort study.",
		Keywords:            []string{"hip", "mobilization", "rehabilitation"},
		AuthorID:            authorID,
		Status:              models.StatusDraft,
		ChecklistVersion:    utils.ChecklistVersion,
		CopeCompliance:      true,
		HasConflict:         &hasConflict,
		CopyrightAccepted:   true,
		CopyrightAcceptedAt: &now,
		PdfPreviewConfirmed: true,
		CreateAt:            now,
		UpdateAt:            now,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}

	for _, q := range utils.ChecklistQuestions {
		if !q.Required {
			continue
		}
		response := models.ChecklistResponse{
			SubmissionID: submission.SubmissionID,
			QuestionCode: q.Code,
			Answer:       utils.AnswerYes,
			CreateAt:     now,
			UpdateAt:     now,
		}
		if err := db.Create(&response).Error; err != nil {
			t.Fatalf("failed to seed checklist response: %v", err)
		}
	}

	return &submission
}

// seedUnderReview puts a ready submission into under_review with an open
// first cycle, the state editor decisions operate on.
func seedUnderReview(t *testing.T, db *gorm.DB, authorID int) *models.Submission {
	t.Helper()

	submission := seedReadySubmission(t, db, authorID)

	now := time.Now()
	cycle := models.SubmissionCycle{
		SubmissionID: submission.SubmissionID,
		CycleNumber:  1,
		Status:       models.CycleInProgress,
		CreateAt:     now,
		UpdateAt:     now,
	}
	if err := db.Create(&cycle).Error; err != nil {
		t.Fatalf("failed to seed cycle: %v", err)
	}

	if err := db.Model(submission).Updates(map[string]interface{}{
		"status":            models.StatusUnderReview,
		"submission_number": "JAIRAM-2026-0001",
		"submitted_at":      now,
		"current_cycle_id":  cycle.CycleID,
	}).Error; err != nil {
		t.Fatalf("failed to move submission under review: %v", err)
	}

	if err := db.First(submission, submission.SubmissionID).Error; err != nil {
		t.Fatalf("failed to reload submission: %v", err)
	}
	return submission
}

func mustExec(t *testing.T, tx *gorm.DB) {
	t.Helper()
	if tx.Error != nil {
		t.Fatalf("database write failed: %v", tx.Error)
	}
}

func reloadSubmission(t *testing.T, db *gorm.DB, id int) *models.Submission {
	t.Helper()
	var submission models.Submission
	if err := db.First(&submission, id).Error; err != nil {
		t.Fatalf("failed to reload submission %d: %v", id, err)
	}
	return &submission
}
