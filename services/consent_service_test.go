package services

import (
	"errors"
	"testing"
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"gorm.io/gorm"
)

func seedCoAuthor(t *testing.T, db *gorm.DB, submissionID int, email string) *models.CoAuthor {
	t.Helper()
	now := time.Now()
	coAuthor := models.CoAuthor{
		SubmissionID:  submissionID,
		FirstName:     "Co",
		LastName:      "Author",
		Email:         email,
		AuthorOrder:   1,
		ConsentStatus: models.ConsentPending,
		CreateAt:      now,
		UpdateAt:      now,
	}
	if err := db.Create(&coAuthor).Error; err != nil {
		t.Fatalf("failed to seed co-author: %v", err)
	}
	return &coAuthor
}

func requestConsentToken(t *testing.T, db *gorm.DB, svc *ConsentService, submissionID, coAuthorID, authorID int) string {
	t.Helper()
	if _, err := svc.RequestConsent(submissionID, coAuthorID,
		Actor{UserID: authorID, RoleID: models.RoleAuthor}); err != nil {
		t.Fatalf("RequestConsent failed: %v", err)
	}
	var stored models.CoAuthor
	if err := db.First(&stored, coAuthorID).Error; err != nil {
		t.Fatalf("failed to reload co-author: %v", err)
	}
	if stored.ConsentToken == nil {
		t.Fatal("no consent token issued")
	}
	return *stored.ConsentToken
}

func TestConsentAcceptFlow(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)
	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "co@example.org")

	svc := NewConsentService(db, nil)
	token := requestConsentToken(t, db, svc, submission.SubmissionID, coAuthor.CoAuthorID, author.UserID)

	updated, err := svc.ProcessConsent(submission.SubmissionID, coAuthor.CoAuthorID, token, models.ConsentAccepted)
	if err != nil {
		t.Fatalf("ProcessConsent failed: %v", err)
	}
	if updated.ConsentStatus != models.ConsentAccepted {
		t.Errorf("consent status = %s, want accepted", updated.ConsentStatus)
	}
	if updated.ConsentDate == nil {
		t.Error("consent date not set")
	}
	if updated.ConsentToken != nil {
		t.Error("token not cleared after use")
	}

	// The token is single-use: replaying it must fail.
	_, err = svc.ProcessConsent(submission.SubmissionID, coAuthor.CoAuthorID, token, models.ConsentRejected)
	if !errors.Is(err, errs.ErrInvalidToken) {
		t.Errorf("replay error = %v, want ErrInvalidToken", err)
	}
	if got := mustLoadCoAuthor(t, db, coAuthor.CoAuthorID); got.ConsentStatus != models.ConsentAccepted {
		t.Errorf("consent status after replay = %s, want accepted", got.ConsentStatus)
	}
}

func TestConsentRejectsWrongToken(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)
	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "co@example.org")

	svc := NewConsentService(db, nil)
	requestConsentToken(t, db, svc, submission.SubmissionID, coAuthor.CoAuthorID, author.UserID)

	_, err := svc.ProcessConsent(submission.SubmissionID, coAuthor.CoAuthorID, "wrong-token", models.ConsentAccepted)
	if !errors.Is(err, errs.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestConsentExpiredTokenLeavesStateUnchanged(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)
	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "co@example.org")

	svc := NewConsentService(db, nil)
	token := requestConsentToken(t, db, svc, submission.SubmissionID, coAuthor.CoAuthorID, author.UserID)

	past := time.Now().Add(-time.Hour)
	mustExec(t, db.Model(&models.CoAuthor{}).
		Where("co_author_id = ?", coAuthor.CoAuthorID).
		Update("consent_token_expires_at", past))

	_, err := svc.ProcessConsent(submission.SubmissionID, coAuthor.CoAuthorID, token, models.ConsentAccepted)
	if !errors.Is(err, errs.ErrTokenExpired) {
		t.Fatalf("error = %v, want ErrTokenExpired", err)
	}
	if got := mustLoadCoAuthor(t, db, coAuthor.CoAuthorID); got.ConsentStatus != models.ConsentPending {
		t.Errorf("consent status = %s after expired token, want pending", got.ConsentStatus)
	}
}

func TestConsentInvalidDecision(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)
	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "co@example.org")

	svc := NewConsentService(db, nil)
	token := requestConsentToken(t, db, svc, submission.SubmissionID, coAuthor.CoAuthorID, author.UserID)

	_, err := svc.ProcessConsent(submission.SubmissionID, coAuthor.CoAuthorID, token, "maybe")
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestConsentRequestPermission(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	stranger := seedUser(t, db, "stranger@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)
	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "co@example.org")

	svc := NewConsentService(db, nil)
	_, err := svc.RequestConsent(submission.SubmissionID, coAuthor.CoAuthorID,
		Actor{UserID: stranger.UserID, RoleID: models.RoleAuthor})

	var denied *errs.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Errorf("error = %v, want PermissionDeniedError", err)
	}
}

func TestConsentStatusCounts(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)

	first := seedCoAuthor(t, db, submission.SubmissionID, "first@example.org")
	seedCoAuthor(t, db, submission.SubmissionID, "second@example.org")
	third := seedCoAuthor(t, db, submission.SubmissionID, "third@example.org")

	mustExec(t, db.Model(&models.CoAuthor{}).Where("co_author_id = ?", first.CoAuthorID).
		Update("consent_status", models.ConsentAccepted))
	mustExec(t, db.Model(&models.CoAuthor{}).Where("co_author_id = ?", third.CoAuthorID).
		Update("consent_status", models.ConsentRejected))

	svc := NewConsentService(db, nil)
	summary, err := svc.ConsentStatus(submission.SubmissionID)
	if err != nil {
		t.Fatalf("ConsentStatus failed: %v", err)
	}

	if summary.Accepted != 1 || summary.Rejected != 1 || summary.Pending != 1 {
		t.Errorf("counts = %+v, want 1/1/1", summary)
	}
	if summary.IsComplete {
		t.Error("IsComplete true with a pending consent")
	}

	mustExec(t, db.Model(&models.CoAuthor{}).Where("submission_id = ?", submission.SubmissionID).
		Update("consent_status", models.ConsentAccepted))

	summary, err = svc.ConsentStatus(submission.SubmissionID)
	if err != nil {
		t.Fatalf("ConsentStatus failed: %v", err)
	}
	if !summary.IsComplete {
		t.Error("IsComplete false with no pending consents")
	}
}

func mustLoadCoAuthor(t *testing.T, db *gorm.DB, id int) *models.CoAuthor {
	t.Helper()
	var coAuthor models.CoAuthor
	if err := db.First(&coAuthor, id).Error; err != nil {
		t.Fatalf("failed to load co-author %d: %v", id, err)
	}
	return &coAuthor
}
