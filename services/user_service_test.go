package services

import (
	"testing"

	"journal-management-api/models"
)

func TestReconcileUserLinks(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.org", models.RoleAuthor)
	submission := seedReadySubmission(t, db, author.UserID)

	coAuthor := seedCoAuthor(t, db, submission.SubmissionID, "late.registrant@example.org")
	reviewer := seedSuggestedReviewer(t, db, submission.SubmissionID, "late.registrant@example.org")
	otherCoAuthor := seedCoAuthor(t, db, submission.SubmissionID, "someone.else@example.org")

	// Consent already granted before registration must survive the claim.
	mustExec(t, db.Model(&models.CoAuthor{}).Where("co_author_id = ?", coAuthor.CoAuthorID).
		Update("consent_status", models.ConsentAccepted))

	registrant := seedUser(t, db, "late.registrant@example.org", models.RoleAuthor)
	if err := NewUserService(db).ReconcileUserLinks(registrant); err != nil {
		t.Fatalf("ReconcileUserLinks failed: %v", err)
	}

	claimed := mustLoadCoAuthor(t, db, coAuthor.CoAuthorID)
	if claimed.UserID == nil || *claimed.UserID != registrant.UserID {
		t.Error("co-author entry not claimed by matching email")
	}
	if claimed.ConsentStatus != models.ConsentAccepted {
		t.Errorf("consent status = %s after claim, want accepted", claimed.ConsentStatus)
	}

	var claimedReviewer models.SuggestedReviewer
	if err := db.First(&claimedReviewer, reviewer.SuggestedReviewerID).Error; err != nil {
		t.Fatalf("failed to reload reviewer: %v", err)
	}
	if claimedReviewer.UserID == nil || *claimedReviewer.UserID != registrant.UserID {
		t.Error("suggested reviewer entry not claimed by matching email")
	}

	untouched := mustLoadCoAuthor(t, db, otherCoAuthor.CoAuthorID)
	if untouched.UserID != nil {
		t.Error("unrelated co-author entry claimed")
	}
}
