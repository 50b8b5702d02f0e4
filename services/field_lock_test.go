package services

import (
	"errors"
	"testing"

	"journal-management-api/errs"
)

func TestCheckFieldLockContentFields(t *testing.T) {
	for _, field := range []string{"title", "abstract", "keywords", "article_type", "word_count"} {
		err := CheckFieldLock([]string{field}, true)
		var locked *errs.IllegalModificationError
		if !errors.As(err, &locked) {
			t.Errorf("CheckFieldLock(%s, transition) = %v, want IllegalModificationError", field, err)
			continue
		}
		if locked.Field != field {
			t.Errorf("offending field = %s, want %s", locked.Field, field)
		}

		if err := CheckFieldLock([]string{field}, false); err == nil {
			t.Errorf("CheckFieldLock(%s, no transition) allowed a content field", field)
		}
	}
}

func TestCheckFieldLockTransitionAllowList(t *testing.T) {
	allowed := []string{
		"status", "submission_number", "submitted_at", "lock_version", "update_at",
		"checklist_version", "cope_compliance", "has_conflict", "copyright_accepted",
		"pdf_preview_confirmed", "suggested_reviewers",
	}
	if err := CheckFieldLock(allowed, true); err != nil {
		t.Errorf("transition allow-list rejected: %v", err)
	}

	// payment_status changes only outside transitions.
	if err := CheckFieldLock([]string{"payment_status"}, true); err == nil {
		t.Error("payment_status allowed inside a transition write")
	}
}

func TestCheckFieldLockPostSubmissionAllowList(t *testing.T) {
	allowed := []string{"payment_status", "internal_notes", "assigned_editor_id", "update_at"}
	if err := CheckFieldLock(allowed, false); err != nil {
		t.Errorf("post-submission allow-list rejected: %v", err)
	}

	// Checklist answers only change together with a transition.
	if err := CheckFieldLock([]string{"cope_compliance"}, false); err == nil {
		t.Error("cope_compliance allowed outside a transition write")
	}
}

func TestCheckFieldLockRejectsWholeWrite(t *testing.T) {
	err := CheckFieldLock([]string{"payment_status", "title"}, false)
	var locked *errs.IllegalModificationError
	if !errors.As(err, &locked) {
		t.Fatalf("error = %v, want IllegalModificationError", err)
	}
	if locked.Field != "title" {
		t.Errorf("offending field = %s, want title", locked.Field)
	}
}
