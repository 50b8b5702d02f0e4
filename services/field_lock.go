package services

import (
	"journal-management-api/errs"
)

// Field lock rule: after a submission leaves draft, writes are restricted to
// one of two allow-lists depending on whether the change set carries a status
// transition. Update endpoints already accept per-operation DTOs with only
// the legal fields; this guard is the deny-by-default backstop applied to the
// changed-column set before persisting.

// transitionFields may change together with a status transition (the author
// submit path and the editorial transition path), plus bookkeeping columns.
var transitionFields = map[string]bool{
	"checklist_version":     true,
	"cope_compliance":       true,
	"checklist_responses":   true,
	"has_conflict":          true,
	"conflict_details":      true,
	"copyright_accepted":    true,
	"copyright_accepted_at": true,
	"copyright_origin":      true,
	"pdf_preview_confirmed": true,
	"suggested_reviewers":   true,
	"status":                true,
	"submission_number":     true,
	"submitted_at":          true,
	"accepted_at":           true,
	"rejected_at":           true,
	"current_cycle_id":      true,
	"lock_version":          true,
	"update_at":             true,
}

// postSubmissionFields may change without a status transition: the editorial
// workflow columns that keep evolving after submission.
var postSubmissionFields = map[string]bool{
	"payment_status":             true,
	"internal_notes":             true,
	"assigned_editor_id":         true,
	"assigned_editor_at":         true,
	"assigned_reviewers":         true,
	"assigned_technical_editors": true,
	"accepted_at":                true,
	"rejected_at":                true,
	"status":                     true,
	"current_cycle_id":           true,
	"lock_version":               true,
	"update_at":                  true,
}

// CheckFieldLock validates the changed-column set of a write to a non-draft
// submission. statusChange indicates whether the change set includes a status
// transition. The first offending field is reported; the write must be
// rejected whole.
func CheckFieldLock(changed []string, statusChange bool) error {
	allowed := postSubmissionFields
	if statusChange {
		allowed = transitionFields
	}
	for _, field := range changed {
		if !allowed[field] {
			return &errs.IllegalModificationError{Field: field}
		}
	}
	return nil
}
