package models

import (
	"errors"
	"testing"

	"journal-management-api/errs"
)

func TestValidateCorrespondingAuthors(t *testing.T) {
	cases := []struct {
		name                string
		authorCorresponding bool
		coAuthors           []CoAuthor
		wantErr             bool
	}{
		{"author only", true, nil, false},
		{"single co-author", false, []CoAuthor{{IsCorresponding: true}}, false},
		{"nobody corresponding", false, []CoAuthor{{}, {}}, false},
		{"author plus co-author", true, []CoAuthor{{IsCorresponding: true}}, true},
		{"two co-authors", false, []CoAuthor{{IsCorresponding: true}, {IsCorresponding: true}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCorrespondingAuthors(tc.authorCorresponding, tc.coAuthors)
			if tc.wantErr {
				var validation *errs.ValidationError
				if !errors.As(err, &validation) {
					t.Errorf("error = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsValidArticleType(t *testing.T) {
	for _, articleType := range ValidArticleTypes {
		if !IsValidArticleType(articleType) {
			t.Errorf("IsValidArticleType(%s) = false", articleType)
		}
	}
	for _, articleType := range []string{"", "editorial", "Original_Article"} {
		if IsValidArticleType(articleType) {
			t.Errorf("IsValidArticleType(%q) = true", articleType)
		}
	}
}

func TestSubmissionStatusHelpers(t *testing.T) {
	editable := []string{StatusDraft, StatusRevisionRequested}
	for _, status := range editable {
		s := Submission{Status: status}
		if !s.IsEditable() {
			t.Errorf("IsEditable(%s) = false", status)
		}
	}

	locked := []string{StatusSubmitted, StatusUnderReview, StatusProvisionallyAccepted, StatusAccepted, StatusRejected}
	for _, status := range locked {
		s := Submission{Status: status}
		if s.IsEditable() {
			t.Errorf("IsEditable(%s) = true", status)
		}
	}

	for _, status := range []string{StatusAccepted, StatusRejected} {
		s := Submission{Status: status}
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false", status)
		}
	}
	for _, status := range []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusRevisionRequested, StatusProvisionallyAccepted} {
		s := Submission{Status: status}
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = true", status)
		}
	}
}
