// utils/checklist.go - Fixed declaration checklist catalogue.
//
// The catalogue is read-only configuration: the submission workflow only
// consults it to validate responses before a manuscript may be submitted.
// COPE certification is a separate checkbox, distinct from the itemized
// questions.
package utils

import (
	"fmt"
	"strings"
)

// ChecklistVersion tags the catalogue revision stored on each submission.
const ChecklistVersion = "2025.1"

// Checklist answers.
const (
	AnswerYes = "YES"
	AnswerNo  = "NO"
	AnswerNA  = "NA"
)

// ChecklistQuestion is one declaration the author must answer.
type ChecklistQuestion struct {
	Code     string `json:"code"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// ChecklistQuestions is the fixed declaration set.
var ChecklistQuestions = []ChecklistQuestion{
	{Code: "originality", Text: "The manuscript is original and not under consideration elsewhere", Required: true},
	{Code: "ethics_approval", Text: "Ethics committee approval was obtained where applicable", Required: true},
	{Code: "informed_consent", Text: "Informed consent was obtained from all participants where applicable", Required: true},
	{Code: "authorship_criteria", Text: "All listed authors meet the ICMJE authorship criteria", Required: true},
	{Code: "data_availability", Text: "A data availability statement is included", Required: true},
	{Code: "funding_disclosure", Text: "All funding sources are disclosed", Required: true},
	{Code: "plagiarism_check", Text: "The manuscript was screened for plagiarism before submission", Required: false},
}

// ChecklistResult is the outcome of validating a response set.
type ChecklistResult struct {
	IsValid          bool     `json:"is_valid"`
	MissingQuestions []string `json:"missing_questions,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// IsValidAnswer reports membership in the YES/NO/NA set.
func IsValidAnswer(answer string) bool {
	switch answer {
	case AnswerYes, AnswerNo, AnswerNA:
		return true
	}
	return false
}

// ValidateChecklist checks a response map (question code -> answer) and the
// COPE certification. Pure function, no database access.
func ValidateChecklist(responses map[string]string, copeCompliance bool) ChecklistResult {
	result := ChecklistResult{IsValid: true}

	known := make(map[string]bool, len(ChecklistQuestions))
	for _, q := range ChecklistQuestions {
		known[q.Code] = true
	}

	for code, answer := range responses {
		if !known[code] {
			result.IsValid = false
			result.Error = fmt.Sprintf("unknown checklist question: %s", code)
			return result
		}
		if !IsValidAnswer(answer) {
			result.IsValid = false
			result.Error = fmt.Sprintf("invalid answer %q for question %s", answer, code)
			return result
		}
	}

	for _, q := range ChecklistQuestions {
		if !q.Required {
			continue
		}
		if _, ok := responses[q.Code]; !ok {
			result.MissingQuestions = append(result.MissingQuestions, q.Code)
		}
	}

	if len(result.MissingQuestions) > 0 {
		result.IsValid = false
		result.Error = "unanswered checklist questions: " + strings.Join(result.MissingQuestions, ", ")
		return result
	}

	if !copeCompliance {
		result.IsValid = false
		result.Error = "COPE compliance must be certified"
	}

	return result
}
