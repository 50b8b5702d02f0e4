package services

import (
	"testing"
)

func TestNextSubmissionNumberSequence(t *testing.T) {
	db := newTestDB(t)
	svc := NewSequenceService(db)

	first, err := svc.NextSubmissionNumber(2026)
	if err != nil {
		t.Fatalf("NextSubmissionNumber failed: %v", err)
	}
	if first != "JAIRAM-2026-0001" {
		t.Errorf("first number = %q, want JAIRAM-2026-0001", first)
	}

	second, err := svc.NextSubmissionNumber(2026)
	if err != nil {
		t.Fatalf("NextSubmissionNumber failed: %v", err)
	}
	if second != "JAIRAM-2026-0002" {
		t.Errorf("second number = %q, want JAIRAM-2026-0002", second)
	}
}

func TestNextSubmissionNumberPerYearCounters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSequenceService(db)

	for i := 0; i < 3; i++ {
		if _, err := svc.NextSubmissionNumber(2025); err != nil {
			t.Fatalf("NextSubmissionNumber(2025) failed: %v", err)
		}
	}

	// A new year starts its own counter at 1.
	number, err := svc.NextSubmissionNumber(2026)
	if err != nil {
		t.Fatalf("NextSubmissionNumber(2026) failed: %v", err)
	}
	if number != "JAIRAM-2026-0001" {
		t.Errorf("number = %q, want JAIRAM-2026-0001", number)
	}
}
