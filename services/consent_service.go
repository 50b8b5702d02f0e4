package services

import (
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsentTokenTTL is how long a co-author consent link stays valid.
const ConsentTokenTTL = 7 * 24 * time.Hour

// ConsentSummary reports the per-status counts of a submission's co-author
// consents. IsComplete is true once no pending consent remains.
type ConsentSummary struct {
	Pending    int  `json:"pending"`
	Accepted   int  `json:"accepted"`
	Rejected   int  `json:"rejected"`
	IsComplete bool `json:"is_complete"`
}

// ConsentService runs the co-author consent protocol: single-use, time-limited
// tokens granted per co-author and consumed by their accept/reject response.
type ConsentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewConsentService(db *gorm.DB, notifier *NotificationService) *ConsentService {
	return &ConsentService{db: db, notifier: notifier}
}

// RequestConsent issues a fresh consent token for one co-author and emails
// the consent link. Re-requesting replaces any earlier token.
func (s *ConsentService) RequestConsent(submissionID, coAuthorID int, actor Actor) (*models.CoAuthor, error) {
	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		return nil, errs.ErrNotFound
	}
	if submission.AuthorID != actor.UserID && actor.RoleID != models.RoleEditor {
		return nil, &errs.PermissionDeniedError{Action: "request co-author consent"}
	}

	var coAuthor models.CoAuthor
	if err := s.db.Where("co_author_id = ? AND submission_id = ? AND delete_at IS NULL", coAuthorID, submissionID).
		First(&coAuthor).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	token := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(ConsentTokenTTL)

	coAuthor.ConsentStatus = models.ConsentPending
	coAuthor.ConsentToken = &token
	coAuthor.ConsentTokenExpiresAt = &expiresAt
	coAuthor.ConsentDate = nil
	coAuthor.UpdateAt = now

	if err := s.db.Save(&coAuthor).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyConsentRequested(&coAuthor, &submission, token)
	}

	return &coAuthor, nil
}

// ProcessConsent records a co-author's accept/reject response. The token is
// single-use: it is cleared on success and can never be replayed. An expired
// token leaves the consent state unchanged.
func (s *ConsentService) ProcessConsent(submissionID, coAuthorID int, token, decision string) (*models.CoAuthor, error) {
	if decision != models.ConsentAccepted && decision != models.ConsentRejected {
		return nil, errs.NewValidation("decision", "must be accepted or rejected")
	}

	var coAuthor models.CoAuthor
	if err := s.db.Where("co_author_id = ? AND submission_id = ? AND delete_at IS NULL", coAuthorID, submissionID).
		First(&coAuthor).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	if token == "" || coAuthor.ConsentToken == nil || *coAuthor.ConsentToken != token {
		return nil, errs.ErrInvalidToken
	}
	if coAuthor.ConsentTokenExpiresAt == nil || time.Now().After(*coAuthor.ConsentTokenExpiresAt) {
		return nil, errs.ErrTokenExpired
	}

	now := time.Now()
	coAuthor.ConsentStatus = decision
	coAuthor.ConsentDate = &now
	coAuthor.ConsentToken = nil
	coAuthor.ConsentTokenExpiresAt = nil
	coAuthor.UpdateAt = now

	if err := s.db.Save(&coAuthor).Error; err != nil {
		return nil, err
	}

	return &coAuthor, nil
}

// ConsentStatus returns the consent counts for a submission.
func (s *ConsentService) ConsentStatus(submissionID int) (*ConsentSummary, error) {
	var coAuthors []models.CoAuthor
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		Find(&coAuthors).Error; err != nil {
		return nil, err
	}

	summary := &ConsentSummary{}
	for i := range coAuthors {
		switch coAuthors[i].ConsentStatus {
		case models.ConsentAccepted:
			summary.Accepted++
		case models.ConsentRejected:
			summary.Rejected++
		default:
			summary.Pending++
		}
	}
	summary.IsComplete = summary.Pending == 0
	return summary, nil
}
