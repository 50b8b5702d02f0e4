package services

import (
	"fmt"
	"time"

	"journal-management-api/errs"
	"journal-management-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationTokenTTL is how long a reviewer invitation link stays valid.
const InvitationTokenTTL = 7 * 24 * time.Hour

// RequiredApprovedReviewers is the minimum count of suggested reviewers that
// must have accepted their invitation and carry editor approval before a
// submission may enter active review.
const RequiredApprovedReviewers = 2

// ReviewGate is the result of the move-to-review majority check.
type ReviewGate struct {
	CanMove  bool   `json:"can_move"`
	Reason   string `json:"reason,omitempty"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
}

// ReviewerService manages reviewer suggestions, invitation tokens and the
// majority-consent gate for entering active review.
type ReviewerService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
	notifier  *NotificationService
}

func NewReviewerService(db *gorm.DB, lifecycle *LifecycleService, notifier *NotificationService) *ReviewerService {
	return &ReviewerService{db: db, lifecycle: lifecycle, notifier: notifier}
}

// SendInvitation issues a fresh invitation token for one suggested reviewer
// and emails the invitation link.
func (s *ReviewerService) SendInvitation(submissionID, suggestedReviewerID int, actor Actor) (*models.SuggestedReviewer, error) {
	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		return nil, errs.ErrNotFound
	}
	if actor.RoleID != models.RoleEditor {
		return nil, &errs.PermissionDeniedError{Action: "send reviewer invitations"}
	}

	var reviewer models.SuggestedReviewer
	if err := s.db.Where("suggested_reviewer_id = ? AND submission_id = ? AND delete_at IS NULL",
		suggestedReviewerID, submissionID).First(&reviewer).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	token := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(InvitationTokenTTL)

	reviewer.InvitationStatus = models.InvitationPending
	reviewer.InvitationToken = &token
	reviewer.InvitationSentAt = &now
	reviewer.InvitationExpiresAt = &expiresAt
	reviewer.RespondedAt = nil
	reviewer.UpdateAt = now

	if err := s.db.Save(&reviewer).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyInvitationSent(&reviewer, &submission, token)
	}

	return &reviewer, nil
}

// RespondInvitation records a reviewer's accept/decline via their emailed
// token. An expired token flips the invitation to expired and leaves the
// reviewer's approval state untouched.
func (s *ReviewerService) RespondInvitation(token string, accept bool) (*models.SuggestedReviewer, error) {
	if token == "" {
		return nil, errs.ErrInvalidToken
	}

	var reviewer models.SuggestedReviewer
	if err := s.db.Where("invitation_token = ? AND delete_at IS NULL", token).
		First(&reviewer).Error; err != nil {
		return nil, errs.ErrInvalidToken
	}

	now := time.Now()
	if reviewer.InvitationExpiresAt == nil || now.After(*reviewer.InvitationExpiresAt) {
		reviewer.InvitationStatus = models.InvitationExpired
		reviewer.InvitationToken = nil
		reviewer.InvitationExpiresAt = nil
		reviewer.UpdateAt = now
		if err := s.db.Save(&reviewer).Error; err != nil {
			return nil, err
		}
		return nil, errs.ErrTokenExpired
	}

	if accept {
		reviewer.InvitationStatus = models.InvitationAccepted
	} else {
		reviewer.InvitationStatus = models.InvitationDeclined
	}
	reviewer.RespondedAt = &now
	reviewer.InvitationToken = nil
	reviewer.InvitationExpiresAt = nil
	reviewer.UpdateAt = now

	if err := s.db.Save(&reviewer).Error; err != nil {
		return nil, err
	}

	return &reviewer, nil
}

// ApproveReviewer sets the editor approval flag on a suggested reviewer. Only
// editorial staff may approve; a reviewer's own response never touches it.
func (s *ReviewerService) ApproveReviewer(submissionID, suggestedReviewerID int, actor Actor, approved bool) (*models.SuggestedReviewer, error) {
	if actor.RoleID != models.RoleEditor {
		return nil, &errs.PermissionDeniedError{Action: "approve suggested reviewers"}
	}

	var reviewer models.SuggestedReviewer
	if err := s.db.Where("suggested_reviewer_id = ? AND submission_id = ? AND delete_at IS NULL",
		suggestedReviewerID, submissionID).First(&reviewer).Error; err != nil {
		return nil, errs.ErrNotFound
	}

	reviewer.EditorApproved = approved
	reviewer.UpdateAt = time.Now()
	if err := s.db.Save(&reviewer).Error; err != nil {
		return nil, err
	}
	return &reviewer, nil
}

// CanMoveToReview computes the majority-consent gate: at least
// RequiredApprovedReviewers suggested reviewers must be both accepted and
// editor-approved, regardless of caller role.
func (s *ReviewerService) CanMoveToReview(submissionID int) (*ReviewGate, error) {
	var count int64
	if err := s.db.Model(&models.SuggestedReviewer{}).
		Where("submission_id = ? AND delete_at IS NULL AND invitation_status = ? AND editor_approved = ?",
			submissionID, models.InvitationAccepted, true).
		Count(&count).Error; err != nil {
		return nil, err
	}

	gate := &ReviewGate{
		Current:  int(count),
		Required: RequiredApprovedReviewers,
	}
	if gate.Current >= RequiredApprovedReviewers {
		gate.CanMove = true
	} else {
		gate.Reason = fmt.Sprintf("%d of %d required reviewers have accepted and been approved",
			gate.Current, RequiredApprovedReviewers)
	}
	return gate, nil
}

// MoveToReview transitions a submitted manuscript into active review once the
// reviewer gate passes, opening the first cycle when none exists yet.
func (s *ReviewerService) MoveToReview(submissionID int, actor Actor) (*models.Submission, error) {
	gate, err := s.CanMoveToReview(submissionID)
	if err != nil {
		return nil, err
	}
	if !gate.CanMove {
		return nil, errs.NewValidation("reviewers", gate.Reason)
	}

	submission, err := s.lifecycle.TransitionStatus(submissionID, models.StatusUnderReview, actor)
	if err != nil {
		return nil, err
	}

	if submission.CurrentCycleID == nil {
		now := time.Now()
		cycle := models.SubmissionCycle{
			SubmissionID: submissionID,
			CycleNumber:  1,
			Status:       models.CycleInProgress,
			CreateAt:     now,
			UpdateAt:     now,
		}
		if err := s.db.Create(&cycle).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{"current_cycle_id": cycle.CycleID, "update_at": now}).Error; err != nil {
			return nil, err
		}
		submission.CurrentCycleID = &cycle.CycleID
	}

	return submission, nil
}
