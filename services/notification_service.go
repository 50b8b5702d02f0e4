package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// NotificationService persists in-app notifications and sends the matching
// e-mails. Every send is best-effort: a failed notification is logged and
// swallowed, it never rolls back or fails the state change that triggered it.
type NotificationService struct {
	db      *gorm.DB
	baseURL string
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	baseURL := os.Getenv("PORTAL_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &NotificationService{db: db, baseURL: baseURL}
}

func (s *NotificationService) create(userID int, title, message, kind string, submissionID int) {
	n := models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Type:     kind,
		IsRead:   false,
		CreateAt: time.Now(),
	}
	if submissionID > 0 {
		n.SubmissionID = &submissionID
	}
	if err := s.db.Create(&n).Error; err != nil {
		log.Printf("Warning: failed to store notification for user %d: %v", userID, err)
	}
}

func (s *NotificationService) send(to, subject, html string) {
	if to == "" {
		return
	}
	if err := config.SendMail([]string{to}, subject, html); err != nil {
		log.Printf("Warning: failed to send mail to %s: %v", to, err)
	}
}

// NotifyConsentRequested mails a co-author their consent link.
func (s *NotificationService) NotifyConsentRequested(coAuthor *models.CoAuthor, submission *models.Submission, token string) {
	link := fmt.Sprintf("%s/consents/%d/%d?token=%s", s.baseURL, submission.SubmissionID, coAuthor.CoAuthorID, token)
	subject := fmt.Sprintf("Co-authorship consent requested: %s", submission.Title)
	body := fmt.Sprintf(
		`<p>Dear %s %s,</p>
<p>You have been listed as a co-author on the manuscript <b>%s</b>.
Please confirm or decline your co-authorship within 7 days:</p>
<p><a href="%s">Respond to consent request</a></p>`,
		coAuthor.FirstName, coAuthor.LastName, submission.Title, link)

	if coAuthor.UserID != nil {
		s.create(*coAuthor.UserID, "Co-authorship consent requested", subject, "info", submission.SubmissionID)
	}
	s.send(coAuthor.Email, subject, body)
}

// NotifyInvitationSent mails a suggested reviewer their invitation link.
func (s *NotificationService) NotifyInvitationSent(reviewer *models.SuggestedReviewer, submission *models.Submission, token string) {
	link := fmt.Sprintf("%s/review-invitations/%s", s.baseURL, token)
	subject := "Invitation to review a manuscript"
	body := fmt.Sprintf(
		`<p>Dear %s %s,</p>
<p>You are invited to review the manuscript <b>%s</b> (%s).
The invitation expires in 7 days:</p>
<p><a href="%s">Respond to invitation</a></p>`,
		reviewer.FirstName, reviewer.LastName, submission.Title, submission.SubmissionNumber, link)

	if reviewer.UserID != nil {
		s.create(*reviewer.UserID, "Review invitation", subject, "info", submission.SubmissionID)
	}
	s.send(reviewer.Email, subject, body)
}

// NotifyDecisionMade tells the author about an editor decision.
func (s *NotificationService) NotifyDecisionMade(submission *models.Submission, decision, reason string) {
	subject := fmt.Sprintf("Editorial decision on %s", submission.SubmissionNumber)
	body := fmt.Sprintf(
		`<p>An editorial decision has been recorded for your manuscript <b>%s</b> (%s): <b>%s</b>.</p>
<p>%s</p>`,
		submission.Title, submission.SubmissionNumber, decision, reason)

	s.create(submission.AuthorID, "Editorial decision", fmt.Sprintf("Decision on %s: %s", submission.SubmissionNumber, decision), "info", submission.SubmissionID)
	if submission.Author != nil {
		s.send(submission.Author.Email, subject, body)
	}
}

// NotifyStatusChanged tells the author the submission moved to a new status.
func (s *NotificationService) NotifyStatusChanged(submission *models.Submission, oldStatus string) {
	title := "Submission status updated"
	message := fmt.Sprintf("Submission %s moved from %s to %s",
		submission.SubmissionNumber, oldStatus, submission.Status)

	s.create(submission.AuthorID, title, message, "info", submission.SubmissionID)
	if submission.Author != nil {
		subject := fmt.Sprintf("Status update for %s", submission.SubmissionNumber)
		body := fmt.Sprintf("<p>Your manuscript <b>%s</b> is now <b>%s</b>.</p>", submission.Title, submission.Status)
		s.send(submission.Author.Email, subject, body)
	}
}
