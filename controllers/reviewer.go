package controllers

import (
	"net/http"
	"strconv"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"
	"journal-management-api/services"
	"journal-management-api/utils"

	"github.com/gin-gonic/gin"
)

func newReviewerService() *services.ReviewerService {
	notifier := services.NewNotificationService(config.DB)
	lifecycle := services.NewLifecycleService(config.DB, notifier)
	return services.NewReviewerService(config.DB, lifecycle, notifier)
}

// AddSuggestedReviewer appends a reviewer suggestion to an editable
// submission. Authors suggest; editors approve and invite.
func AddSuggestedReviewer(c *gin.Context) {
	submission, ok := loadEditableSubmission(c)
	if !ok {
		return
	}

	type SuggestedReviewerRequest struct {
		FirstName    string  `json:"first_name" binding:"required"`
		LastName     string  `json:"last_name" binding:"required"`
		Email        string  `json:"email" binding:"required,email"`
		Affiliation  *string `json:"affiliation"`
		DisplayOrder int     `json:"display_order"`
	}

	var req SuggestedReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.SuggestedReviewer{}).
		Where("submission_id = ? AND email = ? AND delete_at IS NULL", submission.SubmissionID, req.Email).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Reviewer with this email already suggested"})
		return
	}

	order := req.DisplayOrder
	if order == 0 {
		var existing int64
		config.DB.Model(&models.SuggestedReviewer{}).
			Where("submission_id = ? AND delete_at IS NULL", submission.SubmissionID).
			Count(&existing)
		order = int(existing) + 1
	}

	now := time.Now()
	reviewer := models.SuggestedReviewer{
		SubmissionID:     submission.SubmissionID,
		FirstName:        utils.SanitizeInput(req.FirstName),
		LastName:         utils.SanitizeInput(req.LastName),
		Email:            req.Email,
		Affiliation:      req.Affiliation,
		DisplayOrder:     order,
		InvitationStatus: models.InvitationPending,
		CreateAt:         now,
		UpdateAt:         now,
	}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&user).Error; err == nil {
		reviewer.UserID = &user.UserID
	}

	if err := config.DB.Create(&reviewer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add suggested reviewer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Suggested reviewer added",
		"reviewer": reviewer,
	})
}

// RemoveSuggestedReviewer soft-deletes a reviewer suggestion.
func RemoveSuggestedReviewer(c *gin.Context) {
	submission, ok := loadEditableSubmission(c)
	if !ok {
		return
	}

	var reviewer models.SuggestedReviewer
	if err := config.DB.Where("suggested_reviewer_id = ? AND submission_id = ? AND delete_at IS NULL",
		c.Param("reviewer_id"), submission.SubmissionID).First(&reviewer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggested reviewer not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&reviewer).Updates(map[string]interface{}{
		"delete_at": now,
		"update_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove suggested reviewer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Suggested reviewer removed"})
}

// SendReviewerInvitation issues a fresh invitation token and emails the link.
func SendReviewerInvitation(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}
	reviewerID, err := strconv.Atoi(c.Param("reviewer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer id"})
		return
	}

	reviewer, err := newReviewerService().SendInvitation(submissionID, reviewerID, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Invitation sent",
		"reviewer": reviewer,
	})
}

// RespondReviewerInvitation consumes an invitation token. Public endpoint:
// the emailed token is the credential.
func RespondReviewerInvitation(c *gin.Context) {
	type InvitationResponse struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	var req InvitationResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewer, err := newReviewerService().RespondInvitation(c.Param("token"), *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Invitation response recorded",
		"reviewer": reviewer,
	})
}

// ApproveSuggestedReviewer sets or clears the editor approval flag.
func ApproveSuggestedReviewer(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}
	reviewerID, err := strconv.Atoi(c.Param("reviewer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer id"})
		return
	}

	type ApproveRequest struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewer, err := newReviewerService().ApproveReviewer(submissionID, reviewerID, currentActor(c), *req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Reviewer approval updated",
		"reviewer": reviewer,
	})
}

// GetReviewGateStatus reports whether the submission may enter active review.
func GetReviewGateStatus(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	gate, err := newReviewerService().CanMoveToReview(submission.SubmissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"gate":    gate,
	})
}

// MoveToReview transitions a submitted manuscript into active review.
func MoveToReview(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	submission, err := newReviewerService().MoveToReview(submissionID, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission moved to review",
		"submission": submission,
	})
}
