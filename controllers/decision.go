package controllers

import (
	"net/http"
	"strconv"

	"journal-management-api/config"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

func newDecisionService() *services.DecisionService {
	notifier := services.NewNotificationService(config.DB)
	lifecycle := services.NewLifecycleService(config.DB, notifier)
	return services.NewDecisionService(config.DB, lifecycle, notifier)
}

// MakeEditorDecision records one editor decision on the active cycle.
func MakeEditorDecision(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	type EditorDecisionRequest struct {
		Decision      string `json:"decision" binding:"required"`
		DecisionStage string `json:"decision_stage" binding:"required"`
		Reason        string `json:"reason"`
		AttachmentIDs []int  `json:"attachment_ids"`
	}
	var req EditorDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := newDecisionService().MakeEditorDecision(
		submissionID, currentActor(c), req.Decision, req.DecisionStage, req.Reason, req.AttachmentIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Decision recorded",
		"submission":          result.Submission,
		"cycle":               result.Cycle,
		"decisions_remaining": result.DecisionsRemaining,
	})
}

// MakeTechnicalEditorDecision records a technical editor's recommendation.
func MakeTechnicalEditorDecision(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	type TechDecisionRequest struct {
		Decision      string `json:"decision" binding:"required"`
		Remarks       string `json:"remarks"`
		AttachmentIDs []int  `json:"attachment_ids"`
	}
	var req TechDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := newDecisionService().MakeTechnicalEditorDecision(
		submissionID, currentActor(c), req.Decision, req.Remarks, req.AttachmentIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Technical review recorded",
		"cycle":   result.Cycle,
		"note":    result.Note,
	})
}

// SubmitReviewerFeedback appends reviewer feedback to the active cycle.
func SubmitReviewerFeedback(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	type FeedbackRequest struct {
		Remarks       string `json:"remarks" binding:"required"`
		AttachmentIDs []int  `json:"attachment_ids"`
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := newDecisionService().SubmitReviewerFeedback(
		submissionID, currentActor(c), req.Remarks, req.AttachmentIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Feedback submitted",
		"feedback": feedback,
	})
}
