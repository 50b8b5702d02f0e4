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

type coAuthorRequest struct {
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        string  `json:"last_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Affiliation     *string `json:"affiliation"`
	AuthorOrder     int     `json:"author_order"`
	IsCorresponding bool    `json:"is_corresponding"`
}

// loadEditableSubmission fetches the submission for co-author mutations:
// owner only, draft or revision-requested only.
func loadEditableSubmission(c *gin.Context) (*models.Submission, bool) {
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return nil, false
	}
	if submission.AuthorID != actor.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return nil, false
	}
	if !submission.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Co-author list cannot change after submission"})
		return nil, false
	}
	return &submission, true
}

// AddCoAuthor appends a co-author entry to a draft submission. If the e-mail
// belongs to a registered user the entry is linked immediately.
func AddCoAuthor(c *gin.Context) {
	submission, ok := loadEditableSubmission(c)
	if !ok {
		return
	}

	var req coAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing []models.CoAuthor
	config.DB.Where("submission_id = ? AND delete_at IS NULL", submission.SubmissionID).Find(&existing)

	for i := range existing {
		if existing[i].Email == req.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "Co-author with this email already exists"})
			return
		}
	}

	if req.IsCorresponding {
		candidate := append(existing, models.CoAuthor{IsCorresponding: true})
		if err := models.ValidateCorrespondingAuthors(submission.AuthorIsCorresponding, candidate); err != nil {
			respondError(c, err)
			return
		}
	}

	order := req.AuthorOrder
	if order == 0 {
		order = len(existing) + 1
	}

	now := time.Now()
	coAuthor := models.CoAuthor{
		SubmissionID:    submission.SubmissionID,
		FirstName:       utils.SanitizeInput(req.FirstName),
		LastName:        utils.SanitizeInput(req.LastName),
		Email:           req.Email,
		Affiliation:     req.Affiliation,
		AuthorOrder:     order,
		IsCorresponding: req.IsCorresponding,
		ConsentStatus:   models.ConsentPending,
		CreateAt:        now,
		UpdateAt:        now,
	}

	// Link to a registered account when the email already matches one.
	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&user).Error; err == nil {
		coAuthor.UserID = &user.UserID
	}

	if err := config.DB.Create(&coAuthor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add co-author"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Co-author added",
		"co_author": coAuthor,
	})
}

// UpdateCoAuthor edits a co-author entry on a draft submission.
func UpdateCoAuthor(c *gin.Context) {
	submission, ok := loadEditableSubmission(c)
	if !ok {
		return
	}

	var coAuthor models.CoAuthor
	if err := config.DB.Where("co_author_id = ? AND submission_id = ? AND delete_at IS NULL",
		c.Param("coauthor_id"), submission.SubmissionID).First(&coAuthor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Co-author not found"})
		return
	}

	var req coAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.IsCorresponding && !coAuthor.IsCorresponding {
		var others []models.CoAuthor
		config.DB.Where("submission_id = ? AND co_author_id <> ? AND delete_at IS NULL",
			submission.SubmissionID, coAuthor.CoAuthorID).Find(&others)
		candidate := append(others, models.CoAuthor{IsCorresponding: true})
		if err := models.ValidateCorrespondingAuthors(submission.AuthorIsCorresponding, candidate); err != nil {
			respondError(c, err)
			return
		}
	}

	coAuthor.FirstName = utils.SanitizeInput(req.FirstName)
	coAuthor.LastName = utils.SanitizeInput(req.LastName)
	coAuthor.Email = req.Email
	coAuthor.Affiliation = req.Affiliation
	if req.AuthorOrder > 0 {
		coAuthor.AuthorOrder = req.AuthorOrder
	}
	coAuthor.IsCorresponding = req.IsCorresponding
	coAuthor.UpdateAt = time.Now()

	if err := config.DB.Save(&coAuthor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update co-author"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Co-author updated",
		"co_author": coAuthor,
	})
}

// RemoveCoAuthor soft-deletes a co-author entry on a draft submission.
func RemoveCoAuthor(c *gin.Context) {
	submission, ok := loadEditableSubmission(c)
	if !ok {
		return
	}

	var coAuthor models.CoAuthor
	if err := config.DB.Where("co_author_id = ? AND submission_id = ? AND delete_at IS NULL",
		c.Param("coauthor_id"), submission.SubmissionID).First(&coAuthor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Co-author not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&coAuthor).Updates(map[string]interface{}{
		"delete_at": now,
		"update_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove co-author"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Co-author removed"})
}

// RequestCoAuthorConsent issues a fresh consent token and emails the link.
func RequestCoAuthorConsent(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}
	coAuthorID, err := strconv.Atoi(c.Param("coauthor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid co-author id"})
		return
	}

	svc := services.NewConsentService(config.DB, services.NewNotificationService(config.DB))
	coAuthor, err := svc.RequestConsent(submissionID, coAuthorID, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Consent request sent",
		"co_author": coAuthor,
	})
}

// ProcessCoAuthorConsent consumes a consent token. The endpoint is public:
// co-authors may not have an account yet, the token is the credential.
func ProcessCoAuthorConsent(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}
	coAuthorID, err := strconv.Atoi(c.Param("coauthor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid co-author id"})
		return
	}

	type ConsentRequest struct {
		Token    string `json:"token" binding:"required"`
		Decision string `json:"decision" binding:"required"`
	}
	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewConsentService(config.DB, nil)
	coAuthor, err := svc.ProcessConsent(submissionID, coAuthorID, req.Token, req.Decision)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Consent recorded",
		"co_author": coAuthor,
	})
}

// GetConsentStatus reports the per-status consent counts for a submission.
func GetConsentStatus(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	svc := services.NewConsentService(config.DB, nil)
	summary, err := svc.ConsentStatus(submission.SubmissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"consent": summary,
	})
}
