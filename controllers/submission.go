package controllers

import (
	"net/http"
	"strconv"
	"time"

	"journal-management-api/config"
	"journal-management-api/errs"
	"journal-management-api/models"
	"journal-management-api/services"
	"journal-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// submissionContentRequest carries the manuscript metadata an author may set
// while the submission is still a draft.
type submissionContentRequest struct {
	ArticleType       *string  `json:"article_type"`
	Title             *string  `json:"title"`
	RunningTitle      *string  `json:"running_title"`
	Abstract          *string  `json:"abstract"`
	WordCount         *int     `json:"word_count"`
	FigureCount       *int     `json:"figure_count"`
	TableCount        *int     `json:"table_count"`
	PageCount         *int     `json:"page_count"`
	Keywords          []string `json:"keywords"`
	IECNumber         *string  `json:"iec_number"`
	ProsperoNumber    *string  `json:"prospero_number"`
	TrialRegistration *string  `json:"trial_registration"`
	IsCorresponding   *bool    `json:"is_corresponding"`
}

// CreateSubmission creates a new draft submission owned by the caller.
func CreateSubmission(c *gin.Context) {
	userID, _ := c.Get("userID")

	type CreateSubmissionRequest struct {
		ArticleType     string   `json:"article_type" binding:"required"`
		Title           string   `json:"title" binding:"required"`
		RunningTitle    string   `json:"running_title"`
		Abstract        string   `json:"abstract"`
		Keywords        []string `json:"keywords"`
		IsCorresponding bool     `json:"is_corresponding"`
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidArticleType(req.ArticleType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article type"})
		return
	}
	if len(req.Keywords) > 0 {
		if ok, msg := utils.ValidateKeywords(req.Keywords); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
	}

	now := time.Now()
	submission := models.Submission{
		ArticleType:           req.ArticleType,
		Title:                 utils.SanitizeInput(req.Title),
		RunningTitle:          utils.SanitizeInput(req.RunningTitle),
		Abstract:              req.Abstract,
		Keywords:              req.Keywords,
		AuthorID:              userID.(int),
		AuthorIsCorresponding: req.IsCorresponding,
		Status:                models.StatusDraft,
		ChecklistVersion:      utils.ChecklistVersion,
		CreateAt:              now,
		UpdateAt:              now,
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	config.DB.Preload("Author").First(&submission, submission.SubmissionID)
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Submission created successfully",
		"submission": submission,
	})
}

// findSubmissionScoped loads a submission the caller may see: authors see
// their own, editorial staff see all, technical editors and reviewers see
// their assignments.
func findSubmissionScoped(c *gin.Context, submissionID string) (*models.Submission, bool) {
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return nil, false
	}

	switch actor.RoleID {
	case models.RoleEditor:
		return &submission, true
	case models.RoleTechnicalEditor:
		var count int64
		config.DB.Model(&models.AssignedTechnicalEditor{}).
			Where("submission_id = ? AND user_id = ?", submission.SubmissionID, actor.UserID).
			Count(&count)
		if count > 0 {
			return &submission, true
		}
	case models.RoleReviewer:
		var count int64
		config.DB.Model(&models.AssignedReviewer{}).
			Where("submission_id = ? AND user_id = ?", submission.SubmissionID, actor.UserID).
			Count(&count)
		if count > 0 {
			return &submission, true
		}
	}

	if submission.AuthorID == actor.UserID {
		return &submission, true
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	return nil, false
}

// GetSubmissions lists submissions scoped to the caller's role.
func GetSubmissions(c *gin.Context) {
	actor := currentActor(c)

	query := config.DB.Model(&models.Submission{}).Where("delete_at IS NULL")

	switch actor.RoleID {
	case models.RoleEditor:
		// Editorial staff see everything.
	case models.RoleTechnicalEditor:
		query = query.Where("submission_id IN (?)",
			config.DB.Model(&models.AssignedTechnicalEditor{}).
				Select("submission_id").Where("user_id = ?", actor.UserID))
	case models.RoleReviewer:
		query = query.Where("submission_id IN (?)",
			config.DB.Model(&models.AssignedReviewer{}).
				Select("submission_id").Where("user_id = ?", actor.UserID))
	default:
		query = query.Where("author_id = ?", actor.UserID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}

	var total int64
	query.Count(&total)

	var submissions []models.Submission
	if err := query.Preload("Author").
		Order("create_at DESC").
		Limit(limit).Offset(offset).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       total,
	})
}

// GetSubmission returns one submission with its full aggregate.
func GetSubmission(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	var full models.Submission
	if err := config.DB.
		Preload("Author").
		Preload("AssignedEditor").
		Preload("CoAuthors", func(db *gorm.DB) *gorm.DB {
			return db.Where("delete_at IS NULL").Order("author_order ASC")
		}).
		Preload("SuggestedReviewers", func(db *gorm.DB) *gorm.DB {
			return db.Where("delete_at IS NULL").Order("display_order ASC")
		}).
		Preload("ChecklistResponses").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Where("delete_at IS NULL")
		}).
		Preload("Files.File").
		Preload("TechnicalEditors.User").
		Preload("Reviewers.User").
		Preload("CurrentCycle").
		Preload("CurrentCycle.ReviewerFeedbacks").
		First(&full, submission.SubmissionID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": full,
	})
}

// UpdateSubmission updates manuscript metadata. Content fields are writable
// only while the submission is a draft; afterwards any attempt is rejected
// with the offending field named.
func UpdateSubmission(c *gin.Context) {
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if submission.AuthorID != actor.UserID && actor.RoleID != models.RoleEditor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !submission.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify a submitted manuscript"})
		return
	}

	var req submissionContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, changed, err := contentUpdates(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	// Past draft, content fields are locked; the revision flow only reopens
	// the transition allow-list, which excludes them.
	if submission.Status != models.StatusDraft {
		if err := services.CheckFieldLock(changed, true); err != nil {
			respondError(c, err)
			return
		}
	}

	if req.IsCorresponding != nil {
		var coAuthors []models.CoAuthor
		config.DB.Where("submission_id = ? AND delete_at IS NULL", submission.SubmissionID).Find(&coAuthors)
		if err := models.ValidateCorrespondingAuthors(*req.IsCorresponding, coAuthors); err != nil {
			respondError(c, err)
			return
		}
	}

	updates["update_at"] = time.Now()
	if err := config.DB.Model(&submission).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	config.DB.Preload("Author").First(&submission, submission.SubmissionID)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission updated successfully",
		"submission": submission,
	})
}

// contentUpdates translates the request into a column update map and the
// changed-column list used by the field-lock guard.
func contentUpdates(req *submissionContentRequest) (map[string]interface{}, []string, error) {
	updates := map[string]interface{}{}
	changed := []string{}

	if req.ArticleType != nil {
		if !models.IsValidArticleType(*req.ArticleType) {
			return nil, nil, errs.NewValidation("article_type", "invalid article type")
		}
		updates["article_type"] = *req.ArticleType
		changed = append(changed, "article_type")
	}
	if req.Title != nil {
		updates["title"] = utils.SanitizeInput(*req.Title)
		changed = append(changed, "title")
	}
	if req.RunningTitle != nil {
		updates["running_title"] = utils.SanitizeInput(*req.RunningTitle)
		changed = append(changed, "running_title")
	}
	if req.Abstract != nil {
		updates["abstract"] = *req.Abstract
		changed = append(changed, "abstract")
	}
	if req.WordCount != nil {
		updates["word_count"] = *req.WordCount
		changed = append(changed, "word_count")
	}
	if req.FigureCount != nil {
		updates["figure_count"] = *req.FigureCount
		changed = append(changed, "figure_count")
	}
	if req.TableCount != nil {
		updates["table_count"] = *req.TableCount
		changed = append(changed, "table_count")
	}
	if req.PageCount != nil {
		updates["page_count"] = *req.PageCount
		changed = append(changed, "page_count")
	}
	if len(req.Keywords) > 0 {
		if ok, msg := utils.ValidateKeywords(req.Keywords); !ok {
			return nil, nil, errs.NewValidation("keywords", msg)
		}
		updates["keywords"] = req.Keywords
		changed = append(changed, "keywords")
	}
	if req.IECNumber != nil {
		updates["iec_number"] = *req.IECNumber
		changed = append(changed, "iec_number")
	}
	if req.ProsperoNumber != nil {
		updates["prospero_number"] = *req.ProsperoNumber
		changed = append(changed, "prospero_number")
	}
	if req.TrialRegistration != nil {
		updates["trial_registration"] = *req.TrialRegistration
		changed = append(changed, "trial_registration")
	}
	if req.IsCorresponding != nil {
		updates["author_is_corresponding"] = *req.IsCorresponding
		changed = append(changed, "author_is_corresponding")
	}

	return updates, changed, nil
}

// SaveChecklist upserts the declaration checklist responses and the COPE
// certification. Allowed while the manuscript is editable.
func SaveChecklist(c *gin.Context) {
	actor := currentActor(c)

	type ChecklistRequest struct {
		Responses      map[string]string `json:"responses" binding:"required"`
		CopeCompliance bool              `json:"cope_compliance"`
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if submission.AuthorID != actor.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !submission.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify a submitted manuscript"})
		return
	}

	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for code, answer := range req.Responses {
		if !utils.IsValidAnswer(answer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer for question " + code})
			return
		}
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for code, answer := range req.Responses {
			var existing models.ChecklistResponse
			if err := tx.Where("submission_id = ? AND question_code = ?", submission.SubmissionID, code).
				First(&existing).Error; err == nil {
				if err := tx.Model(&existing).
					Updates(map[string]interface{}{"answer": answer, "update_at": now}).Error; err != nil {
					return err
				}
				continue
			}
			response := models.ChecklistResponse{
				SubmissionID: submission.SubmissionID,
				QuestionCode: code,
				Answer:       answer,
				CreateAt:     now,
				UpdateAt:     now,
			}
			if err := tx.Create(&response).Error; err != nil {
				return err
			}
		}
		return tx.Model(&submission).Updates(map[string]interface{}{
			"checklist_version": utils.ChecklistVersion,
			"cope_compliance":   req.CopeCompliance,
			"update_at":         now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save checklist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Checklist saved"})
}

// SaveDeclarations records conflict-of-interest, copyright agreement and pdf
// preview confirmation. Allowed while the manuscript is editable.
func SaveDeclarations(c *gin.Context) {
	actor := currentActor(c)

	type DeclarationsRequest struct {
		HasConflict         *bool   `json:"has_conflict"`
		ConflictDetails     *string `json:"conflict_details"`
		CopyrightAccepted   *bool   `json:"copyright_accepted"`
		CopyrightOrigin     *string `json:"copyright_origin"`
		PdfPreviewConfirmed *bool   `json:"pdf_preview_confirmed"`
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if submission.AuthorID != actor.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !submission.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify a submitted manuscript"})
		return
	}

	var req DeclarationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if req.HasConflict != nil {
		updates["has_conflict"] = *req.HasConflict
	}
	if req.ConflictDetails != nil {
		updates["conflict_details"] = *req.ConflictDetails
	}
	if req.CopyrightAccepted != nil {
		updates["copyright_accepted"] = *req.CopyrightAccepted
		if *req.CopyrightAccepted {
			updates["copyright_accepted_at"] = now
			origin := c.ClientIP()
			if req.CopyrightOrigin != nil && *req.CopyrightOrigin != "" {
				origin = *req.CopyrightOrigin
			}
			updates["copyright_origin"] = origin
		} else {
			updates["copyright_accepted_at"] = nil
			updates["copyright_origin"] = nil
		}
	}
	if req.PdfPreviewConfirmed != nil {
		updates["pdf_preview_confirmed"] = *req.PdfPreviewConfirmed
	}

	if err := config.DB.Model(&submission).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save declarations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Declarations saved"})
}

// SubmitSubmission moves a draft (or a revision-requested manuscript with a
// prepared revision) into the submitted status.
func SubmitSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	notifier := services.NewNotificationService(config.DB)
	lifecycle := services.NewLifecycleService(config.DB, notifier)

	submission, err := lifecycle.TransitionStatus(submissionID, models.StatusSubmitted, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Manuscript submitted successfully",
		"submission": submission,
	})
}

// UpdateStatus applies an editorial status transition.
func UpdateStatus(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notifier := services.NewNotificationService(config.DB)
	lifecycle := services.NewLifecycleService(config.DB, notifier)

	submission, err := lifecycle.TransitionStatus(submissionID, req.Status, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Status updated successfully",
		"submission": submission,
	})
}

// UpdatePaymentStatus flips the payment flag. Editorial staff only.
func UpdatePaymentStatus(c *gin.Context) {
	type PaymentRequest struct {
		PaymentStatus *bool `json:"payment_status" binding:"required"`
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if err := config.DB.Model(&submission).Updates(map[string]interface{}{
		"payment_status": *req.PaymentStatus,
		"update_at":      time.Now(),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment status updated"})
}

// UpdateInternalNotes stores editorial-only notes on the submission.
func UpdateInternalNotes(c *gin.Context) {
	type NotesRequest struct {
		InternalNotes string `json:"internal_notes"`
	}
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if err := config.DB.Model(&submission).Updates(map[string]interface{}{
		"internal_notes": req.InternalNotes,
		"update_at":      time.Now(),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Internal notes updated"})
}

// AssignEditor sets the handling editor for a submission.
func AssignEditor(c *gin.Context) {
	type AssignEditorRequest struct {
		EditorID int `json:"editor_id" binding:"required"`
	}
	var req AssignEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	var editor models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND delete_at IS NULL",
		req.EditorID, models.RoleEditor).First(&editor).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Editor not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&submission).Updates(map[string]interface{}{
		"assigned_editor_id": editor.UserID,
		"assigned_editor_at": now,
		"update_at":          now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign editor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Editor assigned"})
}

// AssignTechnicalEditors replaces the technical editor assignments.
func AssignTechnicalEditors(c *gin.Context) {
	type AssignRequest struct {
		UserIDs []int `json:"user_ids" binding:"required"`
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submission.SubmissionID).
			Delete(&models.AssignedTechnicalEditor{}).Error; err != nil {
			return err
		}
		for _, userID := range req.UserIDs {
			assignment := models.AssignedTechnicalEditor{
				SubmissionID: submission.SubmissionID,
				UserID:       userID,
				Status:       models.TechEditorPending,
				AssignedAt:   now,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign technical editors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Technical editors assigned"})
}

// AssignReviewers replaces the reviewer assignments.
func AssignReviewers(c *gin.Context) {
	type AssignedReviewerInput struct {
		UserID      int        `json:"user_id" binding:"required"`
		DueDate     *time.Time `json:"due_date"`
		IsAnonymous bool       `json:"is_anonymous"`
	}
	type AssignRequest struct {
		Reviewers []AssignedReviewerInput `json:"reviewers" binding:"required"`
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submission.SubmissionID).
			Delete(&models.AssignedReviewer{}).Error; err != nil {
			return err
		}
		for _, r := range req.Reviewers {
			assignment := models.AssignedReviewer{
				SubmissionID: submission.SubmissionID,
				UserID:       r.UserID,
				DueDate:      r.DueDate,
				Status:       "pending",
				IsAnonymous:  r.IsAnonymous,
				AssignedAt:   now,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviewers assigned"})
}

// GetStatusHistory lists the audit trail of status changes.
func GetStatusHistory(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	var history []models.SubmissionStatusHistory
	if err := config.DB.Where("submission_id = ?", submission.SubmissionID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
	})
}
