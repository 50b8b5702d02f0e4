package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 20 * 1024 * 1024 // 20MB

var validFileKinds = map[string]bool{
	models.FileKindCoverLetter:     true,
	models.FileKindBlindManuscript: true,
	models.FileKindFigure:          true,
	models.FileKindTable:           true,
	models.FileKindSupplement:      true,
}

// UploadDocument stores one manuscript file and links it to the submission
// under the given kind. Files uploaded before submission stay temporary and
// are pinned when the manuscript is submitted.
func UploadDocument(c *gin.Context) {
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
	if !submission.IsEditable() && actor.RoleID != models.RoleEditor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot upload files after submission"})
		return
	}

	kind := c.PostForm("kind")
	if !validFileKinds[kind] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file kind"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 20MB limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	probe := models.FileUpload{MimeType: contentType}
	switch kind {
	case models.FileKindFigure:
		if !probe.IsValidImageType() && !probe.IsValidDocumentType() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed for figures"})
			return
		}
	default:
		if !probe.IsValidDocumentType() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
			return
		}
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))

	uploadDir := fmt.Sprintf("uploads/submissions/%d/%02d", time.Now().Year(), time.Now().Month())
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	ext := filepath.Ext(header.Filename)
	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(uploadDir, storedName)

	if err := c.SaveUploadedFile(header, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	upload := models.FileUpload{
		OriginalName: header.Filename,
		StoredPath:   storedPath,
		FileSize:     header.Size,
		MimeType:     contentType,
		FileHash:     fileHash,
		UploadedBy:   actor.UserID,
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&upload).Error; err != nil {
			return err
		}
		link := models.SubmissionFile{
			SubmissionID: submission.SubmissionID,
			FileID:       upload.FileID,
			Kind:         kind,
			IsTemporary:  submission.Status == models.StatusDraft || submission.Status == models.StatusRevisionRequested,
			CreateAt:     now,
			UpdateAt:     now,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "File uploaded successfully",
		"file":    upload,
	})
}

// GetDocuments lists the files attached to a submission.
func GetDocuments(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	var files []models.SubmissionFile
	if err := config.DB.Preload("File").
		Where("submission_id = ? AND delete_at IS NULL", submission.SubmissionID).
		Order("create_at ASC").
		Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   files,
	})
}

// DownloadDocument streams one attached file back to the caller.
func DownloadDocument(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	var link models.SubmissionFile
	if err := config.DB.Preload("File").
		Where("submission_file_id = ? AND submission_id = ? AND delete_at IS NULL",
			c.Param("file_id"), submission.SubmissionID).
		First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if link.File == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if _, err := os.Stat(link.File.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File missing from storage"})
		return
	}

	c.FileAttachment(link.File.StoredPath, link.File.OriginalName)
}

// DeleteDocument unlinks a temporary file from an editable submission.
func DeleteDocument(c *gin.Context) {
	actor := currentActor(c)

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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove files after submission"})
		return
	}

	var link models.SubmissionFile
	if err := config.DB.Where("submission_file_id = ? AND submission_id = ? AND delete_at IS NULL",
		c.Param("file_id"), submission.SubmissionID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if !link.IsTemporary {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pinned files cannot be removed"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&link).Updates(map[string]interface{}{
		"delete_at": now,
		"update_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File removed"})
}
