package controllers

import (
	"net/http"
	"strconv"

	"journal-management-api/config"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// SubmitRevision creates a new manuscript version and cycle for a
// revision-requested submission and re-submits it.
func SubmitRevision(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	var payload services.RevisionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notifier := services.NewNotificationService(config.DB)
	lifecycle := services.NewLifecycleService(config.DB, notifier)
	svc := services.NewRevisionService(config.DB, lifecycle)

	result, err := svc.SubmitRevision(submissionID, currentActor(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Revision submitted",
		"submission": result.Submission,
		"cycle":      result.Cycle,
		"version":    result.Version,
	})
}

// GetManuscriptVersions lists the version history of a submission.
func GetManuscriptVersions(c *gin.Context) {
	submission, ok := findSubmissionScoped(c, c.Param("id"))
	if !ok {
		return
	}

	svc := services.NewRevisionService(config.DB, nil)
	versions, err := svc.Versions(submission.SubmissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"versions": versions,
	})
}
