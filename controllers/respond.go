package controllers

import (
	"errors"
	"net/http"

	"journal-management-api/errs"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses. Services raise the
// errors; this is the single place the boundary translates them.
func respondError(c *gin.Context, err error) {
	var (
		validationErr  *errs.ValidationError
		transitionErr  *errs.InvalidTransitionError
		incompleteErr  *errs.IncompleteSubmissionError
		lockedFieldErr *errs.IllegalModificationError
		permissionErr  *errs.PermissionDeniedError
	)

	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, errs.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or already used token"})
	case errors.Is(err, errs.ErrTokenExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Token has expired"})
	case errors.Is(err, errs.ErrDecisionLimitExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": "Decision limit for this cycle is exhausted"})
	case errors.Is(err, errs.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": "The submission was modified concurrently, please retry"})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Entry already exists"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &incompleteErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": incompleteErr.Error(), "missing": incompleteErr.Missing})
	case errors.As(err, &lockedFieldErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": lockedFieldErr.Error(), "field": lockedFieldErr.Field})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{"error": permissionErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentActor extracts the authenticated user from the gin context.
func currentActor(c *gin.Context) services.Actor {
	actor := services.Actor{}
	if userID, exists := c.Get("userID"); exists {
		if cast, ok := userID.(int); ok {
			actor.UserID = cast
		}
	}
	if roleID, exists := c.Get("roleID"); exists {
		if cast, ok := roleID.(int); ok {
			actor.RoleID = cast
		}
	}
	return actor
}
