package services

import (
	"time"

	"journal-management-api/models"

	"gorm.io/gorm"
)

// UserService covers the identity concerns of the workflow: claiming manual
// co-author and reviewer entries once the matching person registers.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ReconcileUserLinks claims co-author and suggested-reviewer rows that were
// entered manually with this user's e-mail address. Called after
// registration; consent and invitation state is left untouched.
func (s *UserService) ReconcileUserLinks(user *models.User) error {
	now := time.Now()

	if err := s.db.Model(&models.CoAuthor{}).
		Where("email = ? AND user_id IS NULL", user.Email).
		Updates(map[string]interface{}{"user_id": user.UserID, "update_at": now}).Error; err != nil {
		return err
	}

	return s.db.Model(&models.SuggestedReviewer{}).
		Where("email = ? AND user_id IS NULL", user.Email).
		Updates(map[string]interface{}{"user_id": user.UserID, "update_at": now}).Error
}
