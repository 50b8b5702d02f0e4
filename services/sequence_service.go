package services

import (
	"errors"
	"fmt"

	"journal-management-api/errs"
	"journal-management-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// submissionNumberPrefix is the journal's identifier in submission numbers.
const submissionNumberPrefix = "JAIRAM"

// sequenceRetries bounds the compare-and-swap loop under contention.
const sequenceRetries = 5

// SequenceService reserves year-scoped running numbers for submissions. The
// counter row is advanced with a conditional update so two concurrent
// submissions can never be handed the same number.
type SequenceService struct {
	db *gorm.DB
}

func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db}
}

// NextSubmissionNumber reserves the next number for the given year and
// formats it as JAIRAM-<year>-<4-digit-seq>. The per-year counter starts at 1.
func (s *SequenceService) NextSubmissionNumber(year int) (string, error) {
	for attempt := 0; attempt < sequenceRetries; attempt++ {
		var seq models.SubmissionSequence
		err := s.db.Where("year = ?", year).First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.SubmissionSequence{Year: year, LastNumber: 0}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
				return "", err
			}
			// Another request may have created the row first; re-read for the
			// canonical counter value.
			if err := s.db.Where("year = ?", year).First(&seq).Error; err != nil {
				return "", err
			}
		} else if err != nil {
			return "", err
		}

		next := seq.LastNumber + 1
		res := s.db.Model(&models.SubmissionSequence{}).
			Where("year = ? AND last_number = ?", year, seq.LastNumber).
			Update("last_number", next)
		if res.Error != nil {
			return "", res.Error
		}
		if res.RowsAffected == 1 {
			return fmt.Sprintf("%s-%d-%04d", submissionNumberPrefix, year, next), nil
		}
	}
	return "", errs.ErrConcurrentModification
}
