package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Vasudevshetty/studysyncs/apperr"
)

type AssessmentStore struct {
	db *gorm.DB
}

func NewAssessmentStore(gdb *gorm.DB) *AssessmentStore {
	return &AssessmentStore{db: gdb}
}

func (s *AssessmentStore) Save(ctx context.Context, userID string, videoScore, aptitudeScore int, learnerType string) (*AssessmentModel, error) {
	row := AssessmentModel{
		UserID:         userID,
		VideoScore:     videoScore,
		AptitudeScore:  aptitudeScore,
		LearnerType:    learnerType,
		AssessmentDate: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.New(apperr.PersistenceFailure, err)
	}
	return &row, nil
}

// LatestLearnerType returns the most recently classified learner type
// for the user, or NotFound when the user was never assessed.
func (s *AssessmentStore) LatestLearnerType(ctx context.Context, userID string) (string, error) {
	var row AssessmentModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assessment_date DESC, id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Newf(apperr.NotFound, "no assessment for user %s", userID)
	}
	if err != nil {
		return "", apperr.New(apperr.PersistenceFailure, err)
	}
	return row.LearnerType, nil
}
