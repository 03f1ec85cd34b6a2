package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/extractor"
)

// QuestionStore keeps the server-side answer keys for generated quizzes.
// Each generation supersedes the previous set for the same owner key.
// Records are replaced, never merged.
type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(gdb *gorm.DB) *QuestionStore {
	return &QuestionStore{db: gdb}
}

func (s *QuestionStore) ReplaceVideoQuestions(ctx context.Context, videoID string, questions []extractor.Question) error {
	now := time.Now()
	rows := make([]VideoQuestionModel, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, VideoQuestionModel{
			VideoID:       videoID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			CreatedAt:     now,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&VideoQuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return apperr.New(apperr.PersistenceFailure, err)
	}
	return nil
}

func (s *QuestionStore) ReplaceAptitudeQuestions(ctx context.Context, questions []extractor.Question) error {
	now := time.Now()
	rows := make([]AptitudeQuestionModel, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, AptitudeQuestionModel{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			CreatedAt:     now,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&AptitudeQuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return apperr.New(apperr.PersistenceFailure, err)
	}
	return nil
}
