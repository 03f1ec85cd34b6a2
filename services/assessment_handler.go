package services

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/db"
)

// LearnerClassifier maps assessment scores to a learner-type label.
type LearnerClassifier interface {
	Classify(ctx context.Context, aptitudeScore, videoScore, total int) (string, error)
}

// AssessmentWriter persists classification runs and serves the latest.
type AssessmentWriter interface {
	Save(ctx context.Context, userID string, videoScore, aptitudeScore int, learnerType string) (*db.AssessmentModel, error)
	LatestLearnerType(ctx context.Context, userID string) (string, error)
}

type AssessmentHandler struct {
	classifier LearnerClassifier
	store      AssessmentWriter
}

func NewAssessmentHandler(classifier LearnerClassifier, store AssessmentWriter) *AssessmentHandler {
	return &AssessmentHandler{classifier: classifier, store: store}
}

type assessmentRequest struct {
	UserID        string `json:"user_id" binding:"required"`
	AptitudeScore int    `json:"aptitude_score"`
	VideoScore    int    `json:"video_score"`
	Total         int    `json:"total" binding:"required"`
}

// POST /assessment
func (h *AssessmentHandler) Assess(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidArgument, err))
		return
	}

	ctx := c.Request.Context()
	label, err := h.classifier.Classify(ctx, req.AptitudeScore, req.VideoScore, req.Total)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.store.Save(ctx, req.UserID, req.VideoScore, req.AptitudeScore, label); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"user_id":        req.UserID,
		"learner_type":   label,
		"aptitude_score": req.AptitudeScore,
		"video_score":    req.VideoScore,
		"total":          req.Total,
	})
}

// GET /learner_type?user_id=
func (h *AssessmentHandler) LearnerType(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, apperr.Newf(apperr.InvalidArgument, "user_id is required"))
		return
	}

	label, err := h.store.LatestLearnerType(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user_id": userID, "learner_type": label})
}
