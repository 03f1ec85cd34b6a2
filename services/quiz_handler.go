package services

import (
	"context"
	"strconv"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/gin-gonic/gin"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/extractor"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/prompts"
)

const (
	DefaultVideoQuestions    = 5
	DefaultAptitudeQuestions = 10
)

// TranscriptFetcher pulls the caption text for a video id.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// QuestionWriter persists generated question sets, answer keys included.
type QuestionWriter interface {
	ReplaceVideoQuestions(ctx context.Context, videoID string, questions []extractor.Question) error
	ReplaceAptitudeQuestions(ctx context.Context, questions []extractor.Question) error
}

type QuizHandler struct {
	llm        llm.LLMClient
	transcript TranscriptFetcher
	store      QuestionWriter
}

func NewQuizHandler(client llm.LLMClient, transcript TranscriptFetcher, store QuestionWriter) *QuizHandler {
	return &QuizHandler{llm: client, transcript: transcript, store: store}
}

type videoQuestionsRequest struct {
	VideoID      string `json:"video_id" binding:"required"`
	MaxQuestions int    `json:"max_questions"`
}

// POST /video_questions
func (h *QuizHandler) VideoQuestions(c *gin.Context) {
	var req videoQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidArgument, err))
		return
	}
	if req.MaxQuestions <= 0 {
		req.MaxQuestions = DefaultVideoQuestions
	}

	ctx := c.Request.Context()
	text, err := h.transcript.Fetch(ctx, req.VideoID)
	if err != nil {
		respondError(c, err)
		return
	}

	raw, err := async.Await(prompts.GenerateVideoQuestions(ctx, h.llm, text, req.MaxQuestions))
	if err != nil {
		respondError(c, apperr.New(apperr.UpstreamFailure, err))
		return
	}

	questions, err := extractor.Extract(raw, req.MaxQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.ReplaceVideoQuestions(ctx, req.VideoID, questions); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"video_id": req.VideoID, "questions": extractor.Public(questions)})
}

// GET /aptitude?count=
func (h *QuizHandler) Aptitude(c *gin.Context) {
	count := DefaultAptitudeQuestions
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, apperr.Newf(apperr.InvalidArgument, "count must be a positive integer"))
			return
		}
		count = n
	}

	ctx := c.Request.Context()
	raw, err := async.Await(prompts.GenerateAptitudeQuestions(ctx, h.llm, count))
	if err != nil {
		respondError(c, apperr.New(apperr.UpstreamFailure, err))
		return
	}

	questions, err := extractor.Extract(raw, count)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.ReplaceAptitudeQuestions(ctx, questions); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"questions": extractor.Public(questions)})
}
