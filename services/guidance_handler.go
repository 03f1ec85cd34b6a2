package services

import (
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/gin-gonic/gin"

	"github.com/Vasudevshetty/studysyncs/agent"
	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/prompts"
)

// GuidanceHandler serves the stateless single-shot generations: revision
// strategies, career paths and study recommendations. No session state,
// no retrieval, just prompt and reply.
type GuidanceHandler struct {
	llm llm.LLMClient
}

func NewGuidanceHandler(client llm.LLMClient) *GuidanceHandler {
	return &GuidanceHandler{llm: client}
}

type revisionRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Topics      string `json:"topics"`
	LearnerMode string `json:"learner_type"`
}

// POST /revision
func (h *GuidanceHandler) Revision(c *gin.Context) {
	var req revisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidArgument, err))
		return
	}
	mode, err := normalizeMode(req.LearnerMode)
	if err != nil {
		respondError(c, err)
		return
	}

	h.generate(c, prompts.RevisionStrategy(c.Request.Context(), h.llm, req.Subject, req.Topics, mode), "revision_strategy")
}

type careerPathRequest struct {
	Interests    string `json:"interests" binding:"required"`
	CurrentLevel string `json:"current_level"`
}

// POST /career_path
func (h *GuidanceHandler) CareerPath(c *gin.Context) {
	var req careerPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidArgument, err))
		return
	}

	h.generate(c, prompts.CareerPath(c.Request.Context(), h.llm, req.Interests, req.CurrentLevel), "career_path")
}

type recommendationsRequest struct {
	Subject     string `json:"subject" binding:"required"`
	LearnerMode string `json:"learner_type"`
}

// POST /recommendations
func (h *GuidanceHandler) Recommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidArgument, err))
		return
	}
	mode, err := normalizeMode(req.LearnerMode)
	if err != nil {
		respondError(c, err)
		return
	}

	h.generate(c, prompts.Recommendations(c.Request.Context(), h.llm, req.Subject, mode), "recommendations")
}

func (h *GuidanceHandler) generate(c *gin.Context, result <-chan async.Result[string], field string) {
	text, err := async.Await(result)
	if err != nil {
		respondError(c, apperr.New(apperr.UpstreamFailure, err))
		return
	}
	respondOK(c, gin.H{field: text})
}

func normalizeMode(mode string) (string, error) {
	if mode == "" {
		return agent.DefaultLearnerMode, nil
	}
	if err := agent.ValidateLearnerMode(mode); err != nil {
		return "", err
	}
	return mode, nil
}
