package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
)

// scriptedLLM replays a canned reply through the inference callback.
type scriptedLLM struct {
	reply string
	err   error
}

func (s *scriptedLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(string) error, opts ...llm.LLMOption) error {
	if s.err != nil {
		return s.err
	}
	return callback(s.reply)
}

func (s *scriptedLLM) GetModel() string { return "scripted" }

func TestClassify_ExactLabel(t *testing.T) {
	c := NewClassifier(&scriptedLLM{reply: "fast"})

	label, err := c.Classify(context.Background(), 8, 9, 20)

	require.NoError(t, err)
	assert.Equal(t, LearnerFast, label)
}

func TestClassify_SubstringFallback(t *testing.T) {
	c := NewClassifier(&scriptedLLM{reply: "the learner type is: medium."})

	label, err := c.Classify(context.Background(), 5, 5, 20)

	require.NoError(t, err)
	assert.Equal(t, LearnerMedium, label)
}

func TestClassify_UnmatchedReplyIsError(t *testing.T) {
	c := NewClassifier(&scriptedLLM{reply: "i cannot determine that"})

	_, err := c.Classify(context.Background(), 1, 1, 20)

	require.Error(t, err)
	assert.Equal(t, apperr.MalformedOutput, apperr.KindOf(err))
}

func TestClassify_UpstreamFailure(t *testing.T) {
	c := NewClassifier(&scriptedLLM{err: errors.New("rate limited")})

	_, err := c.Classify(context.Background(), 1, 1, 20)

	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamFailure, apperr.KindOf(err))
}

func TestValidateLearnerMode(t *testing.T) {
	assert.NoError(t, ValidateLearnerMode(LearnerSlow))
	assert.NoError(t, ValidateLearnerMode(LearnerMedium))
	assert.NoError(t, ValidateLearnerMode(LearnerFast))

	err := ValidateLearnerMode("turbo")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestRewrite_EmptyHistoryPassthrough(t *testing.T) {
	// no LLM call should happen; a nil client panicking would fail the test
	c := NewContextualizer(nil)

	out, err := c.Rewrite(context.Background(), "what is recursion", nil)

	require.NoError(t, err)
	assert.Equal(t, "what is recursion", out)
}
