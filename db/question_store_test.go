package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasudevshetty/studysyncs/extractor"
)

func openTestStores(t *testing.T) (*QuestionStore, *AssessmentStore) {
	t.Helper()
	gdb, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	return NewQuestionStore(gdb), NewAssessmentStore(gdb)
}

func sampleQuestions(n int) []extractor.Question {
	out := make([]extractor.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, extractor.Question{
			Question:      fmt.Sprintf("Q%d", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		})
	}
	return out
}

func TestReplaceVideoQuestionsSupersedes(t *testing.T) {
	questions, _ := openTestStores(t)

	require.NoError(t, questions.ReplaceVideoQuestions(t.Context(), "vid1", sampleQuestions(3)))
	require.NoError(t, questions.ReplaceVideoQuestions(t.Context(), "vid2", sampleQuestions(2)))
	// regeneration replaces vid1's set, leaves vid2 alone
	require.NoError(t, questions.ReplaceVideoQuestions(t.Context(), "vid1", sampleQuestions(5)))

	var rows []VideoQuestionModel
	require.NoError(t, questions.db.Where("video_id = ?", "vid1").Find(&rows).Error)
	assert.Len(t, rows, 5)
	assert.Equal(t, []string{"A", "B", "C", "D"}, rows[0].Options)

	require.NoError(t, questions.db.Where("video_id = ?", "vid2").Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestReplaceAptitudeQuestionsSupersedes(t *testing.T) {
	questions, _ := openTestStores(t)

	require.NoError(t, questions.ReplaceAptitudeQuestions(t.Context(), sampleQuestions(10)))
	require.NoError(t, questions.ReplaceAptitudeQuestions(t.Context(), sampleQuestions(4)))

	var rows []AptitudeQuestionModel
	require.NoError(t, questions.db.Find(&rows).Error)
	assert.Len(t, rows, 4)
}

func TestLatestLearnerType(t *testing.T) {
	_, assessments := openTestStores(t)

	_, err := assessments.LatestLearnerType(t.Context(), "u1")
	require.Error(t, err)

	_, err = assessments.Save(t.Context(), "u1", 3, 4, "slow")
	require.NoError(t, err)
	_, err = assessments.Save(t.Context(), "u1", 8, 9, "fast")
	require.NoError(t, err)

	latest, err := assessments.LatestLearnerType(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "fast", latest)
}
