package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasudevshetty/studysyncs/agent"
	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/db"
	"github.com/Vasudevshetty/studysyncs/extractor"
	"github.com/Vasudevshetty/studysyncs/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeConverser struct {
	result *agent.ConverseResult
	err    error

	gotUserID string
	gotMode   string
}

func (f *fakeConverser) Converse(ctx context.Context, sessionID, userID, query, subject, learnerMode string) (*agent.ConverseResult, error) {
	f.gotUserID = userID
	f.gotMode = learnerMode
	return f.result, f.err
}

type fakeSessionReader struct {
	turns   []db.TurnModel
	ids     []string
	created string
	deleted int64
}

func (f *fakeSessionReader) History(ctx context.Context, sessionID string) ([]db.TurnModel, error) {
	return f.turns, nil
}
func (f *fakeSessionReader) AllSessionIDs(ctx context.Context) ([]string, error) {
	return f.ids, nil
}
func (f *fakeSessionReader) SessionIDsForUser(ctx context.Context, userID string) ([]string, error) {
	return f.ids, nil
}
func (f *fakeSessionReader) Create(ctx context.Context, userID string) (string, error) {
	return f.created, nil
}
func (f *fakeSessionReader) Delete(ctx context.Context, sessionID, userID string) (int64, error) {
	return f.deleted, nil
}

func newTestRouter(t *testing.T, mutate func(*Handlers)) *gin.Engine {
	t.Helper()
	h := Handlers{
		Chat:       NewChatHandler(&fakeConverser{result: &agent.ConverseResult{SessionID: "s1", Answer: "ok"}}),
		Session:    NewSessionHandler(&fakeSessionReader{}),
		Quiz:       NewQuizHandler(&scriptedLLM{}, &fakeTranscript{}, &fakeQuestionWriter{}),
		Assessment: NewAssessmentHandler(&fakeClassifier{label: "medium"}, &fakeAssessmentStore{}),
		Guidance:   NewGuidanceHandler(&scriptedLLM{reply: "study daily"}),
	}
	if mutate != nil {
		mutate(&h)
	}
	return NewRouter(h, "http://localhost:5173")
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "World", decode(t, w)["Hello"])
}

func TestChat_DefaultsUserAndMode(t *testing.T) {
	conv := &fakeConverser{result: &agent.ConverseResult{SessionID: "s1", Answer: "hi"}}
	r := newTestRouter(t, func(h *Handlers) { h.Chat = NewChatHandler(conv) })

	w := doRequest(r, http.MethodPost, "/chat?user_query=hello&subject=math", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, db.AnonymousUser, conv.gotUserID)
	assert.Equal(t, agent.DefaultLearnerMode, conv.gotMode)
	body := decode(t, w)
	assert.Equal(t, "s1", body["session_id"])
	assert.Equal(t, "hi", body["response"])
	assert.NotContains(t, body, "warning")
}

func TestChat_MissingQueryIs400(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodPost, "/chat?subject=math", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_PersistWarningStillOK(t *testing.T) {
	conv := &fakeConverser{result: &agent.ConverseResult{
		SessionID:  "s1",
		Answer:     "hi",
		PersistErr: apperr.Newf(apperr.PersistenceFailure, "disk full"),
	}}
	r := newTestRouter(t, func(h *Handlers) { h.Chat = NewChatHandler(conv) })

	w := doRequest(r, http.MethodPost, "/chat?user_query=hello&subject=math", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["warning"])
}

func TestChat_PipelineFailureIs500(t *testing.T) {
	conv := &fakeConverser{err: apperr.Newf(apperr.UpstreamFailure, "model down")}
	r := newTestRouter(t, func(h *Handlers) { h.Chat = NewChatHandler(conv) })

	w := doRequest(r, http.MethodPost, "/chat?user_query=hello&subject=math", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestChatHistory_EmptyIs404(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodGet, "/chat_history?session_id=ghost", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatHistory_ReturnsChats(t *testing.T) {
	store := &fakeSessionReader{turns: []db.TurnModel{
		{SessionID: "s1", Query: "q1", Response: "r1"},
		{SessionID: "s1", Query: "q2", Response: "r2"},
	}}
	r := newTestRouter(t, func(h *Handlers) { h.Session = NewSessionHandler(store) })

	w := doRequest(r, http.MethodGet, "/chat_history?session_id=s1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "s1", body["session_id"])
	assert.Len(t, body["chats"], 2)
}

func TestDeleteSession_ZeroDeletedIs404(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Session = NewSessionHandler(&fakeSessionReader{deleted: 0})
	})

	w := doRequest(r, http.MethodDelete, "/delete_session?session_id=ghost", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession_ReportsCount(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Session = NewSessionHandler(&fakeSessionReader{deleted: 3})
	})

	w := doRequest(r, http.MethodDelete, "/delete_session?session_id=s1&user_id=u1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["deleted_records"])
	assert.Equal(t, "deleted", body["status"])
}

func TestCreateSession(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Session = NewSessionHandler(&fakeSessionReader{created: "fresh-id"})
	})

	w := doRequest(r, http.MethodPost, "/create_session?user_id=u1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "fresh-id", body["session_id"])
	assert.Equal(t, "created", body["status"])
}

type fakeTranscript struct {
	text string
	err  error
}

func (f *fakeTranscript) Fetch(ctx context.Context, videoID string) (string, error) {
	return f.text, f.err
}

type fakeQuestionWriter struct {
	videoQuestions    []extractor.Question
	aptitudeQuestions []extractor.Question
}

func (f *fakeQuestionWriter) ReplaceVideoQuestions(ctx context.Context, videoID string, questions []extractor.Question) error {
	f.videoQuestions = questions
	return nil
}

func (f *fakeQuestionWriter) ReplaceAptitudeQuestions(ctx context.Context, questions []extractor.Question) error {
	f.aptitudeQuestions = questions
	return nil
}

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

const questionJSON = `[
  {"question": "What is 2+2?", "options": ["1", "2", "3", "4"], "correct_answer": "4"},
  {"question": "What is 3*3?", "options": ["6", "9", "12", "3"], "correct_answer": "9"}
]`

func TestVideoQuestions_ReturnsPublicProjection(t *testing.T) {
	writer := &fakeQuestionWriter{}
	r := newTestRouter(t, func(h *Handlers) {
		h.Quiz = NewQuizHandler(&scriptedLLM{reply: questionJSON},
			&fakeTranscript{text: "lecture transcript"}, writer)
	})

	w := doRequest(r, http.MethodPost, "/video_questions", `{"video_id": "abc123"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	// the stored rows keep the answer key, the response drops it
	require.Len(t, writer.videoQuestions, 2)
	assert.Equal(t, "4", writer.videoQuestions[0].CorrectAnswer)
	assert.NotContains(t, w.Body.String(), "correct_answer")
	assert.Contains(t, w.Body.String(), "What is 2+2?")
}

func TestVideoQuestions_MissingTranscriptIs404(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Quiz = NewQuizHandler(&scriptedLLM{reply: questionJSON},
			&fakeTranscript{err: apperr.Newf(apperr.NotFound, "no captions")},
			&fakeQuestionWriter{})
	})

	w := doRequest(r, http.MethodPost, "/video_questions", `{"video_id": "abc123"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoQuestions_MalformedModelOutputIs500(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Quiz = NewQuizHandler(&scriptedLLM{reply: "sorry, I can't"},
			&fakeTranscript{text: "transcript"}, &fakeQuestionWriter{})
	})

	w := doRequest(r, http.MethodPost, "/video_questions", `{"video_id": "abc123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAptitude_PersistsAndStripsAnswers(t *testing.T) {
	writer := &fakeQuestionWriter{}
	r := newTestRouter(t, func(h *Handlers) {
		h.Quiz = NewQuizHandler(&scriptedLLM{reply: questionJSON}, &fakeTranscript{}, writer)
	})

	w := doRequest(r, http.MethodGet, "/aptitude", "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, writer.aptitudeQuestions, 2)
	assert.NotContains(t, w.Body.String(), "correct_answer")
}

func TestAptitude_BadCountIs400(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodGet, "/aptitude?count=zero", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeClassifier struct {
	label string
	err   error
}

func (f *fakeClassifier) Classify(ctx context.Context, aptitudeScore, videoScore, total int) (string, error) {
	return f.label, f.err
}

type fakeAssessmentStore struct {
	saved       *db.AssessmentModel
	latest      string
	latestErr   error
	savedUserID string
}

func (f *fakeAssessmentStore) Save(ctx context.Context, userID string, videoScore, aptitudeScore int, learnerType string) (*db.AssessmentModel, error) {
	f.savedUserID = userID
	f.saved = &db.AssessmentModel{UserID: userID, VideoScore: videoScore, AptitudeScore: aptitudeScore, LearnerType: learnerType}
	return f.saved, nil
}

func (f *fakeAssessmentStore) LatestLearnerType(ctx context.Context, userID string) (string, error) {
	return f.latest, f.latestErr
}

func TestAssessment_ClassifiesAndPersists(t *testing.T) {
	store := &fakeAssessmentStore{}
	r := newTestRouter(t, func(h *Handlers) {
		h.Assessment = NewAssessmentHandler(&fakeClassifier{label: "slow"}, store)
	})

	w := doRequest(r, http.MethodPost, "/assessment",
		`{"user_id": "u1", "aptitude_score": 3, "video_score": 2, "total": 20}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "slow", body["learner_type"])
	assert.Equal(t, float64(3), body["aptitude_score"])
	require.NotNil(t, store.saved)
	assert.Equal(t, "slow", store.saved.LearnerType)
}

func TestAssessment_UnclassifiableIs500(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Assessment = NewAssessmentHandler(
			&fakeClassifier{err: apperr.Newf(apperr.MalformedOutput, "no label")},
			&fakeAssessmentStore{})
	})

	w := doRequest(r, http.MethodPost, "/assessment",
		`{"user_id": "u1", "total": 20}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLearnerType_NoneIs404(t *testing.T) {
	r := newTestRouter(t, func(h *Handlers) {
		h.Assessment = NewAssessmentHandler(&fakeClassifier{},
			&fakeAssessmentStore{latestErr: apperr.Newf(apperr.NotFound, "never assessed")})
	})

	w := doRequest(r, http.MethodGet, "/learner_type?user_id=u1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevision_ReturnsStrategy(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodPost, "/revision",
		`{"subject": "physics", "topics": "kinematics"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "study daily", decode(t, w)["revision_strategy"])
}

func TestRevision_BadLearnerModeIs400(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodPost, "/revision",
		`{"subject": "physics", "learner_type": "turbo"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCareerPath_ReturnsText(t *testing.T) {
	w := doRequest(newTestRouter(t, nil), http.MethodPost, "/career_path",
		`{"interests": "distributed systems"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "study daily", decode(t, w)["career_path"])
}
