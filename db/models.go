package db

import "time"

// SessionStartedMarker is the response text of the sentinel turn written
// when a session is created explicitly. The sentinel makes the session id
// enumerable before the first real exchange.
const SessionStartedMarker = "Session started"

// AnonymousUser owns turns written without an authenticated user.
const AnonymousUser = "anonymous"

// TurnModel is one query/response exchange. Rows are append-only: never
// updated, only inserted or bulk-deleted per session.
type TurnModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"column:session_id;index" json:"session_id"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	Query     string    `gorm:"column:user_query" json:"query"`
	Response  string    `gorm:"column:model_response" json:"response"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (TurnModel) TableName() string { return "application_logs" }

// VideoQuestionModel stores the full question record, answer key included.
// Clients only ever see the public projection built by the extractor.
type VideoQuestionModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID       string    `gorm:"column:video_id;index" json:"video_id"`
	Question      string    `gorm:"column:question" json:"question"`
	Options       []string  `gorm:"column:options;serializer:json" json:"options"`
	CorrectAnswer string    `gorm:"column:correct_answer" json:"correct_answer"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VideoQuestionModel) TableName() string { return "video_questions" }

type AptitudeQuestionModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Question      string    `gorm:"column:question" json:"question"`
	Options       []string  `gorm:"column:options;serializer:json" json:"options"`
	CorrectAnswer string    `gorm:"column:correct_answer" json:"correct_answer"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AptitudeQuestionModel) TableName() string { return "aptitude_questions" }

// AssessmentModel records one learner-type classification run.
type AssessmentModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"column:user_id;index" json:"user_id"`
	VideoScore     int       `gorm:"column:video_score" json:"video_score"`
	AptitudeScore  int       `gorm:"column:aptitude_score" json:"aptitude_score"`
	LearnerType    string    `gorm:"column:learner_type" json:"learner_type"`
	AssessmentDate time.Time `gorm:"column:assessment_date" json:"assessment_date"`
}

func (AssessmentModel) TableName() string { return "user_assessments" }
