package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is a custom type for handling string arrays stored as jsonb.
// A nil slice is stored as SQL NULL so that open-ended questions keep a
// NULL options column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = nil
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Float32Slice stores an embedding vector as jsonb.
type Float32Slice []float32

// Value implements the driver.Valuer interface
func (f Float32Slice) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (f *Float32Slice) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("Float32Slice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*f = nil
		return nil
	}

	return json.Unmarshal(bytesToParse, f)
}

// JSONBlob stores an arbitrary JSON document (settings, multimedia).
type JSONBlob []byte

// Value implements the driver.Valuer interface
func (j JSONBlob) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONBlob) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONBlob(v)
	default:
		return errors.New("JSONBlob Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	return nil
}

// Quiz is the quizzes table row
type Quiz struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	CreatorID      string         `db:"creator_id"`
	Visibility     string         `db:"visibility"`
	Type           string         `db:"type"`
	Category       string         `db:"category"`
	Difficulty     string         `db:"difficulty"`
	Settings       JSONBlob       `db:"settings"`
	Multimedia     JSONBlob       `db:"multimedia"`
	Status         string         `db:"status"`
	TotalQuestions int            `db:"total_questions"`
	EstimatedTime  sql.NullInt64  `db:"estimated_time"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is the quiz_questions table row
type QuizQuestion struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Type          string         `db:"type"`
	QuestionText  string         `db:"question_text"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer StringSlice    `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	MediaURL      sql.NullString `db:"media_url"`
	Hint          sql.NullString `db:"hint"`
	Points        int            `db:"points"`
	Difficulty    string         `db:"difficulty"`
	OrderIndex    int            `db:"order_index"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizEmbedding is the quiz_embeddings table row
type QuizEmbedding struct {
	ID        string       `db:"id"`
	QuizID    string       `db:"quiz_id"`
	Topic     string       `db:"topic"`
	Embedding Float32Slice `db:"embedding"`
	CreatedAt time.Time    `db:"created_at"`
}

func (QuizEmbedding) TableName() string {
	return "quiz_embeddings"
}

// UserQuizMemory is the user_quiz_memory table row
type UserQuizMemory struct {
	UserID       string    `db:"user_id"`
	Topic        string    `db:"topic"`
	LastPrompt   string    `db:"last_prompt"`
	LastResponse string    `db:"last_response"`
	LastUsedAt   time.Time `db:"last_used_at"`
}

func (UserQuizMemory) TableName() string {
	return "user_quiz_memory"
}

// QuizFeedback is the quiz_feedback table row
type QuizFeedback struct {
	ID           string         `db:"id"`
	QuizID       string         `db:"quiz_id"`
	Rating       sql.NullInt64  `db:"rating"`
	TextFeedback sql.NullString `db:"text_feedback"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (QuizFeedback) TableName() string {
	return "quiz_feedback"
}

// AIGenerationLog is the ai_generation_logs table row
type AIGenerationLog struct {
	ID           string         `db:"id"`
	CreatorID    string         `db:"creator_id"`
	QuizID       sql.NullString `db:"quiz_id"`
	Status       string         `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (AIGenerationLog) TableName() string {
	return "ai_generation_logs"
}
