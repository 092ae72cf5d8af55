package domain

import (
	"context"
	"time"
)

// Difficulty levels accepted by the generation pipeline.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question type tags the model is instructed to use.
const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "true_false"
	QuestionTypeOpenEnded = "open_ended"
)

// Quiz visibility and lifecycle states.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"

	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// QuizSettings is the settings blob stored alongside a quiz header.
type QuizSettings struct {
	QuestionTypes       []string `json:"questionTypes,omitempty"`
	IncludeExplanations bool     `json:"includeExplanations"`
	IncludeMemory       bool     `json:"includeMemory"`
	CustomInstructions  string   `json:"customInstructions,omitempty"`
	Language            string   `json:"language,omitempty"`
}

// Multimedia is the multimedia blob stored alongside a quiz header.
type Multimedia struct {
	Images []string `json:"images,omitempty"`
	Videos []string `json:"videos,omitempty"`
	Audio  []string `json:"audio,omitempty"`
}

// GeneratedQuiz is the quiz header record. The pipeline creates it exactly
// once per successful run and never updates it afterwards.
type GeneratedQuiz struct {
	ID             string
	Title          string
	Description    string
	CreatorID      string
	Visibility     string
	Type           string
	Category       string
	Difficulty     string
	Settings       QuizSettings
	Multimedia     Multimedia
	Status         string
	TotalQuestions int
	EstimatedTime  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Question is one generated question row. Options is nil for open-ended
// questions. OrderIndex is the question's position in the model's output array.
type Question struct {
	ID            string
	QuizID        string
	Type          string
	Text          string
	Options       []string
	CorrectAnswer []string
	Explanation   string
	MediaURL      string
	Hint          string
	Points        int
	Difficulty    string
	OrderIndex    int
	CreatedAt     time.Time
}

// QuizRepository persists generated quizzes and their questions.
type QuizRepository interface {
	// SaveQuiz inserts the quiz header row and fills in ID and timestamps.
	SaveQuiz(ctx context.Context, quiz *GeneratedQuiz) error
	// SaveQuestions bulk-inserts the question rows for a quiz. The batch is
	// atomic; the quiz header is not touched on failure.
	SaveQuestions(ctx context.Context, quizID string, questions []*Question) error
	GetQuizByID(ctx context.Context, id string) (*GeneratedQuiz, error)
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*Question, error)
}

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
