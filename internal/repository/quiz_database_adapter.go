package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizoraa/internal/domain"
	"quizoraa/internal/repository/models"
	"quizoraa/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.GeneratedQuiz) error {
	modelQuiz, err := toModelQuiz(quiz)
	if err != nil {
		return err
	}
	modelQuiz.ID = util.NewULID()
	modelQuiz.CreatedAt = time.Now()
	modelQuiz.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (
		id, title, description, creator_id, visibility, type, category,
		difficulty, settings, multimedia, status, total_questions,
		estimated_time, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	)`

	executor := GetExecutor(ctx, a.db)
	_, err = executor.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Title,
		modelQuiz.Description,
		modelQuiz.CreatorID,
		modelQuiz.Visibility,
		modelQuiz.Type,
		modelQuiz.Category,
		modelQuiz.Difficulty,
		modelQuiz.Settings,
		modelQuiz.Multimedia,
		modelQuiz.Status,
		modelQuiz.TotalQuestions,
		modelQuiz.EstimatedTime,
		modelQuiz.CreatedAt,
		modelQuiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	quiz.UpdatedAt = modelQuiz.UpdatedAt
	return nil
}

// SaveQuestions implements domain.QuizRepository. Each row gets a fresh ULID;
// OrderIndex is taken from the question as provided by the caller.
func (a *QuizDatabaseAdapter) SaveQuestions(ctx context.Context, quizID string, questions []*domain.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("cannot save empty question batch")
	}

	query := `INSERT INTO quiz_questions (
		id, quiz_id, type, question_text, options, correct_answer,
		explanation, media_url, hint, points, difficulty, order_index, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)`

	executor := GetExecutor(ctx, a.db)
	now := time.Now()
	for _, q := range questions {
		q.QuizID = quizID
		q.CreatedAt = now
		modelQuestion := toModelQuestion(q)
		modelQuestion.ID = util.NewULID()

		_, err := executor.ExecContext(ctx, query,
			modelQuestion.ID,
			modelQuestion.QuizID,
			modelQuestion.Type,
			modelQuestion.QuestionText,
			modelQuestion.Options,
			modelQuestion.CorrectAnswer,
			modelQuestion.Explanation,
			modelQuestion.MediaURL,
			modelQuestion.Hint,
			modelQuestion.Points,
			modelQuestion.Difficulty,
			modelQuestion.OrderIndex,
			modelQuestion.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question at index %d: %w", q.OrderIndex, err)
		}
		q.ID = modelQuestion.ID
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.GeneratedQuiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT
		id, title, description, creator_id, visibility, type, category,
		difficulty, settings, multimedia, status, total_questions,
		estimated_time, created_at, updated_at
	FROM quizzes
	WHERE id = $1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz)
}

// GetQuestionsByQuizID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var modelQuestions []models.QuizQuestion
	query := `SELECT
		id, quiz_id, type, question_text, options, correct_answer,
		explanation, media_url, hint, points, difficulty, order_index, created_at
	FROM quiz_questions
	WHERE quiz_id = $1
	ORDER BY order_index ASC`

	executor := GetExecutor(ctx, a.db)
	err := executor.SelectContext(ctx, &modelQuestions, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}
