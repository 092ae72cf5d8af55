package repository

import (
	"context"
	"fmt"

	"quizoraa/internal/domain"
	"quizoraa/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// FeedbackDatabaseAdapter implements domain.FeedbackRepository using sqlx.DB
type FeedbackDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFeedbackDatabaseAdapter creates a new instance of FeedbackDatabaseAdapter
func NewFeedbackDatabaseAdapter(db *sqlx.DB) domain.FeedbackRepository {
	return &FeedbackDatabaseAdapter{db: db}
}

// GetFeedbackByQuizIDs implements domain.FeedbackRepository
func (a *FeedbackDatabaseAdapter) GetFeedbackByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Feedback, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, quiz_id, rating, text_feedback, created_at
	FROM quiz_feedback
	WHERE quiz_id IN (?)`, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build feedback query: %w", err)
	}
	query = a.db.Rebind(query)

	var modelFeedbacks []models.QuizFeedback
	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &modelFeedbacks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get feedback for quizzes: %w", err)
	}

	feedbacks := make([]*domain.Feedback, 0, len(modelFeedbacks))
	for i := range modelFeedbacks {
		m := &modelFeedbacks[i]
		feedbacks = append(feedbacks, &domain.Feedback{
			QuizID: m.QuizID,
			Rating: int(m.Rating.Int64),
			Text:   m.TextFeedback.String,
		})
	}
	return feedbacks, nil
}
