package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"quizoraa/internal/domain"
	"quizoraa/internal/repository/models"
)

func toModelQuiz(quiz *domain.GeneratedQuiz) (*models.Quiz, error) {
	if quiz == nil {
		return nil, fmt.Errorf("cannot convert nil quiz")
	}

	settings, err := json.Marshal(quiz.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz settings: %w", err)
	}
	multimedia, err := json.Marshal(quiz.Multimedia)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz multimedia: %w", err)
	}

	return &models.Quiz{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Description:    toNullString(quiz.Description),
		CreatorID:      quiz.CreatorID,
		Visibility:     quiz.Visibility,
		Type:           quiz.Type,
		Category:       quiz.Category,
		Difficulty:     quiz.Difficulty,
		Settings:       models.JSONBlob(settings),
		Multimedia:     models.JSONBlob(multimedia),
		Status:         quiz.Status,
		TotalQuestions: quiz.TotalQuestions,
		EstimatedTime:  toNullInt64(quiz.EstimatedTime),
		CreatedAt:      quiz.CreatedAt,
		UpdatedAt:      quiz.UpdatedAt,
	}, nil
}

func toDomainQuiz(modelQuiz *models.Quiz) (*domain.GeneratedQuiz, error) {
	if modelQuiz == nil {
		return nil, nil
	}

	var settings domain.QuizSettings
	if len(modelQuiz.Settings) > 0 {
		if err := json.Unmarshal(modelQuiz.Settings, &settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz settings: %w", err)
		}
	}
	var multimedia domain.Multimedia
	if len(modelQuiz.Multimedia) > 0 {
		if err := json.Unmarshal(modelQuiz.Multimedia, &multimedia); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz multimedia: %w", err)
		}
	}

	return &domain.GeneratedQuiz{
		ID:             modelQuiz.ID,
		Title:          modelQuiz.Title,
		Description:    modelQuiz.Description.String,
		CreatorID:      modelQuiz.CreatorID,
		Visibility:     modelQuiz.Visibility,
		Type:           modelQuiz.Type,
		Category:       modelQuiz.Category,
		Difficulty:     modelQuiz.Difficulty,
		Settings:       settings,
		Multimedia:     multimedia,
		Status:         modelQuiz.Status,
		TotalQuestions: modelQuiz.TotalQuestions,
		EstimatedTime:  int(modelQuiz.EstimatedTime.Int64),
		CreatedAt:      modelQuiz.CreatedAt,
		UpdatedAt:      modelQuiz.UpdatedAt,
	}, nil
}

func toModelQuestion(q *domain.Question) *models.QuizQuestion {
	if q == nil {
		return nil
	}
	return &models.QuizQuestion{
		ID:            q.ID,
		QuizID:        q.QuizID,
		Type:          q.Type,
		QuestionText:  q.Text,
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: models.StringSlice(q.CorrectAnswer),
		Explanation:   toNullString(q.Explanation),
		MediaURL:      toNullString(q.MediaURL),
		Hint:          toNullString(q.Hint),
		Points:        q.Points,
		Difficulty:    q.Difficulty,
		OrderIndex:    q.OrderIndex,
		CreatedAt:     q.CreatedAt,
	}
}

func toDomainQuestion(m *models.QuizQuestion) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Type:          m.Type,
		Text:          m.QuestionText,
		Options:       []string(m.Options),
		CorrectAnswer: []string(m.CorrectAnswer),
		Explanation:   m.Explanation.String,
		MediaURL:      m.MediaURL.String,
		Hint:          m.Hint.String,
		Points:        m.Points,
		Difficulty:    m.Difficulty,
		OrderIndex:    m.OrderIndex,
		CreatedAt:     m.CreatedAt,
	}
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullInt64(i int) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(i), Valid: true}
}
