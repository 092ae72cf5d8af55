package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizoraa/internal/domain"
	"quizoraa/internal/util"

	"github.com/jmoiron/sqlx"
)

// GenerationLogDatabaseAdapter implements domain.GenerationLogRepository using sqlx.DB
type GenerationLogDatabaseAdapter struct {
	db *sqlx.DB
}

// NewGenerationLogDatabaseAdapter creates a new instance of GenerationLogDatabaseAdapter
func NewGenerationLogDatabaseAdapter(db *sqlx.DB) domain.GenerationLogRepository {
	return &GenerationLogDatabaseAdapter{db: db}
}

// SaveLog implements domain.GenerationLogRepository
func (a *GenerationLogDatabaseAdapter) SaveLog(ctx context.Context, genLog *domain.GenerationLog) error {
	if genLog == nil {
		return fmt.Errorf("cannot save nil generation log")
	}
	genLog.ID = util.NewULID()
	genLog.CreatedAt = time.Now()

	var quizID sql.NullString
	if genLog.QuizID != "" {
		quizID = sql.NullString{String: genLog.QuizID, Valid: true}
	}
	var errorMessage sql.NullString
	if genLog.ErrorMessage != "" {
		errorMessage = sql.NullString{String: genLog.ErrorMessage, Valid: true}
	}

	query := `INSERT INTO ai_generation_logs (
		id, creator_id, quiz_id, status, error_message, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6
	)`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query,
		genLog.ID,
		genLog.CreatorID,
		quizID,
		genLog.Status,
		errorMessage,
		genLog.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generation log: %w", err)
	}
	return nil
}
