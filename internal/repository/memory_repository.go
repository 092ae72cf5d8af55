package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizoraa/internal/domain"
	"quizoraa/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// MemoryDatabaseAdapter implements domain.MemoryRepository using sqlx.DB
type MemoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewMemoryDatabaseAdapter creates a new instance of MemoryDatabaseAdapter
func NewMemoryDatabaseAdapter(db *sqlx.DB) domain.MemoryRepository {
	return &MemoryDatabaseAdapter{db: db}
}

// GetMemory implements domain.MemoryRepository. Returns (nil, nil) when the
// creator has no memory row yet.
func (a *MemoryDatabaseAdapter) GetMemory(ctx context.Context, userID string) (*domain.CreatorMemory, error) {
	var model models.UserQuizMemory
	query := `SELECT user_id, topic, last_prompt, last_response, last_used_at
	FROM user_quiz_memory
	WHERE user_id = $1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get memory for user %s: %w", userID, err)
	}

	return &domain.CreatorMemory{
		UserID:       model.UserID,
		Topic:        model.Topic,
		LastPrompt:   model.LastPrompt,
		LastResponse: model.LastResponse,
		LastUsedAt:   model.LastUsedAt,
	}, nil
}

// UpsertMemory implements domain.MemoryRepository. Last writer wins; there is
// no locking on the memory row.
func (a *MemoryDatabaseAdapter) UpsertMemory(ctx context.Context, memory *domain.CreatorMemory) error {
	if memory == nil {
		return fmt.Errorf("cannot upsert nil memory")
	}
	if memory.LastUsedAt.IsZero() {
		memory.LastUsedAt = time.Now()
	}

	query := `INSERT INTO user_quiz_memory (
		user_id, topic, last_prompt, last_response, last_used_at
	) VALUES (
		$1, $2, $3, $4, $5
	)
	ON CONFLICT (user_id) DO UPDATE SET
		topic = EXCLUDED.topic,
		last_prompt = EXCLUDED.last_prompt,
		last_response = EXCLUDED.last_response,
		last_used_at = EXCLUDED.last_used_at`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query,
		memory.UserID,
		memory.Topic,
		memory.LastPrompt,
		memory.LastResponse,
		memory.LastUsedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert memory for user %s: %w", memory.UserID, err)
	}
	return nil
}
