package repository

import (
	"context"
	"fmt"
	"time"

	"quizoraa/internal/domain"
	"quizoraa/internal/repository/models"
	"quizoraa/internal/util"

	"github.com/jmoiron/sqlx"
)

// EmbeddingDatabaseAdapter implements domain.EmbeddingRepository using sqlx.DB
type EmbeddingDatabaseAdapter struct {
	db *sqlx.DB
}

// NewEmbeddingDatabaseAdapter creates a new instance of EmbeddingDatabaseAdapter
func NewEmbeddingDatabaseAdapter(db *sqlx.DB) domain.EmbeddingRepository {
	return &EmbeddingDatabaseAdapter{db: db}
}

// SaveTopicEmbedding implements domain.EmbeddingRepository
func (a *EmbeddingDatabaseAdapter) SaveTopicEmbedding(ctx context.Context, embedding *domain.TopicEmbedding) error {
	if embedding == nil {
		return fmt.Errorf("cannot save nil embedding")
	}
	model := &models.QuizEmbedding{
		ID:        util.NewULID(),
		QuizID:    embedding.QuizID,
		Topic:     embedding.Topic,
		Embedding: models.Float32Slice(embedding.Embedding),
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO quiz_embeddings (
		id, quiz_id, topic, embedding, created_at
	) VALUES (
		$1, $2, $3, $4, $5
	)`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query,
		model.ID,
		model.QuizID,
		model.Topic,
		model.Embedding,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save topic embedding: %w", err)
	}

	embedding.ID = model.ID
	embedding.CreatedAt = model.CreatedAt
	return nil
}

// GetAllTopicEmbeddings implements domain.EmbeddingRepository
func (a *EmbeddingDatabaseAdapter) GetAllTopicEmbeddings(ctx context.Context) ([]*domain.TopicEmbedding, error) {
	var modelEmbeddings []models.QuizEmbedding
	query := `SELECT id, quiz_id, topic, embedding, created_at
	FROM quiz_embeddings
	WHERE embedding IS NOT NULL`

	executor := GetExecutor(ctx, a.db)
	err := executor.SelectContext(ctx, &modelEmbeddings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic embeddings: %w", err)
	}

	embeddings := make([]*domain.TopicEmbedding, 0, len(modelEmbeddings))
	for i := range modelEmbeddings {
		m := &modelEmbeddings[i]
		embeddings = append(embeddings, &domain.TopicEmbedding{
			ID:        m.ID,
			QuizID:    m.QuizID,
			Topic:     m.Topic,
			Embedding: []float32(m.Embedding),
			CreatedAt: m.CreatedAt,
		})
	}
	return embeddings, nil
}
