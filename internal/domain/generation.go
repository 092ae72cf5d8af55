package domain

import (
	"context"
	"errors"
	"time"
)

// TextGenerator is a text-in/text-out generative model call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbeddingService defines the interface for generating text embeddings.
type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// TopicEmbedding associates a fixed-length vector with a quiz's topic string.
// Rows are append-only; they are only read back for similarity ranking.
type TopicEmbedding struct {
	ID        string
	QuizID    string
	Topic     string
	Embedding []float32
	CreatedAt time.Time
}

// EmbeddingRepository stores and lists topic embeddings.
type EmbeddingRepository interface {
	SaveTopicEmbedding(ctx context.Context, embedding *TopicEmbedding) error
	GetAllTopicEmbeddings(ctx context.Context) ([]*TopicEmbedding, error)
}

// Feedback is a free-text rating left on a quiz. The pipeline only reads it.
type Feedback struct {
	QuizID string
	Rating int
	Text   string
}

// FeedbackRepository reads quiz feedback for enrichment.
type FeedbackRepository interface {
	GetFeedbackByQuizIDs(ctx context.Context, quizIDs []string) ([]*Feedback, error)
}

// Generation log statuses.
const (
	GenerationStatusSucceeded = "succeeded"
	GenerationStatusFailed    = "failed"
)

// GenerationLog records one generation invocation for auditing.
type GenerationLog struct {
	ID           string
	CreatorID    string
	QuizID       string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// GenerationLogRepository appends generation invocation logs.
type GenerationLogRepository interface {
	SaveLog(ctx context.Context, log *GenerationLog) error
}

// ErrCacheMiss is returned by Cache.Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is a generic string cache with TTL support.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
