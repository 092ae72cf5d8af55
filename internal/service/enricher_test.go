package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quizoraa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newEnricherUnderTest() (*ContextEnricher, *MockEmbeddingService, *MockEmbeddingRepository, *MockFeedbackRepository, *MockMemoryRepository, *MockTextGenerator) {
	embeddingSvc := new(MockEmbeddingService)
	embeddingRepo := new(MockEmbeddingRepository)
	feedbackRepo := new(MockFeedbackRepository)
	memoryRepo := new(MockMemoryRepository)
	generator := new(MockTextGenerator)
	enricher := NewContextEnricher(embeddingSvc, embeddingRepo, feedbackRepo, memoryRepo, generator)
	return enricher, embeddingSvc, embeddingRepo, feedbackRepo, memoryRepo, generator
}

func TestEnrich_RecallsMemoryOnHighSimilarity(t *testing.T) {
	enricher, embeddingSvc, _, _, memoryRepo, _ := newEnricherUnderTest()

	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(&domain.CreatorMemory{
		UserID:       "user-1",
		Topic:        "golang concurrency",
		LastPrompt:   "quiz about goroutines",
		LastResponse: `{"title":"Goroutines"}`,
	}, nil)
	// Identical vectors give similarity 1.0.
	embeddingSvc.On("Generate", mock.Anything, "golang concurrency").Return([]float32{0.6, 0.8}, nil)
	embeddingSvc.On("Generate", mock.Anything, "golang channels").Return([]float32{0.6, 0.8}, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang channels", false)

	assert.Contains(t, enrichment, "Previously, asked about a similar topic: golang concurrency")
	assert.Contains(t, enrichment, "quiz about goroutines")
	assert.Contains(t, enrichment, `{"title":"Goroutines"}`)
	assert.NotContains(t, enrichment, "No feedback available for this topic.")
}

func TestEnrich_LowSimilarityAppendsNotice(t *testing.T) {
	enricher, embeddingSvc, _, _, memoryRepo, _ := newEnricherUnderTest()

	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(&domain.CreatorMemory{
		UserID: "user-1",
		Topic:  "baking",
	}, nil)
	// Orthogonal vectors give similarity 0.
	embeddingSvc.On("Generate", mock.Anything, "baking").Return([]float32{1, 0}, nil)
	embeddingSvc.On("Generate", mock.Anything, "golang").Return([]float32{0, 1}, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang", false)

	assert.Equal(t, "No feedback available for this topic.", enrichment)
}

func TestEnrich_MidSimilarityAddsNothing(t *testing.T) {
	enricher, embeddingSvc, _, _, memoryRepo, _ := newEnricherUnderTest()

	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(&domain.CreatorMemory{
		UserID: "user-1",
		Topic:  "web development",
	}, nil)
	// cos([1,0],[1,1]) is about 0.707, inside the dead zone.
	embeddingSvc.On("Generate", mock.Anything, "web development").Return([]float32{1, 0}, nil)
	embeddingSvc.On("Generate", mock.Anything, "golang web servers").Return([]float32{1, 1}, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang web servers", false)

	assert.Empty(t, enrichment)
}

func TestEnrich_NoMemoryAppendsNotice(t *testing.T) {
	enricher, _, _, _, memoryRepo, _ := newEnricherUnderTest()

	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(nil, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang", false)

	assert.Equal(t, "No feedback available for this topic.", enrichment)
}

func TestEnrich_MemoryLookupFailureDegrades(t *testing.T) {
	enricher, _, _, _, memoryRepo, _ := newEnricherUnderTest()

	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(nil, errors.New("db down"))

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang", false)

	// Lookup failures degrade to the no-memory path instead of raising.
	assert.Equal(t, "No feedback available for this topic.", enrichment)
}

func TestEnrich_FeedbackSummaryUsesTopThreeNeighbors(t *testing.T) {
	enricher, embeddingSvc, embeddingRepo, feedbackRepo, memoryRepo, generator := newEnricherUnderTest()

	embeddingSvc.On("Generate", mock.Anything, "golang").Return([]float32{1, 0}, nil)
	embeddingRepo.On("GetAllTopicEmbeddings", mock.Anything).Return([]*domain.TopicEmbedding{
		{QuizID: "near-1", Topic: "go basics", Embedding: []float32{1, 0.01}},
		{QuizID: "far", Topic: "baking", Embedding: []float32{0, 1}},
		{QuizID: "near-2", Topic: "go tooling", Embedding: []float32{1, 0.05}},
		{QuizID: "near-3", Topic: "go testing", Embedding: []float32{1, 0.1}},
	}, nil)
	feedbackRepo.On("GetFeedbackByQuizIDs", mock.Anything, []string{"near-1", "near-2", "near-3"}).Return([]*domain.Feedback{
		{QuizID: "near-1", Rating: 5, Text: "great questions"},
		{QuizID: "near-2", Rating: 4, Text: "too easy"},
	}, nil)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "great questions") && strings.Contains(prompt, "too easy")
	})).Return("Users want harder questions.", nil)
	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(nil, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang", true)

	assert.Contains(t, enrichment, "Feedback Summary (Avg Rating: 4.5): Users want harder questions.")
	feedbackRepo.AssertExpectations(t)
}

func TestEnrich_NoStoredEmbeddings(t *testing.T) {
	enricher, embeddingSvc, embeddingRepo, _, memoryRepo, _ := newEnricherUnderTest()

	embeddingSvc.On("Generate", mock.Anything, "golang").Return([]float32{1, 0}, nil)
	embeddingRepo.On("GetAllTopicEmbeddings", mock.Anything).Return([]*domain.TopicEmbedding{}, nil)
	memoryRepo.On("GetMemory", mock.Anything, "user-1").Return(nil, nil)

	enrichment := enricher.Enrich(context.Background(), "user-1", "golang", true)

	assert.Contains(t, enrichment, "No relevant feedback found.")
}
