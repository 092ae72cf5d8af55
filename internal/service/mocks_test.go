package service

import (
	"context"

	"quizoraa/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.GeneratedQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) SaveQuestions(ctx context.Context, quizID string, questions []*domain.Question) error {
	args := m.Called(ctx, quizID, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.GeneratedQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedQuiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// --- MockMemoryRepository ---
type MockMemoryRepository struct {
	mock.Mock
}

func (m *MockMemoryRepository) GetMemory(ctx context.Context, userID string) (*domain.CreatorMemory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorMemory), args.Error(1)
}

func (m *MockMemoryRepository) UpsertMemory(ctx context.Context, memory *domain.CreatorMemory) error {
	args := m.Called(ctx, memory)
	return args.Error(0)
}

// --- MockEmbeddingRepository ---
type MockEmbeddingRepository struct {
	mock.Mock
}

func (m *MockEmbeddingRepository) SaveTopicEmbedding(ctx context.Context, embedding *domain.TopicEmbedding) error {
	args := m.Called(ctx, embedding)
	return args.Error(0)
}

func (m *MockEmbeddingRepository) GetAllTopicEmbeddings(ctx context.Context) ([]*domain.TopicEmbedding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TopicEmbedding), args.Error(1)
}

// --- MockFeedbackRepository ---
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) GetFeedbackByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Feedback, error) {
	args := m.Called(ctx, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Feedback), args.Error(1)
}

// --- MockGenerationLogRepository ---
type MockGenerationLogRepository struct {
	mock.Mock
}

func (m *MockGenerationLogRepository) SaveLog(ctx context.Context, log *domain.GenerationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockEmbeddingService ---
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// --- MockTransactionManager ---
// Runs the wrapped function directly against the caller's context.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

var _ domain.QuizRepository = (*MockQuizRepository)(nil)
var _ domain.MemoryRepository = (*MockMemoryRepository)(nil)
var _ domain.EmbeddingRepository = (*MockEmbeddingRepository)(nil)
var _ domain.FeedbackRepository = (*MockFeedbackRepository)(nil)
var _ domain.GenerationLogRepository = (*MockGenerationLogRepository)(nil)
var _ domain.TextGenerator = (*MockTextGenerator)(nil)
var _ domain.EmbeddingService = (*MockEmbeddingService)(nil)
var _ domain.TransactionManager = (*MockTransactionManager)(nil)
