package service

import (
	"context"
	"encoding/json"
	"strings"

	"quizoraa/internal/domain"
	"quizoraa/internal/dto"
	"quizoraa/internal/logger"

	"go.uber.org/zap"
)

const quizTypeAIGenerated = "ai_generated"

// QuizGenerationService runs the AI quiz-generation pipeline and serves its
// persisted results.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	GetQuizWithQuestions(ctx context.Context, quizID string) (*dto.QuizDetailResponse, error)
}

// quizGenerationService implements QuizGenerationService
type quizGenerationService struct {
	quizRepo      domain.QuizRepository
	memoryRepo    domain.MemoryRepository
	embeddingRepo domain.EmbeddingRepository
	logRepo       domain.GenerationLogRepository
	generator     domain.TextGenerator
	embeddingSvc  domain.EmbeddingService
	enricher      *ContextEnricher
	txManager     domain.TransactionManager
}

// NewQuizGenerationService creates a new instance of quizGenerationService
func NewQuizGenerationService(
	quizRepo domain.QuizRepository,
	memoryRepo domain.MemoryRepository,
	embeddingRepo domain.EmbeddingRepository,
	logRepo domain.GenerationLogRepository,
	generator domain.TextGenerator,
	embeddingSvc domain.EmbeddingService,
	enricher *ContextEnricher,
	txManager domain.TransactionManager,
) QuizGenerationService {
	return &quizGenerationService{
		quizRepo:      quizRepo,
		memoryRepo:    memoryRepo,
		embeddingRepo: embeddingRepo,
		logRepo:       logRepo,
		generator:     generator,
		embeddingSvc:  embeddingSvc,
		enricher:      enricher,
		txManager:     txManager,
	}
}

// GenerateQuiz implements QuizGenerationService. The pipeline is strictly
// sequential: resolve content, enrich, build the prompt, call the model once,
// repair and parse its output, then persist. Required writes (header, question
// batch) are fatal on failure; auxiliary writes (topic embedding, creator
// memory, generation log) are logged and swallowed.
func (s *quizGenerationService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	l := logger.Get()

	applyRequestDefaults(req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Stage 1: content resolution. Fails before any external call is made.
	content := strings.TrimSpace(req.Prompt)
	if content == "" {
		return nil, domain.NewInvalidInputError("no content provided for quiz generation")
	}

	// Stage 2: context enrichment (never fails).
	enrichment := s.enricher.Enrich(ctx, req.CreatorID, req.Category, req.IncludeMemory)

	// Stage 3: prompt assembly.
	prompt := BuildGenerationPrompt(content, enrichment, req)

	// Stage 4: one generation call, then repair. No retry on failure.
	rawResponse, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		genErr := domain.NewLLMServiceError(err)
		s.recordLog(ctx, req.CreatorID, "", domain.GenerationStatusFailed, genErr.Error())
		return nil, genErr
	}

	parsed, err := NormalizeModelOutput(rawResponse)
	if err != nil {
		s.recordLog(ctx, req.CreatorID, "", domain.GenerationStatusFailed, err.Error())
		return nil, err
	}

	// Stage 5: persistence. Header first; questions never exist without one.
	quiz := buildQuizHeader(req, parsed)
	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		persistErr := domain.NewPersistenceError("Failed to save generated quiz", err)
		s.recordLog(ctx, req.CreatorID, "", domain.GenerationStatusFailed, persistErr.Error())
		return nil, persistErr
	}

	questions := buildQuestions(quiz.ID, req, parsed)
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.SaveQuestions(txCtx, quiz.ID, questions)
	})
	if err != nil {
		// The header row is intentionally left in place; the question batch
		// itself is all-or-nothing.
		persistErr := domain.NewPersistenceError("Failed to save generated questions", err)
		s.recordLog(ctx, req.CreatorID, quiz.ID, domain.GenerationStatusFailed, persistErr.Error())
		return nil, persistErr
	}

	// Auxiliary writes: log-and-continue, the primary result is already safe.
	if req.Category != "" {
		if embErr := s.storeTopicEmbedding(ctx, quiz.ID, req.Category); embErr != nil {
			l.Warn("Failed to store topic embedding",
				zap.Error(embErr),
				zap.String("quiz_id", quiz.ID),
				zap.String("category", req.Category))
		}
	}

	if req.IncludeMemory {
		if memErr := s.saveMemory(ctx, req, prompt, parsed); memErr != nil {
			l.Warn("Failed to save creator memory",
				zap.Error(memErr),
				zap.String("creator_id", req.CreatorID))
		}
	}

	s.recordLog(ctx, req.CreatorID, quiz.ID, domain.GenerationStatusSucceeded, "")

	return &dto.GenerateQuizResponse{
		QuizID:    quiz.ID,
		Quiz:      toQuizResponse(quiz),
		Questions: toQuestionResponses(questions),
	}, nil
}

// GetQuizWithQuestions implements QuizGenerationService
func (s *quizGenerationService) GetQuizWithQuestions(ctx context.Context, quizID string) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz questions", err)
	}

	return &dto.QuizDetailResponse{
		Quiz:      toQuizResponse(quiz),
		Questions: toQuestionResponses(questions),
	}, nil
}

func applyRequestDefaults(req *dto.GenerateQuizRequest) {
	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMedium
	}
	if req.TotalQuestions == 0 {
		req.TotalQuestions = 5
	}
	if len(req.QuestionTypes) == 0 {
		req.QuestionTypes = []string{domain.QuestionTypeMCQ}
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.Visibility == "" {
		req.Visibility = domain.VisibilityPublic
	}
}

func validateRequest(req *dto.GenerateQuizRequest) error {
	if strings.TrimSpace(req.Category) == "" {
		return domain.NewInvalidInputError("category is required")
	}
	if req.CreatorID == "" {
		return domain.NewInvalidInputError("creator_id is required")
	}
	if req.TotalQuestions < 1 {
		return domain.NewInvalidInputError("total_questions must be positive")
	}
	switch req.Difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		return domain.NewInvalidInputError("difficulty must be one of: easy, medium, hard")
	}
	for _, qt := range req.QuestionTypes {
		switch qt {
		case domain.QuestionTypeMCQ, domain.QuestionTypeTrueFalse, domain.QuestionTypeOpenEnded:
		default:
			return domain.NewInvalidInputError("unsupported question type: " + qt)
		}
	}
	return nil
}

func buildQuizHeader(req *dto.GenerateQuizRequest, parsed *ParsedQuiz) *domain.GeneratedQuiz {
	title := req.Title
	if title == "" {
		title = parsed.Title
	}

	return &domain.GeneratedQuiz{
		Title:       title,
		Description: req.Description,
		CreatorID:   req.CreatorID,
		Visibility:  req.Visibility,
		Type:        quizTypeAIGenerated,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Settings: domain.QuizSettings{
			QuestionTypes:       req.QuestionTypes,
			IncludeExplanations: req.IncludeExplanations,
			IncludeMemory:       req.IncludeMemory,
			CustomInstructions:  req.CustomInstructions,
			Language:            req.Language,
		},
		Status: domain.StatusDraft,
		// The model may under- or over-generate; the actual array length wins.
		TotalQuestions: len(parsed.Questions),
		EstimatedTime:  req.EstimatedTime,
	}
}

func buildQuestions(quizID string, req *dto.GenerateQuizRequest, parsed *ParsedQuiz) []*domain.Question {
	questions := make([]*domain.Question, 0, len(parsed.Questions))
	for i, pq := range parsed.Questions {
		points := pq.Points
		if points == 0 {
			points = 1
		}
		difficulty := pq.Difficulty
		if difficulty == "" {
			difficulty = req.Difficulty
		}
		questions = append(questions, &domain.Question{
			QuizID:        quizID,
			Type:          pq.Type,
			Text:          pq.Question,
			Options:       pq.Options,
			CorrectAnswer: pq.CorrectAnswer,
			Explanation:   pq.Explanation,
			MediaURL:      pq.MediaURL,
			Hint:          pq.Hint,
			Points:        points,
			Difficulty:    difficulty,
			OrderIndex:    i,
		})
	}
	return questions
}

// storeTopicEmbedding embeds the category and appends a topic-embedding row.
func (s *quizGenerationService) storeTopicEmbedding(ctx context.Context, quizID, category string) error {
	vector, err := s.embeddingSvc.Generate(ctx, category)
	if err != nil {
		return err
	}
	return s.embeddingRepo.SaveTopicEmbedding(ctx, &domain.TopicEmbedding{
		QuizID:    quizID,
		Topic:     category,
		Embedding: vector,
	})
}

// saveMemory upserts the creator's memory row with this run's topic, prompt
// and serialized response.
func (s *quizGenerationService) saveMemory(ctx context.Context, req *dto.GenerateQuizRequest, prompt string, parsed *ParsedQuiz) error {
	serialized, err := json.Marshal(parsed)
	if err != nil {
		return err
	}
	return s.memoryRepo.UpsertMemory(ctx, &domain.CreatorMemory{
		UserID:       req.CreatorID,
		Topic:        req.Category,
		LastPrompt:   prompt,
		LastResponse: string(serialized),
	})
}

// recordLog appends a generation log row; failures are logged and swallowed.
func (s *quizGenerationService) recordLog(ctx context.Context, creatorID, quizID, status, errorMessage string) {
	err := s.logRepo.SaveLog(ctx, &domain.GenerationLog{
		CreatorID:    creatorID,
		QuizID:       quizID,
		Status:       status,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		logger.Get().Warn("Failed to save generation log",
			zap.Error(err),
			zap.String("creator_id", creatorID),
			zap.String("status", status))
	}
}

func toQuizResponse(quiz *domain.GeneratedQuiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Description:    quiz.Description,
		CreatorID:      quiz.CreatorID,
		Visibility:     quiz.Visibility,
		Category:       quiz.Category,
		Difficulty:     quiz.Difficulty,
		Status:         quiz.Status,
		TotalQuestions: quiz.TotalQuestions,
		EstimatedTime:  quiz.EstimatedTime,
		CreatedAt:      quiz.CreatedAt,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.QuestionResponse{
			ID:            q.ID,
			QuizID:        q.QuizID,
			Type:          q.Type,
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			MediaURL:      q.MediaURL,
			Hint:          q.Hint,
			Points:        q.Points,
			Difficulty:    q.Difficulty,
			OrderIndex:    q.OrderIndex,
		})
	}
	return responses
}
