package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"quizoraa/internal/domain"
	"quizoraa/internal/logger"

	"go.uber.org/zap"
)

const (
	// memoryRecallThreshold: prior-session context is quoted into the prompt
	// when the stored topic is this similar to the current category.
	memoryRecallThreshold = 0.8
	// noFeedbackThreshold: below this similarity a fixed notice is appended.
	noFeedbackThreshold = 0.2
	// topSimilarQuizzes bounds the neighbor lookup for feedback summarization.
	topSimilarQuizzes = 3
)

// ContextEnricher builds the optional enrichment block appended to the
// generation prompt: a feedback summary for similar topics and, when the
// creator recently generated on a near-identical topic, a recall of that
// session. Every internal failure degrades to "no enrichment"; Enrich never
// returns an error.
type ContextEnricher struct {
	embeddingService domain.EmbeddingService
	embeddingRepo    domain.EmbeddingRepository
	feedbackRepo     domain.FeedbackRepository
	memoryRepo       domain.MemoryRepository
	generator        domain.TextGenerator
}

// NewContextEnricher creates a new ContextEnricher.
func NewContextEnricher(
	embeddingService domain.EmbeddingService,
	embeddingRepo domain.EmbeddingRepository,
	feedbackRepo domain.FeedbackRepository,
	memoryRepo domain.MemoryRepository,
	generator domain.TextGenerator,
) *ContextEnricher {
	return &ContextEnricher{
		embeddingService: embeddingService,
		embeddingRepo:    embeddingRepo,
		feedbackRepo:     feedbackRepo,
		memoryRepo:       memoryRepo,
		generator:        generator,
	}
}

// Enrich produces the enrichment text block for the given creator and
// category. An empty return means no enrichment.
func (e *ContextEnricher) Enrich(ctx context.Context, creatorID, category string, includeMemory bool) string {
	l := logger.Get()

	var enrichment strings.Builder

	if includeMemory && category != "" {
		summary, err := e.feedbackSummaryByTopic(ctx, category)
		if err != nil {
			l.Warn("Failed to fetch feedback summary", zap.Error(err), zap.String("category", category))
		} else {
			enrichment.WriteString(summary)
		}
	}

	memory, err := e.memoryRepo.GetMemory(ctx, creatorID)
	if err != nil {
		l.Warn("Failed to fetch creator memory", zap.Error(err), zap.String("creator_id", creatorID))
		memory = nil
	}

	similarity := 0.0
	if memory != nil && memory.Topic != "" && category != "" {
		similarity = e.topicSimilarity(ctx, memory.Topic, category)
	}

	if similarity > memoryRecallThreshold && memory != nil {
		fmt.Fprintf(&enrichment, "\n\nPreviously, asked about a similar topic: %s\n", memory.Topic)
		if memory.LastPrompt != "" {
			fmt.Fprintf(&enrichment, "Previously the user asked:\n%q\n", memory.LastPrompt)
		}
		if memory.LastResponse != "" {
			fmt.Fprintf(&enrichment, "Your last response was:\n%s\n", memory.LastResponse)
		}
	} else if similarity < noFeedbackThreshold {
		enrichment.WriteString("No feedback available for this topic.")
	}
	// Similarities in [noFeedbackThreshold, memoryRecallThreshold] add nothing.

	return enrichment.String()
}

// topicSimilarity embeds both topics and returns their cosine similarity,
// degrading to 0 on any failure.
func (e *ContextEnricher) topicSimilarity(ctx context.Context, prevTopic, currentTopic string) float64 {
	l := logger.Get()

	prevVec, err := e.embeddingService.Generate(ctx, prevTopic)
	if err != nil {
		l.Warn("Failed to embed prior topic", zap.Error(err), zap.String("topic", prevTopic))
		return 0
	}
	currentVec, err := e.embeddingService.Generate(ctx, currentTopic)
	if err != nil {
		l.Warn("Failed to embed current topic", zap.Error(err), zap.String("topic", currentTopic))
		return 0
	}

	similarity, err := CosineSimilarity(prevVec, currentVec)
	if err != nil {
		l.Warn("Failed to compute topic similarity", zap.Error(err))
		return 0
	}
	return similarity
}

// feedbackSummaryByTopic ranks stored topic embeddings against the given
// topic, collects feedback from the three nearest quizzes and summarizes it
// with a secondary model call.
func (e *ContextEnricher) feedbackSummaryByTopic(ctx context.Context, topic string) (string, error) {
	topicVec, err := e.embeddingService.Generate(ctx, topic)
	if err != nil {
		return "", fmt.Errorf("failed to embed topic: %w", err)
	}

	stored, err := e.embeddingRepo.GetAllTopicEmbeddings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list topic embeddings: %w", err)
	}
	if len(stored) == 0 {
		return "No relevant feedback found.", nil
	}

	type ranked struct {
		quizID     string
		similarity float64
	}
	rankedQuizzes := make([]ranked, 0, len(stored))
	for _, emb := range stored {
		sim, simErr := CosineSimilarity(topicVec, emb.Embedding)
		if simErr != nil {
			continue
		}
		rankedQuizzes = append(rankedQuizzes, ranked{quizID: emb.QuizID, similarity: sim})
	}
	sort.Slice(rankedQuizzes, func(i, j int) bool {
		return rankedQuizzes[i].similarity > rankedQuizzes[j].similarity
	})
	if len(rankedQuizzes) > topSimilarQuizzes {
		rankedQuizzes = rankedQuizzes[:topSimilarQuizzes]
	}

	quizIDs := make([]string, 0, len(rankedQuizzes))
	for _, r := range rankedQuizzes {
		quizIDs = append(quizIDs, r.quizID)
	}

	feedbacks, err := e.feedbackRepo.GetFeedbackByQuizIDs(ctx, quizIDs)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feedback: %w", err)
	}
	if len(feedbacks) == 0 {
		return "No relevant feedback found.", nil
	}

	texts := make([]string, 0, len(feedbacks))
	ratingSum := 0
	for _, f := range feedbacks {
		if f.Text != "" {
			texts = append(texts, f.Text)
		}
		ratingSum += f.Rating
	}

	summary, err := e.summarizeFeedback(ctx, texts)
	if err != nil {
		return "", err
	}

	avgRating := float64(ratingSum) / float64(len(feedbacks))
	return fmt.Sprintf("Feedback Summary (Avg Rating: %.1f): %s", avgRating, summary), nil
}

// summarizeFeedback condenses raw feedback texts into actionable insights via
// a secondary generation call.
func (e *ContextEnricher) summarizeFeedback(ctx context.Context, feedbacks []string) (string, error) {
	if len(feedbacks) == 0 {
		return "No feedback available.", nil
	}

	prompt := fmt.Sprintf(`You are summarizing user feedback for a quiz. Identify common suggestions or complaints.
Only return helpful insights. Ignore toxic, sarcastic, or meaningless feedback.
Feedback:
%s
`, strings.Join(feedbacks, "\n"))

	summary, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to summarize feedback: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
