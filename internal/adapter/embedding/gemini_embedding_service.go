package embedding

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"time"

	"quizoraa/internal/cache"
	"quizoraa/internal/config"
	"quizoraa/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	"golang.org/x/sync/singleflight"
)

// GeminiEmbeddingService implements the domain.EmbeddingService interface
// using a Gemini embedding model behind langchaingo's generic embedder.
// Vectors are cached in Redis (gob-encoded) and concurrent requests for the
// same text are collapsed with singleflight.
type GeminiEmbeddingService struct {
	embedder embeddings.Embedder
	cache    domain.Cache
	config   *config.Config
	sfGroup  singleflight.Group
}

// NewGeminiEmbeddingService creates a new GeminiEmbeddingService.
func NewGeminiEmbeddingService(client embeddings.EmbedderClient, cacheClient domain.Cache, cfg *config.Config) (*GeminiEmbeddingService, error) {
	if client == nil {
		return nil, fmt.Errorf("embedding client cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config instance cannot be nil for GeminiEmbeddingService")
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder from Gemini client: %w", err)
	}

	return &GeminiEmbeddingService{
		embedder: embedder,
		cache:    cacheClient,
		config:   cfg,
	}, nil
}

// Generate creates an embedding for the given text.
func (s *GeminiEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}

	textHash := hashString(text)
	cacheKey := cache.GenerateCacheKey("embedding", "gemini", textHash)

	if s.cache != nil {
		cachedDataString, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var embedding []float32
			decoder := gob.NewDecoder(bytes.NewReader([]byte(cachedDataString)))
			if errDecode := decoder.Decode(&embedding); errDecode == nil {
				return embedding, nil
			}
			// Corrupt cache entry; fall through and regenerate
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		rawEmbedding, fetchErr := s.embedder.EmbedQuery(ctx, text)
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to generate embedding using Gemini: %w", fetchErr)
		}
		if len(rawEmbedding) == 0 {
			return nil, fmt.Errorf("received empty embedding from Gemini without error")
		}

		if s.cache != nil {
			var buffer bytes.Buffer
			encoder := gob.NewEncoder(&buffer)
			if errEncode := encoder.Encode(rawEmbedding); errEncode != nil {
				return rawEmbedding, nil // Return data even if caching fails
			}

			defaultEmbeddingTTL := 168 * time.Hour // 7 days
			cacheTTL := defaultEmbeddingTTL
			if s.config.CacheTTLs.Embedding != "" {
				cacheTTL = s.config.ParseTTLStringOrDefault(s.config.CacheTTLs.Embedding, defaultEmbeddingTTL)
			}

			// Cache write failures are tolerated; the vector is still returned
			_ = s.cache.Set(ctx, cacheKey, buffer.String(), cacheTTL)
		}
		return rawEmbedding, nil
	})

	if err != nil {
		return nil, err
	}

	if embedding, ok := res.([]float32); ok {
		return embedding, nil
	}
	return nil, fmt.Errorf("unexpected type from singleflight.Do for gemini embedding: %T", res)
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
