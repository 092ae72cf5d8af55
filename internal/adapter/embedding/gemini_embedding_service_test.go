package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"testing"
	"time"

	"quizoraa/internal/config"
	"quizoraa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeEmbedderClient implements embeddings.EmbedderClient.
type fakeEmbedderClient struct {
	vectors [][]float32
	err     error
	calls   int
}

func (f *fakeEmbedderClient) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

// mockCache implements domain.Cache via testify.
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func gobEncodeVector(t *testing.T, vec []float32) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(vec))
	return buf.String()
}

func TestGeminiEmbeddingService_Generate(t *testing.T) {
	cfg := &config.Config{}

	t.Run("cache miss fetches and stores the vector", func(t *testing.T) {
		client := &fakeEmbedderClient{vectors: [][]float32{{0.1, 0.2, 0.3}}}
		cache := new(mockCache)
		cache.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, 168*time.Hour).Return(nil)

		svc, err := NewGeminiEmbeddingService(client, cache, cfg)
		require.NoError(t, err)

		vec, err := svc.Generate(context.Background(), "golang")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
		assert.Equal(t, 1, client.calls)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the client", func(t *testing.T) {
		client := &fakeEmbedderClient{vectors: [][]float32{{9, 9}}}
		cache := new(mockCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(gobEncodeVector(t, []float32{0.4, 0.5}), nil)

		svc, err := NewGeminiEmbeddingService(client, cache, cfg)
		require.NoError(t, err)

		vec, err := svc.Generate(context.Background(), "golang")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.4, 0.5}, vec)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("corrupt cache entry falls back to the client", func(t *testing.T) {
		client := &fakeEmbedderClient{vectors: [][]float32{{0.7}}}
		cache := new(mockCache)
		cache.On("Get", mock.Anything, mock.Anything).Return("not gob data", nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc, err := NewGeminiEmbeddingService(client, cache, cfg)
		require.NoError(t, err)

		vec, err := svc.Generate(context.Background(), "golang")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.7}, vec)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		client := &fakeEmbedderClient{vectors: [][]float32{{0.1}}}
		svc, err := NewGeminiEmbeddingService(client, nil, cfg)
		require.NoError(t, err)

		_, err = svc.Generate(context.Background(), "")

		assert.Error(t, err)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("client failure propagates", func(t *testing.T) {
		client := &fakeEmbedderClient{err: errors.New("quota exceeded")}
		svc, err := NewGeminiEmbeddingService(client, nil, cfg)
		require.NoError(t, err)

		_, err = svc.Generate(context.Background(), "golang")

		assert.Error(t, err)
	})

	t.Run("nil client is rejected", func(t *testing.T) {
		_, err := NewGeminiEmbeddingService(nil, nil, cfg)
		assert.Error(t, err)
	})
}
