package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quizoraa/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMemory(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewMemoryDatabaseAdapter(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"user_id", "topic", "last_prompt", "last_response", "last_used_at"}).
			AddRow("user-1", "golang", "quiz about goroutines", `{"title":"Goroutines"}`, now)

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_quiz_memory")).
			WithArgs("user-1").
			WillReturnRows(rows)

		memory, err := repo.GetMemory(context.Background(), "user-1")

		require.NoError(t, err)
		require.NotNil(t, memory)
		assert.Equal(t, "golang", memory.Topic)
		assert.Equal(t, "quiz about goroutines", memory.LastPrompt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row returns nil without error", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewMemoryDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_quiz_memory")).
			WithArgs("new-user").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		memory, err := repo.GetMemory(context.Background(), "new-user")

		assert.NoError(t, err)
		assert.Nil(t, memory)
	})
}

func TestUpsertMemory(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewMemoryDatabaseAdapter(db)

	memory := &domain.CreatorMemory{
		UserID:       "user-1",
		Topic:        "golang",
		LastPrompt:   "quiz about channels",
		LastResponse: `{"title":"Channels"}`,
	}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertMemory(context.Background(), memory)

	require.NoError(t, err)
	assert.False(t, memory.LastUsedAt.IsZero()) // defaulted when unset
	assert.NoError(t, mock.ExpectationsWereMet())
}
