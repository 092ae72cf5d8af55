package domain

import (
	"context"
	"time"
)

// CreatorMemory is the per-creator record of the last generation. At most one
// row exists per creator; it is written via upsert (last-writer-wins) and is
// never deleted by the generation pipeline.
type CreatorMemory struct {
	UserID       string
	Topic        string
	LastPrompt   string
	LastResponse string
	LastUsedAt   time.Time
}

// MemoryRepository stores per-creator generation memory.
type MemoryRepository interface {
	// GetMemory returns the creator's memory row, or (nil, nil) when absent.
	GetMemory(ctx context.Context, userID string) (*CreatorMemory, error)
	UpsertMemory(ctx context.Context, memory *CreatorMemory) error
}
