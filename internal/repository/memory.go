package repository

import (
	"context"
	"sync"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

// InMemoryTranscriptRepository keeps the transcript in process memory. Used
// when no database DSN is configured and throughout the tests.
type InMemoryTranscriptRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewInMemoryTranscriptRepository() *InMemoryTranscriptRepository {
	return &InMemoryTranscriptRepository{}
}

func (r *InMemoryTranscriptRepository) Append(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message)
	return nil
}

func (r *InMemoryTranscriptRepository) Recent(ctx context.Context, limit int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	start := len(r.messages) - limit
	if start < 0 {
		start = 0
	}

	result := make([]*domain.Message, len(r.messages)-start)
	copy(result, r.messages[start:])
	return result, nil
}
