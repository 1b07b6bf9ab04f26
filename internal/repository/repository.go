package repository

import (
	"context"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

// TranscriptRepository is the durable append-only log of chat messages.
// Recent returns at most limit of the newest records, ordered oldest first.
type TranscriptRepository interface {
	Append(ctx context.Context, message *domain.Message) error
	Recent(ctx context.Context, limit int) ([]*domain.Message, error)
}
