package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
	"github.com/stretchr/testify/require"
)

func Test_Recent_Returns_Bounded_Oldest_First(t *testing.T) {
	req := require.New(t)
	repo := NewInMemoryTranscriptRepository()
	ctx := context.Background()

	const total = 150
	for i := 0; i < total; i++ {
		msg := domain.NewMessage("Alice", fmt.Sprintf("message %d", i), "", domain.FileTypeNone)
		req.NoError(repo.Append(ctx, msg))
	}

	messages, err := repo.Recent(ctx, 100)
	req.NoError(err)
	req.Len(messages, 100)
	req.Equal("message 50", messages[0].Body)
	req.Equal("message 149", messages[99].Body)
}

func Test_Recent_With_Short_Transcript(t *testing.T) {
	req := require.New(t)
	repo := NewInMemoryTranscriptRepository()
	ctx := context.Background()

	messages, err := repo.Recent(ctx, 100)
	req.NoError(err)
	req.Empty(messages)

	req.NoError(repo.Append(ctx, domain.NewMessage("Alice", "hi", "", domain.FileTypeNone)))

	messages, err = repo.Recent(ctx, 100)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("hi", messages[0].Body)
}

func Test_Recent_Rejects_Bad_Limit(t *testing.T) {
	req := require.New(t)
	repo := NewInMemoryTranscriptRepository()

	_, err := repo.Recent(context.Background(), 0)
	req.ErrorIs(err, ErrInvalidLimit)
}
