package service

import (
	"context"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

type ChatInteractor interface {
	Connect(ctx context.Context, client *domain.Client)
	Join(ctx context.Context, client *domain.Client, rawName string) (*domain.JoinAck, error)
	Send(ctx context.Context, client *domain.Client, inbound *domain.InboundMessage) error
	Disconnect(client *domain.Client)
	Participants() []*domain.Participant
	History(ctx context.Context, limit int) ([]*domain.Message, error)
}
