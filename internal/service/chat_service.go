package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
	"github.com/immxrtalbeast/axenix_chat/internal/registry"
	"github.com/immxrtalbeast/axenix_chat/internal/repository"
	"github.com/immxrtalbeast/axenix_chat/lib/logger/sl"
)

var (
	ErrInvalidName = errors.New("display name is empty")
	ErrNotJoined   = errors.New("connection has not joined the chat")
)

const (
	maxMessageLength = 4000
	maxNameLength    = 255

	defaultHistoryLimit = 100
	persistTimeout      = 5 * time.Second
)

const (
	ackJoined        = "Joined the chat successfully."
	ackNameTaken     = "Username already taken. Please choose a different username."
	ackInvalidName   = "Username cannot be empty."
	ackAlreadyJoined = "You have already joined the chat."
	ackNameTooLong   = "Username is too long."
)

// ChatService runs the per-connection session protocol: it admits joins
// through the presence registry, fans messages out through the hub and hands
// records to the transcript store in the background. Broadcast never waits
// on storage.
type ChatService struct {
	registry     *registry.Registry
	hub          *Hub
	transcripts  repository.TranscriptRepository
	log          *slog.Logger
	historyLimit int
}

func NewChatService(reg *registry.Registry, hub *Hub, transcripts repository.TranscriptRepository, historyLimit int, log *slog.Logger) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &ChatService{
		registry:     reg,
		hub:          hub,
		transcripts:  transcripts,
		log:          log,
		historyLimit: historyLimit,
	}
}

// Connect attaches a new connection to the room and replays the recent
// transcript to it, once. Later calls for the same connection are no-ops. A
// failed transcript read degrades to an empty replay, never to a connection
// failure.
func (s *ChatService) Connect(ctx context.Context, client *domain.Client) {
	const op = "service.chat.connect"
	log := s.log.With(
		slog.String("op", op),
		slog.String("client_id", client.ID),
	)

	if !s.hub.Attach(client) {
		return
	}
	if !client.MarkReplayed() {
		return
	}

	messages, err := s.transcripts.Recent(ctx, s.historyLimit)
	if err != nil {
		log.Error("failed to load transcript", sl.Err(err))
		messages = nil
	}

	payload := make([]map[string]any, 0, len(messages))
	for _, message := range messages {
		payload = append(payload, messagePayload(message))
	}

	client.EnqueueEvent(domain.Event{
		Type:    domain.EventLoadMessages,
		Payload: map[string]any{"messages": payload},
	})

	log.Info("client connected", slog.Int("replayed", len(messages)))
}

// Join claims a display name for the connection. The ack always carries a
// user-facing message; the error classifies the failure for the caller and
// is nil on success.
func (s *ChatService) Join(ctx context.Context, client *domain.Client, rawName string) (*domain.JoinAck, error) {
	const op = "service.chat.join"
	log := s.log.With(
		slog.String("op", op),
		slog.String("client_id", client.ID),
	)

	name := domain.NormalizeName(rawName)
	if name == "" {
		return &domain.JoinAck{Success: false, Message: ackInvalidName}, ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &domain.JoinAck{Success: false, Message: ackNameTooLong}, ErrInvalidName
	}

	participant, err := s.registry.Admit(client.ID, name)
	if err != nil {
		if errors.Is(err, registry.ErrConnectionJoined) {
			return &domain.JoinAck{Success: false, Message: ackAlreadyJoined}, err
		}
		log.Info("join rejected", slog.String("name", name), sl.Err(err))
		return &domain.JoinAck{Success: false, Message: ackNameTaken}, err
	}

	s.hub.Announce(domain.Event{
		Type: domain.EventUserJoined,
		Payload: map[string]any{
			"username": participant.Name,
			"message":  participant.Name + " has joined the chat.",
		},
	})
	s.announceRoster()

	log.Info("participant joined", slog.String("name", participant.Name))
	return &domain.JoinAck{Success: true, Message: ackJoined}, nil
}

// Send broadcasts a message from a joined connection and persists it in the
// background. A message with neither text nor attachment is dropped silently.
func (s *ChatService) Send(ctx context.Context, client *domain.Client, inbound *domain.InboundMessage) error {
	const op = "service.chat.send"

	participant, ok := s.registry.Lookup(client.ID)
	if !ok {
		return ErrNotJoined
	}

	body := inbound.Message
	if strings.TrimSpace(body) == "" && inbound.File == "" {
		return nil
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		body = string([]rune(body)[:maxMessageLength])
	}

	message := domain.NewMessage(participant.Name, body, inbound.File, domain.ParseFileType(inbound.FileType))

	s.hub.Announce(domain.Event{
		Type:    domain.EventReceiveMessage,
		Payload: messagePayload(message),
	})

	go s.persist(message)

	s.log.Debug("message broadcast",
		slog.String("op", op),
		slog.String("username", participant.Name),
		slog.String("message_id", message.ID.String()),
	)
	return nil
}

// Disconnect tears the connection down. Idempotent; only a connection that
// was joined produces a leave announcement and roster refresh.
func (s *ChatService) Disconnect(client *domain.Client) {
	const op = "service.chat.disconnect"

	s.hub.Detach(client.ID)

	participant, removed := s.registry.Remove(client.ID)
	if !removed {
		return
	}

	s.hub.Announce(domain.Event{
		Type: domain.EventUserLeft,
		Payload: map[string]any{
			"username": participant.Name,
			"message":  participant.Name + " has left the chat.",
		},
	})
	s.announceRoster()

	s.log.Info("participant left",
		slog.String("op", op),
		slog.String("client_id", client.ID),
		slog.String("name", participant.Name),
	)
}

func (s *ChatService) Participants() []*domain.Participant {
	return s.registry.Snapshot()
}

func (s *ChatService) History(ctx context.Context, limit int) ([]*domain.Message, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.transcripts.Recent(ctx, limit)
}

// announceRoster pushes the full current_users snapshot to every connection.
// The source system always resends the whole roster instead of deltas; kept
// as-is.
func (s *ChatService) announceRoster() {
	participants := s.registry.Snapshot()

	users := make([]map[string]any, 0, len(participants))
	for _, p := range participants {
		users = append(users, map[string]any{
			"username":     p.Name,
			"connectionId": p.ConnectionID,
		})
	}

	s.hub.Announce(domain.Event{
		Type:    domain.EventCurrentUsers,
		Payload: map[string]any{"users": users},
	})
}

// persist runs detached from the sender. Failures are logged and swallowed,
// the broadcast has already happened.
func (s *ChatService) persist(message *domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.transcripts.Append(ctx, message); err != nil {
		s.log.Error("failed to save chat message",
			slog.String("message_id", message.ID.String()),
			sl.Err(err),
		)
	}
}

func messagePayload(message *domain.Message) map[string]any {
	return map[string]any{
		"id":        message.ID.String(),
		"username":  message.Username,
		"message":   message.Body,
		"timestamp": message.CreatedAt.UTC().Format(time.RFC3339Nano),
		"file":      message.File,
		"fileType":  string(message.FileType),
	}
}
