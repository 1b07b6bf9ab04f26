package converter

import (
	"time"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

type MessageResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file"`
	FileType  string    `json:"fileType"`
}

type ParticipantResponse struct {
	Username     string    `json:"username"`
	ConnectionID string    `json:"connectionId"`
	JoinedAt     time.Time `json:"joined_at"`
}

func MessageToApi(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID.String(),
		Username:  m.Username,
		Message:   m.Body,
		Timestamp: m.CreatedAt,
		File:      m.File,
		FileType:  string(m.FileType),
	}
}

func MessagesToApi(messages []*domain.Message) []*MessageResponse {
	result := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, MessageToApi(m))
	}
	return result
}

func ParticipantsToApi(participants []*domain.Participant) []ParticipantResponse {
	result := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, ParticipantResponse{
			Username:     p.Name,
			ConnectionID: p.ConnectionID,
			JoinedAt:     p.JoinedAt,
		})
	}
	return result
}
