package domain

// Event is a frame pushed from the room to a connection.
type Event struct {
	Type    string         `json:"type"` // "user_joined", "user_left", "current_users", "receive_message", "load_messages", "join_ack", "error_message"
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventCurrentUsers   = "current_users"
	EventReceiveMessage = "receive_message"
	EventLoadMessages   = "load_messages"
	EventJoinAck        = "join_ack"
	EventErrorMessage   = "error_message"
)

// InboundMessage is a frame sent by a connection to the room.
type InboundMessage struct {
	Type     string `json:"type"` // "join_chat", "send_message"
	Name     string `json:"name,omitempty"`
	Message  string `json:"message,omitempty"`
	File     string `json:"file,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

const (
	InboundJoinChat    = "join_chat"
	InboundSendMessage = "send_message"
)

// JoinAck is the synchronous result of a join attempt, relayed to the
// requesting connection only.
type JoinAck struct {
	Success bool
	Message string
}
