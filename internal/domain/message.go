package domain

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeNone  FileType = "none"
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// ParseFileType maps a raw client value onto the supported attachment kinds.
// Anything unrecognized degrades to none.
func ParseFileType(raw string) FileType {
	switch FileType(raw) {
	case FileTypeImage:
		return FileTypeImage
	case FileTypeVideo:
		return FileTypeVideo
	default:
		return FileTypeNone
	}
}

// Message is an immutable transcript record. Username is the display name the
// author held when the message was created.
type Message struct {
	ID        uuid.UUID
	Username  string
	Body      string
	File      string
	FileType  FileType
	CreatedAt time.Time
}

func NewMessage(username string, body string, file string, fileType FileType) *Message {
	if file == "" {
		fileType = FileTypeNone
	}
	return &Message{
		ID:        uuid.New(),
		Username:  username,
		Body:      body,
		File:      file,
		FileType:  fileType,
		CreatedAt: time.Now().UTC(),
	}
}

// IsEmpty reports whether the message carries neither text nor an attachment.
func (m *Message) IsEmpty() bool {
	return m.Body == "" && m.File == ""
}
