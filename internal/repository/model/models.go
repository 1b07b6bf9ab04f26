package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex;not null"`
	Username  string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text;not null"`
	File      string    `gorm:"size:1024;not null"`
	FileType  string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}
