package repository

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
	"github.com/immxrtalbeast/axenix_chat/internal/repository/model"
	"gorm.io/gorm"
)

var ErrInvalidLimit = errors.New("limit must be positive")

type PostgresTranscriptRepository struct {
	db *gorm.DB
}

func NewPostgresTranscriptRepository(db *gorm.DB) *PostgresTranscriptRepository {
	return &PostgresTranscriptRepository{db: db}
}

func (r *PostgresTranscriptRepository) Append(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message == nil {
		return errors.New("message is nil")
	}

	return r.db.WithContext(ctx).Create(toModelMessage(message)).Error
}

// Recent fetches the newest records by insertion sequence and flips them so
// callers always get oldest-to-newest. Ties on created_at keep arrival order
// through the seq column.
func (r *PostgresTranscriptRepository) Recent(ctx context.Context, limit int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	var records []model.Message
	err := r.db.WithContext(ctx).
		Order("seq DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		result = append(result, toDomainMessage(&records[i]))
	}

	return result, nil
}

func toModelMessage(message *domain.Message) *model.Message {
	return &model.Message{
		ID:        message.ID,
		Username:  message.Username,
		Body:      message.Body,
		File:      message.File,
		FileType:  string(message.FileType),
		CreatedAt: message.CreatedAt.UTC(),
	}
}

func toDomainMessage(record *model.Message) *domain.Message {
	fileType := domain.ParseFileType(record.FileType)

	return &domain.Message{
		ID:        record.ID,
		Username:  record.Username,
		Body:      record.Body,
		File:      record.File,
		FileType:  fileType,
		CreatedAt: record.CreatedAt.UTC(),
	}
}
