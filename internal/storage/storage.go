package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (или скрыта).
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности.
	ErrConflict = errors.New("conflict")
	// ErrParentInvalid — родитель ответа не существует, скрыт, из другой ревизии
	// или сам является ответом. Проверяется атомарно вместе со вставкой.
	ErrParentInvalid = errors.New("invalid parent")
)

// RevisionStorage — чтение ревизий (владелец — смежная система).
type RevisionStorage interface {
	// RevisionByID возвращает ревизию. Если записи нет — ErrNotFound.
	RevisionByID(ctx context.Context, id uuid.UUID) (*models.Revision, error)
	// SaveRevision регистрирует ревизию (локальные окружения, commentsctl).
	// Повтор по id — ErrConflict.
	SaveRevision(ctx context.Context, rev models.Revision) error
}

// CommentStorage — операции над комментариями. Каждая запись — одна атомарная операция.
type CommentStorage interface {
	// CreateComment сохраняет полностью заполненный комментарий.
	// Если ReplyTo != nil, в той же операции проверяется, что родитель существует,
	// не скрыт, принадлежит той же ревизии и является корнем; иначе ErrParentInvalid.
	// Повтор по id — ErrConflict.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий, включая скрытые (Hidden выставлен).
	// Если записи нет — ErrNotFound.
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListByRevision возвращает все не скрытые комментарии ревизии
	// в порядке (created_at ASC, id ASC).
	ListByRevision(ctx context.Context, revisionID uuid.UUID) ([]models.Comment, error)

	// UpdateContent меняет contenido и updated_at не скрытого комментария.
	// Если записи нет или она скрыта — ErrNotFound.
	UpdateContent(ctx context.Context, id uuid.UUID, content string, at time.Time) (*models.Comment, error)

	// ToggleState атомарно переключает estado activo <-> resuelto, updated_at не меняется.
	// Если записи нет или она скрыта — ErrNotFound.
	ToggleState(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// HideComment выставляет oculto=true. Если записи нет или она уже скрыта — ErrNotFound.
	HideComment(ctx context.Context, id uuid.UUID) error
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	RevisionStorage
	CommentStorage
	Close()
}
