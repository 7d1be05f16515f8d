package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/review-comments/internal/errors"
	"github.com/pribylovaa/review-comments/internal/http/middleware"
	"github.com/pribylovaa/review-comments/internal/models"
)

// maxBodyBytes — верхняя граница тела запроса; текст комментария заметно меньше.
const maxBodyBytes = 1 << 20

// CommentService — операции сервисного слоя, доступные через REST.
type CommentService interface {
	ListComments(ctx context.Context, caller models.Caller, revisionID uuid.UUID, params models.ListParams) (*models.CommentList, error)
	Statistics(ctx context.Context, caller models.Caller, revisionID uuid.UUID) (*models.Stats, error)
	CreateComment(ctx context.Context, caller models.Caller, in models.CreateCommentInput) (*models.Comment, error)
	UpdateComment(ctx context.Context, caller models.Caller, id uuid.UUID, content string) (*models.Comment, error)
	ToggleState(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Comment, error)
	DeleteComment(ctx context.Context, caller models.Caller, id uuid.UUID) error
	CommentByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Comment, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Comments CommentService
}

func New(svc CommentService) *Handlers {
	return &Handlers{Comments: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и хвост после объекта.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", apierrors.ErrBadRequest)
	}

	return nil
}

// uuidParam достаёт UUID из пути; битое значение — 400.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", apierrors.ErrBadRequest, name)
	}

	return id, nil
}

// caller достаёт вызывающего; отсутствие — ошибка сборки роутера, отвечаем 401.
func caller(r *http.Request) (models.Caller, error) {
	c, ok := middleware.CallerFrom(r.Context())
	if !ok {
		return models.Caller{}, apierrors.ErrUnauthenticated
	}

	return c, nil
}
