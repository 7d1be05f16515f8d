// service содержит бизнес-логику комментариев к ревизиям:
// видимость по ролям, ветки в один уровень, состояние activo/resuelto и агрегаты.
//
// Экземпляр Service не хранит состояние запроса и безопасен для конкурентного
// использования; каждая запись в хранилище — одна атомарная операция.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/cache"
	"github.com/pribylovaa/review-comments/internal/config"
	"github.com/pribylovaa/review-comments/internal/metrics"
	"github.com/pribylovaa/review-comments/internal/notify"
	"github.com/pribylovaa/review-comments/internal/storage"
)

// Категории ошибок. Транспорт маппит их на HTTP-коды через errors.Is.
var (
	// ErrValidation — некорректные входные данные (HTTP 400).
	ErrValidation = errors.New("validation error")
	// ErrForbidden — у вызывающего нет прав на операцию (HTTP 403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — ревизия или комментарий не найдены (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrInternal — ошибка хранилища/БД (HTTP 500).
	ErrInternal = errors.New("internal")
)

// Конкретные ошибки; каждая оборачивает свою категорию.
var (
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrValidation)
	ErrUnknownType     = fmt.Errorf("%w: tipo must be one of publico, privado, interno", ErrValidation)
	ErrEmptyContent    = fmt.Errorf("%w: contenido must not be empty", ErrValidation)
	ErrContentTooLong  = fmt.Errorf("%w: contenido is too long", ErrValidation)
	ErrInvalidParent   = fmt.Errorf("%w: respuesta_a must reference a visible top-level comment of the same revision", ErrValidation)
	ErrInvalidCursor   = fmt.Errorf("%w: invalid page_token", ErrValidation)

	ErrUnknownRole       = fmt.Errorf("%w: unknown role", ErrForbidden)
	ErrNoRevisionAccess  = fmt.Errorf("%w: no access to this revision", ErrForbidden)
	ErrTypeNotAllowed    = fmt.Errorf("%w: tipo is not allowed for this role", ErrForbidden)
	ErrCannotComment     = fmt.Errorf("%w: role cannot comment", ErrForbidden)
	ErrCannotResolve     = fmt.Errorf("%w: role cannot resolve comments", ErrForbidden)
	ErrNotAuthor         = fmt.Errorf("%w: only the author can edit this comment", ErrForbidden)
	ErrCannotHide        = fmt.Errorf("%w: only the author or staff can delete this comment", ErrForbidden)
	ErrCommentNotVisible = fmt.Errorf("%w: comment is not visible to this role", ErrForbidden)

	ErrRevisionNotFound = fmt.Errorf("%w: revision not found", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("%w: comment not found", ErrNotFound)
)

// Service описывает бизнес-логику комментариев.
type Service struct {
	storage storage.Storage
	limits  config.LimitsConfig

	stats    cache.StatsCache  // может быть nil, если Redis не сконфигурирован
	notifier notify.Dispatcher // может быть nil — уведомления выключены
	metrics  *metrics.Metrics  // может быть nil

	now   func() time.Time
	newID func() uuid.UUID
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, limits config.LimitsConfig) *Service {
	return &Service{
		storage: storage,
		limits:  limits,
		now:     time.Now,
		newID:   uuid.New,
	}
}

// SetStatsCache устанавливает кэш статистики (опционально).
func (s *Service) SetStatsCache(c cache.StatsCache) {
	s.stats = c
}

// SetDispatcher устанавливает доставку уведомлений (опционально).
func (s *Service) SetDispatcher(d notify.Dispatcher) {
	s.notifier = d
}

// SetMetrics устанавливает доменные метрики (опционально).
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// timestamp — текущее время в UTC с точностью до миллисекунд (общая точность обоих хранилищ).
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
