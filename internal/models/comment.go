// Package models содержит доменные сущности сервиса комментариев к ревизиям.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Visibility — класс видимости комментария (поле tipo).
type Visibility string

const (
	VisibilityPublic   Visibility = "publico"
	VisibilityPrivate  Visibility = "privado"
	VisibilityInternal Visibility = "interno"
)

// Visibilities — все допустимые значения tipo в каноническом порядке.
var Visibilities = []Visibility{VisibilityPublic, VisibilityPrivate, VisibilityInternal}

// ParseVisibility возвращает Visibility и false для неизвестного значения.
func ParseVisibility(s string) (Visibility, bool) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return v, true
	default:
		return "", false
	}
}

// State — состояние комментария (поле estado).
type State string

const (
	StateActive   State = "activo"
	StateResolved State = "resuelto"
)

// Toggled возвращает противоположное состояние.
func (s State) Toggled() State {
	if s == StateResolved {
		return StateActive
	}

	return StateResolved
}

// Comment — доменная модель комментария к ревизии.
// Важно:
//   - AuthorName/AuthorRole — снимок вызывающего на момент создания;
//   - ReplyTo == nil у корневого комментария; ответ допустим только на корень;
//   - CreatedAt == UpdatedAt, пока комментарий не редактировали;
//   - Hidden — мягкое скрытие, наружу не сериализуется.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	RevisionID uuid.UUID  `json:"revision_id"`
	AuthorID   uuid.UUID  `json:"autor_id"`
	AuthorName string     `json:"autor_nombre"`
	AuthorRole Role       `json:"autor_rol"`
	Type       Visibility `json:"tipo"`
	Content    string     `json:"contenido"`
	State      State      `json:"estado"`
	ReplyTo    *uuid.UUID `json:"respuesta_a"`
	CreatedAt  time.Time  `json:"fecha_creacion"`
	UpdatedAt  time.Time  `json:"fecha_actualizacion"`
	Hidden     bool       `json:"-"`
}

// IsRoot сообщает, что комментарий открывает ветку.
func (c *Comment) IsRoot() bool {
	return c.ReplyTo == nil
}

// Edited сообщает, что комментарий редактировали после создания.
func (c *Comment) Edited() bool {
	return !c.UpdatedAt.Equal(c.CreatedAt)
}

// CreateCommentInput — создание корневого комментария или ответа.
// Правила:
//   - Type — строка из запроса, разбирается сервисом (ParseVisibility);
//   - если ReplyTo задан, родитель должен быть видимым корнем той же ревизии.
type CreateCommentInput struct {
	RevisionID uuid.UUID
	Type       string
	Content    string
	ReplyTo    *uuid.UUID
}
