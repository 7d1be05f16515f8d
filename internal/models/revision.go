package models

import (
	"time"

	"github.com/google/uuid"
)

// Revision — ревизия статьи, к которой привязаны комментарии.
// Сущностью владеет смежная система; сервис только читает её
// для проверки существования и принадлежности.
type Revision struct {
	ID         uuid.UUID `json:"id"`
	ArticleID  uuid.UUID `json:"articulo_id"`
	AuthorID   uuid.UUID `json:"autor_id"`
	ReviewerID uuid.UUID `json:"revisor_id"`
	CreatedAt  time.Time `json:"fecha_creacion"`
}
