package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
)

// commentDoc — представление комментария в коллекции. Идентификаторы хранятся строками UUID,
// чтобы фильтры и документы использовали одинаковые ключи.
type commentDoc struct {
	ID         string    `bson:"_id"`
	RevisionID string    `bson:"revision_id"`
	AuthorID   string    `bson:"autor_id"`
	AuthorName string    `bson:"autor_nombre"`
	AuthorRole string    `bson:"autor_rol"`
	Type       string    `bson:"tipo"`
	Content    string    `bson:"contenido"`
	State      string    `bson:"estado"`
	ReplyTo    *string   `bson:"respuesta_a"`
	Hidden     bool      `bson:"oculto"`
	CreatedAt  time.Time `bson:"fecha_creacion"`
	UpdatedAt  time.Time `bson:"fecha_actualizacion"`
}

type revisionDoc struct {
	ID         string    `bson:"_id"`
	ArticleID  string    `bson:"articulo_id"`
	AuthorID   string    `bson:"autor_id"`
	ReviewerID string    `bson:"revisor_id"`
	CreatedAt  time.Time `bson:"fecha_creacion"`
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func toCommentDoc(c models.Comment) commentDoc {
	d := commentDoc{
		ID:         c.ID.String(),
		RevisionID: c.RevisionID.String(),
		AuthorID:   c.AuthorID.String(),
		AuthorName: c.AuthorName,
		AuthorRole: string(c.AuthorRole),
		Type:       string(c.Type),
		Content:    c.Content,
		State:      string(c.State),
		Hidden:     c.Hidden,
		CreatedAt:  toMS(c.CreatedAt),
		UpdatedAt:  toMS(c.UpdatedAt),
	}

	if c.ReplyTo != nil {
		parent := c.ReplyTo.String()
		d.ReplyTo = &parent
	}

	return d
}

func (d commentDoc) model() (*models.Comment, error) {
	ids, err := parseUUIDs(d.ID, d.RevisionID, d.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("comment %q: %w", d.ID, err)
	}

	c := &models.Comment{
		ID:         ids[0],
		RevisionID: ids[1],
		AuthorID:   ids[2],
		AuthorName: d.AuthorName,
		AuthorRole: models.Role(d.AuthorRole),
		Type:       models.Visibility(d.Type),
		Content:    d.Content,
		State:      models.State(d.State),
		Hidden:     d.Hidden,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}

	if d.ReplyTo != nil {
		parent, err := uuid.Parse(*d.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("comment %q: respuesta_a: %w", d.ID, err)
		}
		c.ReplyTo = &parent
	}

	return c, nil
}

func (d revisionDoc) model() (*models.Revision, error) {
	ids, err := parseUUIDs(d.ID, d.ArticleID, d.AuthorID, d.ReviewerID)
	if err != nil {
		return nil, fmt.Errorf("revision %q: %w", d.ID, err)
	}

	return &models.Revision{
		ID:         ids[0],
		ArticleID:  ids[1],
		AuthorID:   ids[2],
		ReviewerID: ids[3],
		CreatedAt:  d.CreatedAt.UTC(),
	}, nil
}

func parseUUIDs(raw ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}

	return out, nil
}
