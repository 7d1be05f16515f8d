package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateComment создаёт комментарий (корневой или ответ).
// Для ответа родитель ищется по полному условию (та же ревизия, корень, не скрыт);
// без транзакций проверка и вставка — две операции, поэтому окно гонки со скрытием родителя
// здесь шире, чем в PostgreSQL.
func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	err := m.revisions.FindOne(ctx, bson.D{{Key: "_id", Value: comment.RevisionID.String()}}).Err()
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: find revision: %w", op, err)
	}

	if comment.ReplyTo != nil {
		filter := bson.D{
			{Key: "_id", Value: comment.ReplyTo.String()},
			{Key: "revision_id", Value: comment.RevisionID.String()},
			{Key: "respuesta_a", Value: nil},
			{Key: "oculto", Value: false},
		}

		if err := m.comments.FindOne(ctx, filter).Err(); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentInvalid)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}
	}

	doc := toCommentDoc(comment)
	doc.Hidden = false

	if _, err := m.comments.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return doc.model()
}

// CommentByID возвращает комментарий по идентификатору (включая скрытые).
func (m *Mongo) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := doc.model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListByRevision возвращает все не скрытые комментарии ревизии.
// Сортировка: fecha_creacion ASC, _id ASC (строковый UUID сравнивается так же, как в PostgreSQL).
func (m *Mongo) ListByRevision(ctx context.Context, revisionID uuid.UUID) ([]models.Comment, error) {
	const op = "storage/mongo/ListByRevision"

	filter := bson.D{
		{Key: "revision_id", Value: revisionID.String()},
		{Key: "oculto", Value: false},
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "fecha_creacion", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		c, err := doc.model()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *c)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// UpdateContent меняет текст и fecha_actualizacion не скрытого комментария.
func (m *Mongo) UpdateContent(ctx context.Context, id uuid.UUID, content string, at time.Time) (*models.Comment, error) {
	const op = "storage/mongo/UpdateContent"

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "contenido", Value: content},
		{Key: "fecha_actualizacion", Value: toMS(at)},
	}}}

	return m.findOneAndUpdate(ctx, op, id, update)
}

// ToggleState переключает estado одним FindOneAndUpdate с pipeline-обновлением ($cond),
// без чтения перед записью.
func (m *Mongo) ToggleState(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const op = "storage/mongo/ToggleState"

	update := mongodriver.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "estado", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$estado", string(models.StateActive)}}},
				string(models.StateResolved),
				string(models.StateActive),
			}}}},
		}}},
	}

	return m.findOneAndUpdate(ctx, op, id, update)
}

// HideComment помечает комментарий скрытым.
func (m *Mongo) HideComment(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/HideComment"

	filter := bson.D{{Key: "_id", Value: id.String()}, {Key: "oculto", Value: false}}
	res, err := m.comments.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: bson.D{{Key: "oculto", Value: true}}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// findOneAndUpdate применяет update к не скрытому комментарию и возвращает документ после изменения.
func (m *Mongo) findOneAndUpdate(ctx context.Context, op string, id uuid.UUID, update any) (*models.Comment, error) {
	filter := bson.D{{Key: "_id", Value: id.String()}, {Key: "oculto", Value: false}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDoc
	if err := m.comments.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := doc.model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
