package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// RevisionByID находит ревизию по ID.
func (m *Mongo) RevisionByID(ctx context.Context, id uuid.UUID) (*models.Revision, error) {
	const op = "storage/mongo/RevisionByID"

	var doc revisionDoc
	if err := m.revisions.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
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

// SaveRevision регистрирует ревизию; повтор по _id — storage.ErrConflict.
func (m *Mongo) SaveRevision(ctx context.Context, rev models.Revision) error {
	const op = "storage/mongo/SaveRevision"

	doc := revisionDoc{
		ID:         rev.ID.String(),
		ArticleID:  rev.ArticleID.String(),
		AuthorID:   rev.AuthorID.String(),
		ReviewerID: rev.ReviewerID.String(),
		CreatedAt:  toMS(rev.CreatedAt),
	}

	if _, err := m.revisions.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
