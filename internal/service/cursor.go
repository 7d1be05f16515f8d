package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
)

var errMalformedCursor = errors.New("malformed cursor")

// cursor — позиция последнего выданного корня: (fecha_creacion, id).
type cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func cursorOf(c models.Comment) cursor {
	return cursor{CreatedAt: c.CreatedAt, ID: c.ID}
}

// encodeCursor — base64url("<unix nanos>|<uuid>").
func encodeCursor(c cursor) string {
	raw := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + "|" + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(token string) (cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return cursor{}, errMalformedCursor
	}

	nanos, id, ok := strings.Cut(string(raw), "|")
	if !ok {
		return cursor{}, errMalformedCursor
	}

	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return cursor{}, errMalformedCursor
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return cursor{}, errMalformedCursor
	}

	return cursor{CreatedAt: time.Unix(0, n).UTC(), ID: uid}, nil
}

// compareComments задаёт порядок выдачи: fecha_creacion ASC, затем id.
func compareComments(a, b models.Comment) int {
	return compareKeys(cursorOf(a), cursorOf(b))
}

func compareKeys(a, b cursor) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}

	return bytes.Compare(a.ID[:], b.ID[:])
}
