package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/redis/go-redis/v9"
)

// versionTTL — время жизни счётчика версии ревизии. Должно быть много больше TTL записи,
// иначе после сброса счётчика в 0 могла бы прочитаться старая запись с версией 0.
const versionTTL = 24 * time.Hour

// StatsCache — кэш агрегатов по ревизии.
// Запись адресуется (ревизия, версия, scope); любая запись в ревизию увеличивает версию,
// поэтому устаревшие агрегаты больше не читаются и доживают до TTL.
type StatsCache interface {
	// Get возвращает агрегаты, текущую версию ревизии и признак попадания.
	// Версию нужно передать в Set после пересчёта.
	Get(ctx context.Context, revisionID uuid.UUID, scope string) (*models.Stats, int64, bool, error)
	// Set сохраняет агрегаты под версией, прочитанной в Get.
	Set(ctx context.Context, revisionID uuid.UUID, scope string, version int64, st *models.Stats) error
	// Invalidate увеличивает версию ревизии.
	Invalidate(ctx context.Context, revisionID uuid.UUID) error
	// Ping проверяет доступность Redis (readiness).
	Ping(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "revcomments".
func NewRedisCache(redisURL, prefix string, ttl time.Duration) (StatsCache, error) {
	if prefix == "" {
		prefix = "revcomments"
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("cache: ttl must be > 0")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (c *redisCache) versionKey(revisionID uuid.UUID) string {
	return c.prefix + ":stats:ver:" + revisionID.String()
}

func (c *redisCache) statsKey(revisionID uuid.UUID, version int64, scope string) string {
	return c.prefix + ":stats:" + revisionID.String() + ":" + strconv.FormatInt(version, 10) + ":" + scope
}

// Храним как Redis Hash с полями по каждому счётчику.
func (c *redisCache) Get(ctx context.Context, revisionID uuid.UUID, scope string) (*models.Stats, int64, bool, error) {
	version, err := c.rdb.Get(ctx, c.versionKey(revisionID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}

	m, err := c.rdb.HGetAll(ctx, c.statsKey(revisionID, version, scope)).Result()
	if err != nil {
		return nil, version, false, err
	}

	if len(m) == 0 {
		return nil, version, false, nil
	}

	st, err := decodeStats(m)
	if err != nil {
		return nil, version, false, err
	}

	return st, version, true, nil
}

func (c *redisCache) Set(ctx context.Context, revisionID uuid.UUID, scope string, version int64, st *models.Stats) error {
	key := c.statsKey(revisionID, version, scope)

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, encodeStats(st))
	pipe.Expire(ctx, key, c.ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Invalidate(ctx context.Context, revisionID uuid.UUID) error {
	key := c.versionKey(revisionID)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, versionTTL)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *redisCache) Close() error { return c.rdb.Close() }

func encodeStats(st *models.Stats) map[string]string {
	return map[string]string{
		"total":      strconv.Itoa(st.Total),
		"publico":    strconv.Itoa(st.ByType.Public),
		"privado":    strconv.Itoa(st.ByType.Private),
		"interno":    strconv.Itoa(st.ByType.Internal),
		"activos":    strconv.Itoa(st.Active),
		"resueltos":  strconv.Itoa(st.Resolved),
		"hilos":      strconv.Itoa(st.Threads),
		"respuestas": strconv.Itoa(st.Replies),
	}
}

func decodeStats(m map[string]string) (*models.Stats, error) {
	var st models.Stats

	fields := []struct {
		name string
		dst  *int
	}{
		{"total", &st.Total},
		{"publico", &st.ByType.Public},
		{"privado", &st.ByType.Private},
		{"interno", &st.ByType.Internal},
		{"activos", &st.Active},
		{"resueltos", &st.Resolved},
		{"hilos", &st.Threads},
		{"respuestas", &st.Replies},
	}

	for _, f := range fields {
		v, err := strconv.Atoi(m[f.name])
		if err != nil {
			return nil, fmt.Errorf("cache: field %s: %w", f.name, err)
		}
		*f.dst = v
	}

	return &st, nil
}
