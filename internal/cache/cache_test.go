package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func sampleStats() *models.Stats {
	return &models.Stats{
		Total:    5,
		ByType:   models.TypeCounts{Public: 3, Private: 1, Internal: 1},
		Active:   4,
		Resolved: 1,
		Threads:  3,
		Replies:  2,
	}
}

func TestEncodeDecodeStats(t *testing.T) {
	st := sampleStats()

	got, err := decodeStats(encodeStats(st))
	require.NoError(t, err)
	require.Equal(t, st, got)

	m := encodeStats(st)
	m["hilos"] = "x"
	_, err = decodeStats(m)
	require.Error(t, err)
}

func TestNewRedisCache_BadInput(t *testing.T) {
	_, err := NewRedisCache("redis://localhost:6379/0", "", 0)
	require.Error(t, err)

	_, err = NewRedisCache("not a url", "", time.Second)
	require.Error(t, err)
}

// startRedis — поднимает Redis в контейнере. Пропуск без GO_TEST_INTEGRATION.
func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestIntegration_StatsCache_Versioning(t *testing.T) {
	url := startRedis(t)

	c, err := NewRedisCache(url, "test", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	rev := uuid.New()

	_, v0, ok, err := c.Get(ctx, rev, "staff")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, v0)

	require.NoError(t, c.Set(ctx, rev, "staff", v0, sampleStats()))

	got, v, ok, err := c.Get(ctx, rev, "staff")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, v0, v)
	require.Equal(t, sampleStats(), got)

	// Другой scope — независимая запись.
	_, _, ok, err = c.Get(ctx, rev, "revisor:"+uuid.NewString())
	require.NoError(t, err)
	require.False(t, ok)

	// Запись в ревизию — старые агрегаты больше не видны.
	require.NoError(t, c.Invalidate(ctx, rev))
	_, v1, ok, err := c.Get(ctx, rev, "staff")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, v0+1, v1)
}
