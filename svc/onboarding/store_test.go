package onboarding_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

// testStore exercises the Store contract shared by every backend.
func testStore(t *testing.T, store onboarding.Store) {
	t.Helper()
	ctx := context.Background()
	userID := "user-" + uuid.NewString()
	t0 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := store.Load(ctx, userID)
	require.ErrorIs(t, err, onboarding.ErrNotFound)

	p, err := store.Merge(ctx, userID, map[string]any{"first-name": "Ada", "phone": "555"}, t0)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Fields["first-name"])
	assert.True(t, p.LastUpdated.Equal(t0))

	t1 := t0.Add(time.Minute)
	p, err = store.Merge(ctx, userID, map[string]any{"first-name": "Grace", "last-name": "Hopper"}, t1)
	require.NoError(t, err)
	assert.Equal(t, "Grace", p.Fields["first-name"])
	assert.Equal(t, "Hopper", p.Fields["last-name"])
	assert.Equal(t, "555", p.Fields["phone"])
	assert.True(t, p.LastUpdated.Equal(t1))

	require.NoError(t, store.SetCurrentStep(ctx, userID, onboarding.StepIndustry, t1.Add(time.Minute)))

	p, err = store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "2-1", p.CurrentStep)
	assert.Equal(t, "Grace", p.Fields["first-name"])

	require.NoError(t, store.Clear(ctx, userID))
	_, err = store.Load(ctx, userID)
	require.ErrorIs(t, err, onboarding.ErrNotFound)

	// Clear is idempotent.
	require.NoError(t, store.Clear(ctx, userID))

	// The step pointer alone creates a record.
	require.NoError(t, store.SetCurrentStep(ctx, userID, onboarding.StepPersonalDetails, t0))
	p, err = store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "1-0", p.CurrentStep)
	assert.False(t, p.HasAnswers())
	require.NoError(t, store.Clear(ctx, userID))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, onboarding.NewMemoryStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := onboarding.NewMemoryStore()

	p, err := store.Merge(ctx, "u1", map[string]any{"industry": "tech"}, time.Now())
	require.NoError(t, err)
	p.Fields["industry"] = "mutated"

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "tech", loaded.Fields["industry"])

	_, err = store.Load(ctx, "u2")
	require.ErrorIs(t, err, onboarding.ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	testStore(t, onboarding.NewRedisStore(client, "test:", onboarding.WithRedisTTL(time.Minute)))
}

func TestMongoStore(t *testing.T) {
	url := os.Getenv("TEST_MONGODB_URL")
	if url == "" {
		t.Skip("TEST_MONGODB_URL not set")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	testStore(t, onboarding.NewMongoStore(client.Database("onboarding_test")))
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	s, err := onboarding.NewStore(onboarding.Config{}, onboarding.Backends{})
	require.NoError(t, err)
	assert.IsType(t, &onboarding.MemoryStore{}, s)

	for _, backend := range []string{onboarding.BackendRedis, onboarding.BackendPostgres, onboarding.BackendMongo, "etcd"} {
		_, err := onboarding.NewStore(onboarding.Config{Backend: backend}, onboarding.Backends{})
		require.ErrorIs(t, err, onboarding.ErrUnknownBackend, backend)
	}
}
