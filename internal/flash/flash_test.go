package flash_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-gin-events/internal/flash"
	"go-gin-events/internal/testutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRedis *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Printf("Redis flash tests will be skipped: %v", err)
	} else {
		testRedis = rdb
	}

	code := m.Run()
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

// 兩種 Store 行為需一致
func storesUnderTest(t *testing.T) map[string]flash.Store {
	stores := map[string]flash.Store{
		"Memory": flash.NewMemoryStore(time.Minute),
	}
	if testRedis != nil {
		stores["Redis"] = flash.NewRedisStore(testRedis, time.Minute)
	}
	return stores
}

func TestStore_AddPop(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			session := flash.NewSession(store, uuid.NewString())

			require.NoError(t, session.Success(ctx, "Successfully posted"))
			require.NoError(t, session.Danger(ctx, "Title is required."))

			messages, err := session.Pop(ctx)
			require.NoError(t, err)
			assert.Equal(t, []flash.Message{
				{Kind: flash.KindSuccess, Text: "Successfully posted"},
				{Kind: flash.KindDanger, Text: "Title is required."},
			}, messages)

			// 第二次渲染不再出現
			messages, err = session.Pop(ctx)
			require.NoError(t, err)
			assert.Empty(t, messages)
		})
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			a := flash.NewSession(store, uuid.NewString())
			b := flash.NewSession(store, uuid.NewString())

			require.NoError(t, a.Success(ctx, "for a"))

			messages, err := b.Pop(ctx)
			require.NoError(t, err)
			assert.Empty(t, messages)

			messages, err = a.Pop(ctx)
			require.NoError(t, err)
			require.Len(t, messages, 1)
			assert.Equal(t, "for a", messages[0].Text)
		})
	}
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := flash.NewMemoryStore(10 * time.Millisecond)

	require.NoError(t, store.Add(ctx, "sid", flash.Message{Kind: flash.KindSuccess, Text: "old"}))
	time.Sleep(30 * time.Millisecond)

	messages, err := store.Pop(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRedisStore_SkipsMalformed(t *testing.T) {
	testutil.RequireRedis(t, testRedis)
	ctx := context.Background()
	store := flash.NewRedisStore(testRedis, time.Minute)
	sid := uuid.NewString()

	require.NoError(t, testRedis.RPush(ctx, "flash:"+sid, "not-json").Err())
	require.NoError(t, store.Add(ctx, sid, flash.Message{Kind: flash.KindDanger, Text: "ok"}))

	messages, err := store.Pop(ctx, sid)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ok", messages[0].Text)

	exists, err := testRedis.Exists(ctx, "flash:"+sid).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
