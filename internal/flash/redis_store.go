package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// flash 訊息的 key
func (s *RedisStore) getKey(sid string) string {
	return fmt.Sprintf("flash:%s", sid)
}

func (s *RedisStore) Add(ctx context.Context, sid string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	key := s.getKey(sid)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

/*
取出並刪除 (使用Lua腳本確保原子性)
同一個 session 兩個請求同時渲染時，訊息只會出現在其中一個頁面
*/
func (s *RedisStore) Pop(ctx context.Context, sid string) ([]Message, error) {
	script := `
		local key = KEYS[1]
		local items = redis.call('LRANGE', key, 0, -1)
		redis.call('DEL', key)
		return items
	`

	result, err := s.client.Eval(ctx, script, []string{s.getKey(sid)}).StringSlice()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(result))
	for _, raw := range result {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			// 壞掉的資料直接略過，不影響頁面渲染
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
