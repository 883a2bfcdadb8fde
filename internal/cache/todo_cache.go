package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"todoapp/internal/model"
)

// TodoListCache keeps a short-lived copy of each user's todo list.
// Every mutation invalidates the owner's entry before the write is
// reported back, so a stale list is never observable within a request.
type TodoListCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTodoListCache(client *redisv9.Client, ttl time.Duration) *TodoListCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &TodoListCache{client: client, ttl: ttl}
}

func (c *TodoListCache) GetList(ctx context.Context, ownerID uint) ([]model.Todo, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey(ownerID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get todo list failed: %w", err)
	}

	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached todo list failed: %w", err)
	}
	return todos, true, nil
}

func (c *TodoListCache) SetList(ctx context.Context, ownerID uint, todos []model.Todo) error {
	payload, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("marshal todo list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set todo list failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) Invalidate(ctx context.Context, ownerID uint) error {
	if err := c.client.Del(ctx, c.listKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis delete todo list failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) listKey(ownerID uint) string {
	return fmt.Sprintf("todo:list:%d", ownerID)
}
