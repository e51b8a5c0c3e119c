package reminders

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduplicator дедупликация через Redis SETNX.
// Переживает рестарты сервиса и работает при нескольких репликах
type RedisDeduplicator struct {
	client *redis.Client
}

// NewRedisDeduplicator создает новый дедупликатор
func NewRedisDeduplicator(client *redis.Client) *RedisDeduplicator {
	return &RedisDeduplicator{client: client}
}

// MarkOnce атомарно помечает ключ. true - ключ был свободен
func (d *RedisDeduplicator) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return d.client.SetNX(ctx, key, "1", ttl).Result()
}
