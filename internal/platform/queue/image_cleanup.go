package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ImageCleanup enqueues uploaded-image paths for best-effort deletion.
// Services treat enqueue failures as non-fatal.
type ImageCleanup interface {
	Enqueue(ctx context.Context, imagePath string) error
}

type redisImageCleanup struct {
	rdb       *redis.Client
	queueName string
}

func NewImageCleanup(rdb *redis.Client, queueName string) ImageCleanup {
	return &redisImageCleanup{rdb: rdb, queueName: queueName}
}

func (q *redisImageCleanup) Enqueue(ctx context.Context, imagePath string) error {
	return q.rdb.LPush(ctx, q.queueName, imagePath).Err()
}
