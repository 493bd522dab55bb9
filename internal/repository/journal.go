package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resty_chess/internal/domain/journal"
)

// RedisJournal keeps the mutation journal in a Redis list, oldest entry at the head.
type RedisJournal struct {
	redis *redis.Client
	log   *zap.SugaredLogger
	key   string
	limit int
}

func NewRedisJournal(client *redis.Client, log *zap.SugaredLogger, key string, limit int) *RedisJournal {
	return &RedisJournal{
		redis: client,
		log:   log,
		key:   key,
		limit: limit,
	}
}

func (j *RedisJournal) Append(ctx context.Context, entry journal.Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	pipe := j.redis.TxPipeline()
	pipe.RPush(ctx, j.key, raw)
	if j.limit > 0 {
		pipe.LTrim(ctx, j.key, int64(-j.limit), -1)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push journal entry to redis: %w", err)
	}
	return nil
}

func (j *RedisJournal) List(ctx context.Context, limit int) ([]journal.Entry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raws, err := j.redis.LRange(ctx, j.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read journal from redis: %w", err)
	}

	entries := make([]journal.Entry, 0, len(raws))
	for _, raw := range raws {
		var entry journal.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			j.log.Errorf("skipping malformed journal entry: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
