package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resty_chess/internal/bootstrap"
)

type AdapterRedis struct {
	client *redis.Client
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
}

func NewAdapterRedis(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterRedis {
	return &AdapterRedis{
		cfg: cfg,
		log: log,
	}
}

// Init connects to cfg.RedisUrl, which may be a bare host:port or a redis:// URL.
func (a *AdapterRedis) Init(ctx context.Context) error {
	opts, err := redisOptions(a.cfg)
	if err != nil {
		return err
	}
	a.client = redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.client.Ping(ctxPing).Err(); err != nil {
		_ = a.client.Close()
		a.client = nil
		return fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	a.log.Infof("Connected to Redis at %s", opts.Addr)
	return nil
}

func redisOptions(cfg *bootstrap.Config) (*redis.Options, error) {
	if cfg.RedisUrl == "" {
		return nil, fmt.Errorf("redis url is empty")
	}
	if strings.HasPrefix(cfg.RedisUrl, "redis://") || strings.HasPrefix(cfg.RedisUrl, "rediss://") {
		opts, err := redis.ParseURL(cfg.RedisUrl)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     cfg.RedisUrl,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func (a *AdapterRedis) GetClient() *redis.Client {
	return a.client
}

func (a *AdapterRedis) Close(ctx context.Context) error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}
