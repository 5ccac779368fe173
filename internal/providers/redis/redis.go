package redis

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const monitorInterval = 5 * time.Second

// RedisProvider owns the client the redis board store writes through. A
// background monitor pings the server and tracks whether it is reachable.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
	up     atomic.Bool
	cancel context.CancelFunc
}

func clientOptions(redisURL string) *redis.Options {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond
	return opts
}

// NewRedisProvider never fails: an unreachable server is logged and the
// monitor keeps retrying. ttl applies to every written key; zero disables expiry.
func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts := clientOptions(redisURL)
	ctx, cancel := context.WithCancel(context.Background())

	p := &RedisProvider{
		Client: redis.NewClient(opts),
		URL:    redisURL,
		logger: logger.Sugar().With("redis_addr", opts.Addr),
		ttl:    ttl,
		cancel: cancel,
	}
	p.Client.AddHook(&loggerHook{provider: p})

	if err := p.Client.Ping(ctx).Err(); err != nil {
		p.logger.Errorw("Redis unavailable at startup", "error", err)
	} else {
		p.up.Store(true)
		p.logger.Infow("Redis connected", "db", opts.DB, "key_ttl", ttl.String())
	}

	go p.monitor(ctx)
	return p
}

// Connected reports the outcome of the latest health ping.
func (r *RedisProvider) Connected() bool {
	return r.up.Load()
}

// SetWithDefaultTTL stores value with ttl, or the provider TTL when ttl <= 0.
func (r *RedisProvider) SetWithDefaultTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.Client.Set(ctx, key, value, ttl)
}

func (r *RedisProvider) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Client.Get(ctx, key)
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.Client.Del(ctx, keys...)
}

func (r *RedisProvider) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *RedisProvider) monitor(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			switch {
			case err != nil && r.up.Swap(false):
				r.logger.Errorw("Redis connection lost", "error", err)
			case err == nil && !r.up.Swap(true):
				r.logger.Infow("Redis connection restored")
			}
		}
	}
}

type loggerHook struct {
	provider *RedisProvider
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.provider.logger.Debugw("Redis dial failed", "network", network, "error", err)
		}
		return conn, err
	}
}

// ProcessHook logs board store commands by key. Values are whole board
// partitions and are never logged. While the monitor reports the server down,
// failures drop to debug so an outage logs once.
func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if cmd.Name() == "ping" {
			return err
		}

		fields := []interface{}{
			"command", cmd.Name(),
			"key", commandKey(cmd),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case errors.Is(err, redis.Nil):
			h.provider.logger.Debugw("Redis key missing", fields...)
		case err != nil && h.provider.Connected():
			h.provider.logger.Errorw("Redis command failed", append(fields, "error", err)...)
		case err != nil:
			h.provider.logger.Debugw("Redis command failed while disconnected", append(fields, "error", err)...)
		default:
			h.provider.logger.Debugw("Redis command executed", fields...)
		}
		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil {
			h.provider.logger.Errorw("Redis pipeline failed", "commands", len(cmds), "error", err)
		}
		return err
	}
}

func commandKey(cmd redis.Cmder) interface{} {
	args := cmd.Args()
	if len(args) < 2 {
		return nil
	}
	return args[1]
}
