package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// slidingWindow trims the sorted set to the window and adds the hit when the
// limit allows it. ARGV[3] == 0 disables the limit.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local n = redis.call('ZCARD', key)
if limit > 0 and n >= limit then
  return {0, n}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, n + 1}
`)

type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

var _ Limiter = (*Redis)(nil)

func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	allowed, count, err := r.run(ctx, key, limit, window)
	if err != nil {
		return Result{Allowed: true, Remaining: limit}, err
	}
	return result(allowed, count, limit), nil
}

func (r *Redis) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	_, count, err := r.run(ctx, key, 0, window)
	return count, err
}

func (r *Redis) run(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	res, err := slidingWindow.Run(ctx, r.client,
		[]string{r.prefix + key},
		time.Now().UnixMilli(),
		window.Milliseconds(),
		limit,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	return res[0] == 1, int(res[1]), nil
}
