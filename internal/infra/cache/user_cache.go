package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix    = "shareit:user:"
	versionKeyPrefix = "shareit:user:ver:"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisUserCache stores Directory users as JSON under a per-id key.
type RedisUserCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisUserCache(client redis.Cmdable, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func (c *RedisUserCache) Get(ctx context.Context, id int64) (*shared.CachedUser, bool, error) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrapf(err, "redis get user %d", id)
	}

	var u shared.CachedUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, false, errs.Wrapf(err, "decode cached user %d", id)
	}
	return &u, true, nil
}

func (c *RedisUserCache) Version(ctx context.Context, id int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(id)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errs.Wrapf(err, "redis get user version %d", id)
	}
	return v, nil
}

// fillScript sets KEYS[2] only while KEYS[1] still holds ARGV[1] and
// KEYS[2] is absent.
var fillScript = redis.NewScript(`
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
local ok
if tonumber(ARGV[3]) > 0 then
	ok = redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3], 'NX')
else
	ok = redis.call('SET', KEYS[2], ARGV[2], 'NX')
end
if ok then
	return 1
end
return 0
`)

func (c *RedisUserCache) Fill(ctx context.Context, u shared.CachedUser, version int64) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return errs.Wrap(err, "encode cached user")
	}
	err = fillScript.Run(ctx, c.client,
		[]string{versionKey(u.ID), userKey(u.ID)},
		strconv.FormatInt(version, 10), raw, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return errs.Wrapf(err, "redis fill user %d", u.ID)
	}
	return nil
}

// Invalidate bumps the version before deleting so that fills started earlier
// are refused.
func (c *RedisUserCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Incr(ctx, versionKey(id)).Err(); err != nil {
		return errs.Wrapf(err, "redis bump user version %d", id)
	}
	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		return errs.Wrapf(err, "redis del user %d", id)
	}
	return nil
}

func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func versionKey(id int64) string {
	return versionKeyPrefix + strconv.FormatInt(id, 10)
}

// NopUserCache always misses. Used when REDIS_ADDR is empty.
type NopUserCache struct{}

func (NopUserCache) Get(context.Context, int64) (*shared.CachedUser, bool, error) {
	return nil, false, nil
}

func (NopUserCache) Version(context.Context, int64) (int64, error) { return 0, nil }

func (NopUserCache) Fill(context.Context, shared.CachedUser, int64) error { return nil }

func (NopUserCache) Invalidate(context.Context, int64) error { return nil }
