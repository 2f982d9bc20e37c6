package pathcache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	core "github.com/elembranch/core"
	"github.com/elembranch/core/encoding"
)

// RedisOptions configures a Redis-backed secondary tier for path
// resolution lookups — useful when several processes resolve paths
// against the same repository and want to share the index rather than
// each warming its own in-process cache from scratch.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultRedisOptions mirrors a typical single-node local Redis setup.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Address: "localhost:6379",
		DB:      0,
		TTL:     24 * time.Hour,
	}
}

// RedisTier is a secondary, out-of-process cache tier for resolved EIDs,
// keyed the same way as the in-process Cache. Every call retries transient
// failures with Fibonacci backoff before giving up.
type RedisTier struct {
	client  *redis.Client
	ttl     time.Duration
	retries uint64
}

// NewRedisTier connects to the Redis instance described by opts.
func NewRedisTier(opts RedisOptions) *RedisTier {
	return &RedisTier{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Address,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		ttl:     opts.TTL,
		retries: 5,
	}
}

func redisKey(k Key) string {
	return fmt.Sprintf("pathcache:%s:%s", k.BranchID, k.RRPath)
}

// Get resolves key against Redis, retrying transient errors. A cache miss
// (redis.Nil) is reported as ok=false with a nil error, not a failure.
func (t *RedisTier) Get(ctx context.Context, key Key) (eid core.EID, ok bool, err error) {
	b := retry.NewFibonacci(50 * time.Millisecond)
	err = retry.Do(ctx, retry.WithMaxRetries(t.retries, b), func(ctx context.Context) error {
		s, gerr := t.client.Get(ctx, redisKey(key)).Result()
		if gerr == redis.Nil {
			ok = false
			return nil
		}
		if gerr != nil {
			if isTransientRedisErr(gerr) {
				return retry.RetryableError(gerr)
			}
			return gerr
		}
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return perr
		}
		eid = core.EID(n)
		ok = true
		return nil
	})
	if err != nil {
		slog.Warn("pathcache: redis get failed, falling back to linear resolution", "key", key, "error", err)
		return core.NoEID, false, err
	}
	return eid, ok, nil
}

// Set stores key -> eid in Redis with the configured TTL, retrying
// transient errors.
func (t *RedisTier) Set(ctx context.Context, key Key, eid core.EID) error {
	b := retry.NewFibonacci(50 * time.Millisecond)
	return retry.Do(ctx, retry.WithMaxRetries(t.retries, b), func(ctx context.Context) error {
		err := t.client.Set(ctx, redisKey(key), strconv.Itoa(int(eid)), t.ttl).Err()
		if err != nil && isTransientRedisErr(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// SetStruct stores an arbitrary marshalable value, for callers layering
// additional metadata (e.g. resolution timestamps) onto the cache entry
// rather than a bare EID. Uses the package-wide default marshaler so
// callers can swap encodings by replacing encoding.BlobMarshaler.
func (t *RedisTier) SetStruct(ctx context.Context, key Key, value any) error {
	payload, err := encoding.Marshal(value)
	if err != nil {
		return err
	}
	b := retry.NewFibonacci(50 * time.Millisecond)
	return retry.Do(ctx, retry.WithMaxRetries(t.retries, b), func(ctx context.Context) error {
		err := t.client.Set(ctx, redisKey(key), payload, t.ttl).Err()
		if err != nil && isTransientRedisErr(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func isTransientRedisErr(err error) bool {
	if err == nil || err == redis.Nil {
		return false
	}
	// Every error other than redis.Nil is treated as worth one more round
	// trip: go-redis surfaces network/pool exhaustion errors as plain
	// wrapped errors rather than a typed taxonomy, so none is singled out
	// as permanent.
	return true
}
