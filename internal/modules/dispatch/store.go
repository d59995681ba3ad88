// README: Dispatch lock and driver claims backed by Redis (SET NX lock, busy-driver set).
package dispatch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
	wait  time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Store{redis: redis, ttl: ttl, wait: lockWait}
}

// Lock retries SET NX until it wins, ctx ends, or the wait budget runs out (ErrLockBusy).
func (s *Store) Lock(ctx context.Context) (func(context.Context) error, error) {
	token := newToken()
	deadline := time.Now().Add(s.wait)
	for {
		ok, err := s.redis.SetNX(ctx, lockKey, token, s.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func(ctx context.Context) error {
				return releaseScript.Run(ctx, s.redis, []string{lockKey}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// Holder returns the token currently holding the lock, or "" when free.
func (s *Store) Holder(ctx context.Context) (string, error) {
	val, err := s.redis.Get(ctx, lockKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Claimed returns the ids of drivers currently on a trip dispatched by any instance.
func (s *Store) Claimed(ctx context.Context) (map[int64]bool, error) {
	members, err := s.redis.SMembers(ctx, busyDriversKey).Result()
	if err != nil {
		return nil, err
	}
	claimed := make(map[int64]bool, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad member %q in %s: %w", m, busyDriversKey, err)
		}
		claimed[id] = true
	}
	return claimed, nil
}

func (s *Store) Claim(ctx context.Context, driverID int64) error {
	return s.redis.SAdd(ctx, busyDriversKey, strconv.FormatInt(driverID, 10)).Err()
}

func (s *Store) Unclaim(ctx context.Context, driverID int64) error {
	return s.redis.SRem(ctx, busyDriversKey, strconv.FormatInt(driverID, 10)).Err()
}

func newToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
