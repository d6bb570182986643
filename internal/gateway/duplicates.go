package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fingerprint derives a stable card fingerprint for duplicate detection.
// Only the digest ever leaves the gateway layer.
func Fingerprint(merchantID, cardNumber string) string {
	sum := sha256.Sum256([]byte(merchantID + ":" + cardNumber))
	return hex.EncodeToString(sum[:])
}

// DuplicateChecker records card fingerprints and reports repeats. Seen
// returns true when the fingerprint was already recorded within the
// checker's retention window.
type DuplicateChecker interface {
	Seen(ctx context.Context, fingerprint string) (bool, error)
}

// MemoryDuplicateChecker keeps fingerprints in process memory.
type MemoryDuplicateChecker struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
}

func NewMemoryDuplicateChecker(ttl time.Duration) *MemoryDuplicateChecker {
	return &MemoryDuplicateChecker{
		ttl:  ttl,
		seen: map[string]time.Time{},
	}
}

func (c *MemoryDuplicateChecker) Seen(_ context.Context, fingerprint string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if at, ok := c.seen[fingerprint]; ok && (c.ttl == 0 || now.Sub(at) < c.ttl) {
		return true, nil
	}
	c.seen[fingerprint] = now
	return false, nil
}

// RedisDuplicateChecker shares fingerprints across instances through Redis.
type RedisDuplicateChecker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDuplicateChecker(client *redis.Client, ttl time.Duration) *RedisDuplicateChecker {
	return &RedisDuplicateChecker{client: client, ttl: ttl}
}

func (c *RedisDuplicateChecker) Seen(ctx context.Context, fingerprint string) (bool, error) {
	set, err := c.client.SetNX(ctx, "dropin:card-fingerprint:"+fingerprint, 1, c.ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
