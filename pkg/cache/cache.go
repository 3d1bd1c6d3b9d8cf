package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache layers a short-lived in-process map over redis. The local layer
// absorbs bursts of identical filter requests, redis shares results across
// storefront replicas.
type Cache struct {
	client   *redis.Client
	ctx      context.Context
	mu       sync.Mutex
	memCache map[string]localEntry
	localTtl time.Duration
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{
		client:   rdb,
		ctx:      context.Background(),
		memCache: map[string]localEntry{},
		localTtl: time.Minute,
	}
}

func (c *Cache) Get(key string, out any) error {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && time.Now().Before(local.expires) {
		c.mu.Unlock()
		return sonic.Unmarshal(local.data, out)
	}
	if found {
		delete(c.memCache, key)
	}
	c.mu.Unlock()

	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err = sonic.Unmarshal(data, out); err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(c.localTtl), data: data}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(c.localTtl), data: data}
	c.mu.Unlock()
	return c.client.Set(c.ctx, key, data, expiration).Err()
}

func (c *Cache) Close() {
	c.client.Close()
}

// RequestKey derives a stable cache key from any serializable request.
// ConfigStd sorts map keys so equal requests always hash the same.
func RequestKey(prefix string, req any) (string, error) {
	data, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("%s:%x", prefix, h.Sum64()), nil
}
