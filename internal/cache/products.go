package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/golang/snappy"
	redis "github.com/redis/go-redis/v9"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"go.uber.org/zap"
)

const (
	defaultProductListTTL    = 30 * time.Second
	productListKeyPrefix     = "storefront:products:lists:"
	productListGenerationKey = "storefront:products:generation"
)

// ProductListCache holds rendered product lists keyed by
// catalogdomain.ListRequest.CacheKey. Any catalog write invalidates all lists.
//
// Invalidate bumps the generation. Set stores a list only when the generation
// read before loading it is still current, so a list loaded before a write
// can never outlive that write's invalidation.
type ProductListCache interface {
	Get(ctx context.Context, key string) ([]catalogdomain.Product, bool)
	Generation(ctx context.Context) uint64
	Set(ctx context.Context, generation uint64, key string, products []catalogdomain.Product)
	Invalidate(ctx context.Context)
}

type memoryProductCache struct {
	mu         sync.Mutex
	generation uint64
	lists      Cache[string, []catalogdomain.Product]
	ttl        time.Duration
}

// NewMemoryProductListCache keeps lists in process memory.
func NewMemoryProductListCache(ttl time.Duration) ProductListCache {
	if ttl <= 0 {
		ttl = defaultProductListTTL
	}
	return &memoryProductCache{lists: NewTTLCache[string, []catalogdomain.Product](), ttl: ttl}
}

func (c *memoryProductCache) Get(_ context.Context, key string) ([]catalogdomain.Product, bool) {
	products, ok := c.lists.Get(key)
	if !ok {
		return nil, false
	}
	return cloneProducts(products), true
}

func (c *memoryProductCache) Generation(context.Context) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *memoryProductCache) Set(_ context.Context, generation uint64, key string, products []catalogdomain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.lists.Set(key, cloneProducts(products), c.ttl)
}

func (c *memoryProductCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lists.Purge()
}

// redisProductCache stores snappy-compressed JSON lists as fields of one hash
// per generation. Invalidate moves readers to a fresh hash; writes aimed at an
// older generation land in a hash nobody reads and expire with it.
type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisProductListCache(client *redis.Client, ttl time.Duration, log *zap.Logger) ProductListCache {
	if ttl <= 0 {
		ttl = defaultProductListTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &redisProductCache{client: client, ttl: ttl, log: log}
}

func productListKey(generation uint64) string {
	return productListKeyPrefix + strconv.FormatUint(generation, 10)
}

func (c *redisProductCache) generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, productListGenerationKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisProductCache) Get(ctx context.Context, key string) ([]catalogdomain.Product, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("product cache generation read failed", zap.Error(err))
		return nil, false
	}
	raw, err := c.client.HGet(ctx, productListKey(gen), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	products, err := decodeProducts(raw)
	if err != nil {
		c.log.Warn("product cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return products, true
}

// Generation reports math.MaxUint64 when redis cannot be read, which no
// stored generation ever matches.
func (c *redisProductCache) Generation(ctx context.Context) uint64 {
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("product cache generation read failed", zap.Error(err))
		return math.MaxUint64
	}
	return gen
}

func (c *redisProductCache) Set(ctx context.Context, generation uint64, key string, products []catalogdomain.Product) {
	if generation == math.MaxUint64 {
		return
	}
	payload, err := encodeProducts(products)
	if err != nil {
		c.log.Warn("product cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	hashKey := productListKey(generation)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hashKey, key, payload)
	pipe.Expire(ctx, hashKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, productListGenerationKey).Err(); err != nil {
		c.log.Warn("product cache invalidate failed", zap.Error(err))
	}
}

func encodeProducts(products []catalogdomain.Product) ([]byte, error) {
	if products == nil {
		products = []catalogdomain.Product{}
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, payload), nil
}

func decodeProducts(raw []byte) ([]catalogdomain.Product, error) {
	payload, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("snappy: %w", err)
	}
	var products []catalogdomain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func cloneProducts(in []catalogdomain.Product) []catalogdomain.Product {
	out := make([]catalogdomain.Product, len(in))
	copy(out, in)
	return out
}
