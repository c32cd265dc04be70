package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"dermamatch/internal/domain"
)

// RecommendationCache guarda el shortlist rankeado por arquetipo. El
// catalogo cambia solo via seed, asi que un TTL corto alcanza.
type RecommendationCache interface {
	Get(skinType domain.SkinType) ([]domain.ScoredProduct, bool)
	Set(skinType domain.SkinType, results []domain.ScoredProduct)
	Invalidate(skinType domain.SkinType)
}

type memoryRecommendationCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[domain.SkinType]memoryCacheEntry
}

type memoryCacheEntry struct {
	results   []domain.ScoredProduct
	expiresAt time.Time
}

func NewMemoryRecommendationCache(ttl time.Duration) RecommendationCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryRecommendationCache{
		ttl:   ttl,
		items: make(map[domain.SkinType]memoryCacheEntry),
	}
}

func (c *memoryRecommendationCache) Get(skinType domain.SkinType) ([]domain.ScoredProduct, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[skinType]
	if !ok {
		return nil, false
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, skinType)
		return nil, false
	}
	return entry.results, true
}

func (c *memoryRecommendationCache) Set(skinType domain.SkinType, results []domain.ScoredProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[skinType] = memoryCacheEntry{
		results:   results,
		expiresAt: time.Now().UTC().Add(c.ttl),
	}
}

func (c *memoryRecommendationCache) Invalidate(skinType domain.SkinType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, skinType)
}

type redisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) RecommendationCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisRecommendationCache{
		client: client,
		ttl:    ttl,
		prefix: "reco:shortlist:",
	}
}

// Errores de redis degradan a cache miss: la recomendacion se recalcula.
func (c *redisRecommendationCache) Get(skinType domain.SkinType) ([]domain.ScoredProduct, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	payload, err := c.client.Get(ctx, c.prefix+string(skinType)).Bytes()
	if err != nil {
		return nil, false
	}
	var results []domain.ScoredProduct
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *redisRecommendationCache) Set(skinType domain.SkinType, results []domain.ScoredProduct) {
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.prefix+string(skinType), payload, c.ttl).Err()
}

func (c *redisRecommendationCache) Invalidate(skinType domain.SkinType) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = c.client.Del(ctx, c.prefix+string(skinType)).Err()
}
