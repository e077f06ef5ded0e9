package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.Client used by the assessment cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache stores computed assessments in Redis keyed by the request parameters,
// so repeated lookups for the same location skip the upstream APIs.
type Cache struct {
	client RedisClient
	ttl    time.Duration
	log    *slog.Logger
}

// NewCache creates an assessment cache with the given TTL.
func NewCache(client RedisClient, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Get returns the cached assessment for the request, or false on a miss.
// Redis failures are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, req models.AssessmentRequest) (*models.Assessment, bool) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("assessment cache lookup failed", "error", err)
		}
		return nil, false
	}

	var assessment models.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		c.log.Warn("discarding malformed cache entry", "key", Key(req), "error", err)
		return nil, false
	}
	return &assessment, true
}

// Put stores an assessment under the request key. Failures are logged, not returned.
func (c *Cache) Put(ctx context.Context, req models.AssessmentRequest, assessment *models.Assessment) {
	data, err := json.Marshal(assessment)
	if err != nil {
		c.log.Warn("failed to serialize assessment for cache", "error", err)
		return
	}
	if err := c.client.Set(ctx, Key(req), data, c.ttl).Err(); err != nil {
		c.log.Warn("assessment cache write failed", "error", err)
	}
}

// Key builds the cache key for a request. Coordinates are rounded to four
// decimal places (roughly 11 meters) so nearby repeat queries share an entry.
func Key(req models.AssessmentRequest) string {
	return fmt.Sprintf("floodwatch:assessment:%.4f:%.4f:%d:%s:%s",
		req.Location.Latitude, req.Location.Longitude, req.Days, req.Sensitivity, sourceTag(req.Sources))
}

func sourceTag(s models.SourceSet) string {
	tag := make([]byte, 4)
	for i, enabled := range []bool{s.Satellite, s.Weather, s.Elevation, s.Historical} {
		if enabled {
			tag[i] = '1'
		} else {
			tag[i] = '0'
		}
	}
	return string(tag)
}
