package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

const keyPrefix = "scamguard:assessment:"

// Config holds Redis connection settings.
type Config struct {
	Addr        string
	Password    string
	DB          int
	TTL         time.Duration
	DialTimeout time.Duration
}

// NewClient builds a client and checks the server answers.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// AssessmentCache implements port.AssessmentCache on Redis. Entries expire
// after the configured TTL; zero keeps them forever.
type AssessmentCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewAssessmentCache creates a new Redis-backed assessment cache.
func NewAssessmentCache(client goredis.UniversalClient, ttl time.Duration) *AssessmentCache {
	return &AssessmentCache{client: client, ttl: ttl}
}

// Get implements port.AssessmentCache. A missing key is a miss, not an error.
func (c *AssessmentCache) Get(ctx context.Context, key string) (valueobject.RiskAssessment, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return valueobject.RiskAssessment{}, false, nil
		}
		return valueobject.RiskAssessment{}, false, fmt.Errorf("failed to get assessment from Redis: %w", err)
	}

	var assessment valueobject.RiskAssessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return valueobject.RiskAssessment{}, false, fmt.Errorf("failed to unmarshal cached assessment: %w", err)
	}
	return assessment, true, nil
}

// Set implements port.AssessmentCache.
func (c *AssessmentCache) Set(ctx context.Context, key string, assessment valueobject.RiskAssessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store assessment in Redis: %w", err)
	}
	return nil
}
