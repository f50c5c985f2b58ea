package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fszuberski/scoreboard/internal/domain/model"
	"github.com/fszuberski/scoreboard/pkg/metrics"
)

const backendRedis = "redis"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	KeyPrefix    string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns sensible defaults for a local Redis.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "localhost:6379",
		KeyPrefix:    "scoreboard",
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// RedisStore implements Store on Redis.
// Data structure:
//   - {prefix}:matches -> hash of match id -> JSON encoded match
//
// A single hash keeps Save/Update atomic through HSETNX and a check-and-set
// script, and List is one HGETALL.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultRedisConfig().DialTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisConfig().KeyPrefix
	}
	return &RedisStore{client: client, key: keyPrefix + ":matches"}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// matchRecord is the JSON shape of a stored match.
type matchRecord struct {
	ID        uuid.UUID `json:"id"`
	HomeTeam  string    `json:"home_team"`
	HomeScore int       `json:"home_score"`
	AwayTeam  string    `json:"away_team"`
	AwayScore int       `json:"away_score"`
	StartTime time.Time `json:"start_time"`
}

func encodeMatch(m model.Match) ([]byte, error) {
	return json.Marshal(matchRecord{
		ID:        m.ID(),
		HomeTeam:  m.HomeTeamScore().TeamName(),
		HomeScore: m.HomeTeamScore().Score(),
		AwayTeam:  m.AwayTeamScore().TeamName(),
		AwayScore: m.AwayTeamScore().Score(),
		StartTime: m.StartTime(),
	})
}

func decodeMatch(raw string) (model.Match, error) {
	var rec matchRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return model.Match{}, fmt.Errorf("decode match: %w", err)
	}
	home, err := model.NewTeamScore(rec.HomeTeam, rec.HomeScore)
	if err != nil {
		return model.Match{}, fmt.Errorf("decode match %s: %w", rec.ID, err)
	}
	away, err := model.NewTeamScore(rec.AwayTeam, rec.AwayScore)
	if err != nil {
		return model.Match{}, fmt.Errorf("decode match %s: %w", rec.ID, err)
	}
	return model.NewMatch(rec.ID, home, away, rec.StartTime)
}

// Get implements Store.Get.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (model.Match, bool, error) {
	defer observe(backendRedis, "get", time.Now())

	raw, err := s.client.HGet(ctx, s.key, id.String()).Result()
	if errors.Is(err, redis.Nil) {
		return model.Match{}, false, nil
	}
	if err != nil {
		metrics.RecordStoreError(backendRedis, "get")
		return model.Match{}, false, fmt.Errorf("failed to get match: %w", err)
	}
	m, err := decodeMatch(raw)
	if err != nil {
		metrics.RecordStoreError(backendRedis, "get")
		return model.Match{}, false, err
	}
	return m, true, nil
}

// List implements Store.List.
func (s *RedisStore) List(ctx context.Context) ([]model.Match, error) {
	defer observe(backendRedis, "list", time.Now())

	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		metrics.RecordStoreError(backendRedis, "list")
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	out := make([]model.Match, 0, len(all))
	for _, raw := range all {
		m, err := decodeMatch(raw)
		if err != nil {
			metrics.RecordStoreError(backendRedis, "list")
			return nil, err
		}
		out = append(out, m)
	}
	metrics.UpdateStoredMatches(backendRedis, len(out))
	return out, nil
}

// Save implements Store.Save.
func (s *RedisStore) Save(ctx context.Context, m model.Match) error {
	defer observe(backendRedis, "save", time.Now())

	payload, err := encodeMatch(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	created, err := s.client.HSetNX(ctx, s.key, m.ID().String(), payload).Result()
	if err != nil {
		metrics.RecordStoreError(backendRedis, "save")
		return fmt.Errorf("failed to save match: %w", err)
	}
	if !created {
		metrics.RecordStoreError(backendRedis, "save")
		return alreadyExists(m.ID())
	}
	return nil
}

// Replace the field only when it already exists.
var updateIfExistsScript = redis.NewScript(`
	if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
		return 0
	end
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return 1
`)

// Update implements Store.Update.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, m model.Match) error {
	defer observe(backendRedis, "update", time.Now())

	payload, err := encodeMatch(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	replaced, err := updateIfExistsScript.Run(ctx, s.client, []string{s.key}, id.String(), payload).Int()
	if err != nil {
		metrics.RecordStoreError(backendRedis, "update")
		return fmt.Errorf("failed to update match: %w", err)
	}
	if replaced == 0 {
		metrics.RecordStoreError(backendRedis, "update")
		return notFound(id)
	}
	return nil
}

// Remove implements Store.Remove.
func (s *RedisStore) Remove(ctx context.Context, id uuid.UUID) error {
	defer observe(backendRedis, "remove", time.Now())

	if err := s.client.HDel(ctx, s.key, id.String()).Err(); err != nil {
		metrics.RecordStoreError(backendRedis, "remove")
		return fmt.Errorf("failed to remove match: %w", err)
	}
	return nil
}
