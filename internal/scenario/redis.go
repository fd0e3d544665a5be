package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "carbon-forecast:project:"

// RedisStore keeps one Redis hash per project, mapping scenario ids to
// JSON-encoded scenarios.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisStoreWithClient(rdb)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func projectKey(projectID string) string {
	return keyPrefix + projectID + ":scenarios"
}

func (r *RedisStore) Save(ctx context.Context, projectID string, s Scenario) (Scenario, error) {
	stored, err := prepareNew(projectID, s, r.now())
	if err != nil {
		return Scenario{}, err
	}
	if err := r.put(ctx, stored); err != nil {
		return Scenario{}, err
	}
	return stored, nil
}

func (r *RedisStore) List(ctx context.Context, projectID string) ([]Scenario, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrMissingProject
	}

	values, err := r.client.HGetAll(ctx, projectKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	scenarios := make([]Scenario, 0, len(values))
	for id, value := range values {
		var s Scenario
		if err := json.Unmarshal([]byte(value), &s); err != nil {
			return nil, fmt.Errorf("failed to decode scenario %s: %w", id, err)
		}
		scenarios = append(scenarios, s)
	}
	sortScenarios(scenarios)
	return scenarios, nil
}

func (r *RedisStore) Get(ctx context.Context, projectID, scenarioID string) (Scenario, error) {
	value, err := r.client.HGet(ctx, projectKey(projectID), scenarioID).Result()
	if errors.Is(err, redis.Nil) {
		return Scenario{}, ErrNotFound
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to get scenario: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode scenario %s: %w", scenarioID, err)
	}
	return s, nil
}

func (r *RedisStore) Update(ctx context.Context, projectID, scenarioID string, s Scenario) (Scenario, error) {
	existing, err := r.Get(ctx, projectID, scenarioID)
	if err != nil {
		return Scenario{}, err
	}
	updated := prepareUpdate(existing, s, r.now())
	if err := r.put(ctx, updated); err != nil {
		return Scenario{}, err
	}
	return updated, nil
}

func (r *RedisStore) Delete(ctx context.Context, projectID, scenarioID string) error {
	removed, err := r.client.HDel(ctx, projectKey(projectID), scenarioID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) put(ctx context.Context, s Scenario) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := r.client.HSet(ctx, projectKey(s.ProjectID), s.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store scenario: %w", err)
	}
	return nil
}
