package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// jobTTL keeps abandoned jobs from accumulating in redis forever.
const jobTTL = 24 * time.Hour

// RedisTracker stores job state in redis under "job:<id>", so progress
// survives process restarts and can be read by other instances.
type RedisTracker struct {
	client *redis.Client
}

func NewRedisTracker(addr, password string) (*RedisTracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis at %s: %w", addr, err)
	}
	return &RedisTracker{client: client}, nil
}

func (t *RedisTracker) Update(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := t.client.Set(ctx, "job:"+job.ID, data, jobTTL).Err(); err != nil {
		return fmt.Errorf("store job %s: %w", job.ID, err)
	}
	return nil
}

func (t *RedisTracker) Get(ctx context.Context, id string) (Job, error) {
	data, err := t.client.Get(ctx, "job:"+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("load job %s: %w", id, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("decode job %s: %w", id, err)
	}
	return job, nil
}
