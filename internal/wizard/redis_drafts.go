package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const draftKeyPrefix = "resqr:wizard:"

// RedisDrafts stores drafts as JSON values that expire after ttl of
// inactivity.
type RedisDrafts struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisDrafts(client *redis.Client, ttl time.Duration) *RedisDrafts {
	return &RedisDrafts{client: client, ttl: ttl}
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func (r *RedisDrafts) Save(ctx context.Context, w *Wizard) error {
	w.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := r.client.Set(ctx, draftKey(w.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", w.ID, err)
	}
	return nil
}

func (r *RedisDrafts) Load(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	data, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}

	var w Wizard
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &w, nil
}

func (r *RedisDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}
