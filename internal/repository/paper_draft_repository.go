package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/biocomp/qbank-backend/internal/config"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PaperDraftRepository keeps saved paper selections in redis with a TTL.
type PaperDraftRepository struct {
	rdb *redis.Client
}

// NewPaperDraftRepository creates a new PaperDraftRepository.
func NewPaperDraftRepository(rdb *redis.Client) *PaperDraftRepository {
	return &PaperDraftRepository{rdb: rdb}
}

// Save stores d until its ExpiresAt.
func (r *PaperDraftRepository) Save(ctx context.Context, d *model.PaperDraft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	ttl := time.Until(d.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("draft %s already expired", d.ID)
	}
	return r.rdb.Set(ctx, config.CacheKey.PaperDraftKey(d.ID.String()), payload, ttl).Err()
}

// Get returns ErrNotFound once the draft has expired or was deleted.
func (r *PaperDraftRepository) Get(ctx context.Context, id uuid.UUID) (*model.PaperDraft, error) {
	data, err := r.rdb.Get(ctx, config.CacheKey.PaperDraftKey(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var d model.PaperDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

// Delete returns ErrNotFound when nothing was stored under id.
func (r *PaperDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.rdb.Del(ctx, config.CacheKey.PaperDraftKey(id.String())).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
