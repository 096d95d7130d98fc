// Package redis provides Redis-backed persistence for drafts and session
// snapshots, one JSON value per key plus an index set for listing.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/session"
	goredis "github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix   = "draftflow:draft:"
	sessionKeyPrefix = "draftflow:session:"
	draftIndexKey    = "draftflow:drafts"
)

// Persistence implements persistence.Persistence on a Redis instance.
type Persistence struct {
	client goredis.UniversalClient
}

// NewPersistence connects using a redis:// URL.
func NewPersistence(databaseURL string) (*Persistence, error) {
	opts, err := goredis.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Persistence{client: goredis.NewClient(opts)}, nil
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client goredis.UniversalClient) *Persistence {
	return &Persistence{client: client}
}

func (rp *Persistence) Close(_ context.Context) error {
	return rp.client.Close()
}

func (rp *Persistence) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

func (rp *Persistence) Drafts(ctx context.Context) ([]*models.WorkflowDraft, error) {
	ids, err := rp.client.SMembers(ctx, draftIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	drafts := make([]*models.WorkflowDraft, 0, len(ids))

	for _, id := range ids {
		draft, err := rp.DraftByID(ctx, id)
		if err != nil {
			if persistence.IsNotFound(err) {
				continue // index entry outlived the value
			}

			return nil, err
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func (rp *Persistence) DraftByID(ctx context.Context, id string) (*models.WorkflowDraft, error) {
	body, err := rp.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, persistence.ErrDraftNotFound
		}

		return nil, fmt.Errorf("failed to fetch draft %s: %w", id, err)
	}

	var draft models.WorkflowDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft %s: %w", id, err)
	}

	return &draft, nil
}

func (rp *Persistence) SaveDraft(ctx context.Context, draft *models.WorkflowDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft %s: %w", draft.ID, err)
	}

	pipe := rp.client.TxPipeline()
	pipe.Set(ctx, draftKeyPrefix+draft.ID, data, 0)
	pipe.SAdd(ctx, draftIndexKey, draft.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.ID, err)
	}

	return nil
}

func (rp *Persistence) DeleteDraft(ctx context.Context, id string) error {
	pipe := rp.client.TxPipeline()
	pipe.Del(ctx, draftKeyPrefix+id)
	pipe.SRem(ctx, draftIndexKey, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}

	return nil
}

func (rp *Persistence) SessionByID(ctx context.Context, id string) (*session.Store, error) {
	body, err := rp.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, persistence.ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}

	var store session.Store
	if err := json.Unmarshal(body, &store); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}

	return &store, nil
}

func (rp *Persistence) SaveSession(ctx context.Context, store *session.Store) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", store.ID, err)
	}

	if err := rp.client.Set(ctx, sessionKeyPrefix+store.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", store.ID, err)
	}

	return nil
}
