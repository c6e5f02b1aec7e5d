package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/store"
)

// PendingKey is the store list holding unsent records of one form kind.
func PendingKey(kind models.FormKind) string {
	return "pending:" + string(kind)
}

type PendingRepo struct {
	store store.Store
	limit int
}

func NewPendingRepo(s store.Store, limit int) *PendingRepo {
	return &PendingRepo{store: s, limit: limit}
}

func (r *PendingRepo) Add(ctx context.Context, rec models.PendingRecord) error {
	if err := r.store.Append(ctx, PendingKey(rec.Kind), rec, r.limit); err != nil {
		return fmt.Errorf("save pending %s: %w", rec.Kind, err)
	}
	return nil
}

// StoredPending pairs a record with its exact stored bytes so it can be removed later.
type StoredPending struct {
	Record models.PendingRecord
	raw    json.RawMessage
}

func (r *PendingRepo) List(ctx context.Context, kind models.FormKind) ([]StoredPending, error) {
	items, err := r.store.List(ctx, PendingKey(kind))
	if err != nil {
		return nil, err
	}
	out := make([]StoredPending, 0, len(items))
	for _, raw := range items {
		var rec models.PendingRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		out = append(out, StoredPending{Record: rec, raw: raw})
	}
	return out, nil
}

func (r *PendingRepo) Remove(ctx context.Context, kind models.FormKind, p StoredPending) error {
	return r.store.Remove(ctx, PendingKey(kind), p.raw)
}

func (r *PendingRepo) Count(ctx context.Context, kind models.FormKind) (int, error) {
	items, err := r.store.List(ctx, PendingKey(kind))
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
