package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/store"
)

const HistoryKey = "meterCalculations"

func lastCalculationKey(visitor string) string {
	return "lastCalculation:" + visitor
}

// CalculationRepo keeps the bounded calculation history and per-visitor autofill snapshots.
type CalculationRepo struct {
	store store.Store
	limit int
}

func NewCalculationRepo(s store.Store, limit int) *CalculationRepo {
	return &CalculationRepo{store: s, limit: limit}
}

// Record appends to the history and replaces the visitor's last snapshot.
func (r *CalculationRepo) Record(ctx context.Context, visitor string, c models.Calculation) error {
	if err := r.store.Append(ctx, HistoryKey, c, r.limit); err != nil {
		return fmt.Errorf("save calculation history: %w", err)
	}
	if visitor == "" {
		return nil
	}
	if err := r.store.Put(ctx, lastCalculationKey(visitor), c); err != nil {
		return fmt.Errorf("save last calculation: %w", err)
	}
	return nil
}

func (r *CalculationRepo) History(ctx context.Context) ([]models.Calculation, error) {
	items, err := r.store.List(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	out := make([]models.Calculation, 0, len(items))
	for _, raw := range items {
		var c models.Calculation
		if err := json.Unmarshal(raw, &c); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Last returns nil when the visitor has no snapshot.
func (r *CalculationRepo) Last(ctx context.Context, visitor string) (*models.Calculation, error) {
	if visitor == "" {
		return nil, nil
	}
	var c models.Calculation
	found, err := r.store.Get(ctx, lastCalculationKey(visitor), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// Clear drops the history and the visitor's snapshot.
func (r *CalculationRepo) Clear(ctx context.Context, visitor string) error {
	if err := r.store.Delete(ctx, HistoryKey); err != nil {
		return err
	}
	if visitor == "" {
		return nil
	}
	return r.store.Delete(ctx, lastCalculationKey(visitor))
}
