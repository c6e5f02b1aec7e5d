package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
)

var ErrSyncRunning = errors.New("sync already running")

type SyncResult struct {
	Kind   models.FormKind `json:"kind"`
	Synced int             `json:"synced"`
	Failed int             `json:"failed"`
}

// SyncService replays pending records to the backend. Files are gone, so only text fields are sent.
type SyncService struct {
	backend Poster
	pending *repository.PendingRepo
	log     *logrus.Entry
	mu      sync.Mutex
}

func NewSyncService(b Poster, pending *repository.PendingRepo, log *logrus.Logger) *SyncService {
	return &SyncService{backend: b, pending: pending, log: log.WithField("component", "sync")}
}

// Sync replays every pending record once, to the backend it was captured for or base
// for records without one. Only records the backend accepted are removed.
func (s *SyncService) Sync(ctx context.Context, base string) ([]SyncResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncRunning
	}
	defer s.mu.Unlock()

	results := make([]SyncResult, 0, len(models.BackendKinds))
	for _, kind := range models.BackendKinds {
		res, err := s.syncKind(ctx, base, kind)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *SyncService) syncKind(ctx context.Context, base string, kind models.FormKind) (SyncResult, error) {
	res := SyncResult{Kind: kind}
	records, err := s.pending.List(ctx, kind)
	if err != nil {
		return res, err
	}
	for _, p := range records {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		created, _ := time.Parse(time.RFC3339, p.Record.Timestamp)
		sub := models.NewSubmission(kind, p.Record.Endpoint, p.Record.Fields, nil, created)

		target := base
		if p.Record.Base != "" {
			target = p.Record.Base
		}
		log := s.log.WithFields(logrus.Fields{"kind": kind, "id": p.Record.ID, "url": target + sub.Endpoint})

		env, err := s.backend.PostMultipart(ctx, target+sub.Endpoint, sub)
		if err != nil || env.Refused() {
			res.Failed++
			log.WithError(err).Debug("replay failed, keeping record")
			continue
		}
		if err := s.pending.Remove(ctx, kind, p); err != nil {
			// The backend already has it. The next run will send it again.
			log.WithError(err).Error("replayed record could not be removed, it will be duplicated on the next sync")
			return res, err
		}
		res.Synced++
	}
	if len(records) > 0 {
		s.log.WithFields(logrus.Fields{"kind": kind, "synced": res.Synced, "failed": res.Failed}).Info("pending records replayed")
	}
	return res, nil
}

// Pending lists every stored record grouped by form kind.
func (s *SyncService) Pending(ctx context.Context) (map[models.FormKind][]models.PendingRecord, error) {
	out := make(map[models.FormKind][]models.PendingRecord, len(models.BackendKinds))
	for _, kind := range models.BackendKinds {
		records, err := s.pending.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		list := make([]models.PendingRecord, 0, len(records))
		for _, p := range records {
			list = append(list, p.Record)
		}
		out[kind] = list
	}
	return out, nil
}

// Run syncs on every tick until ctx is done. A run still in progress makes the tick a no-op.
func (s *SyncService) Run(ctx context.Context, base string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sync(ctx, base); err != nil && !errors.Is(err, ErrSyncRunning) && ctx.Err() == nil {
				s.log.WithError(err).Warn("periodic sync failed")
			}
		}
	}
}
