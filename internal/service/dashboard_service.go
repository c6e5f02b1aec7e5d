package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/dashboard"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
)

var ErrUnknownDashboard = errors.New("unknown dashboard")

// pendingKinds links each dashboard to the form whose unsent records it would list.
var pendingKinds = map[string]models.FormKind{
	"vouchers":   models.KindVoucher,
	"contadores": models.KindReading,
	"calculos":   models.KindCalculation,
}

type DashboardService struct {
	renderer *dashboard.Renderer
	source   dashboard.Lister
	pending  *repository.PendingRepo
	log      *logrus.Entry
	now      func() time.Time
}

func NewDashboardService(source dashboard.Lister, pending *repository.PendingRepo, log *logrus.Logger) *DashboardService {
	return &DashboardService{
		renderer: dashboard.NewRenderer(source, log),
		source:   source,
		pending:  pending,
		log:      log.WithField("component", "dashboard"),
		now:      time.Now,
	}
}

// Page renders one dashboard. Backend failures are reported inside the page, not as an error.
func (s *DashboardService) Page(ctx context.Context, name, base string, filters map[string]string) (*dashboard.Page, error) {
	spec, ok := dashboard.Lookup(name)
	if !ok {
		return nil, ErrUnknownDashboard
	}
	return s.renderer.Render(ctx, spec, dashboard.Query{Base: base, Filters: filters, Now: s.now()}), nil
}

type OverviewEntry struct {
	Spec    *dashboard.Spec
	Count   int
	Today   int
	Pending int
	Error   string
}

// Overview fetches every dashboard list concurrently. One failing list does not hide the others.
func (s *DashboardService) Overview(ctx context.Context, base string) ([]OverviewEntry, error) {
	specs := dashboard.All()
	entries := make([]OverviewEntry, len(specs))
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		entries[i].Spec = spec
		g.Go(func() error {
			items, err := s.source.GetList(gctx, base+spec.Endpoint)
			if err != nil {
				s.log.WithError(err).WithField("dashboard", spec.Name).Warn("overview fetch failed")
				entries[i].Error = dashboard.LoadErrorMessage
				return nil
			}
			entries[i].Count = len(items)
			entries[i].Today = dashboard.SameDay(items, spec.DateKeys, now)
			return nil
		})
		g.Go(func() error {
			n, err := s.pending.Count(gctx, pendingKinds[spec.Name])
			if err != nil {
				return err
			}
			entries[i].Pending = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
