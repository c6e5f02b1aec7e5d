package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/backend"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/store"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

const testBase = "http://backend.test"

type banner struct {
	Kind BannerKind
	Text string
}

type recordingView struct {
	banners []banner
	busy    []bool
	resets  int
}

func (v *recordingView) ShowBanner(kind BannerKind, text string) {
	v.banners = append(v.banners, banner{kind, text})
}
func (v *recordingView) SetBusy(b bool) { v.busy = append(v.busy, b) }
func (v *recordingView) Reset()         { v.resets++ }

func (v *recordingView) last() banner {
	if len(v.banners) == 0 {
		return banner{}
	}
	return v.banners[len(v.banners)-1]
}

// fakePoster answers with env/err, or per-call via respond.
type fakePoster struct {
	mu      sync.Mutex
	calls   []*models.FormSubmission
	urls    []string
	env     *backend.Envelope
	err     error
	respond func(sub *models.FormSubmission) (*backend.Envelope, error)
}

func (f *fakePoster) PostMultipart(_ context.Context, url string, sub *models.FormSubmission) (*backend.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub)
	f.urls = append(f.urls, url)
	if f.respond != nil {
		return f.respond(sub)
	}
	if f.env == nil && f.err == nil {
		return &backend.Envelope{}, nil
	}
	return f.env, f.err
}

func success(ok bool) *backend.Envelope {
	return &backend.Envelope{Success: &ok}
}

var errDown = &backend.NetworkError{URL: testBase, Err: errors.New("connection refused")}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	cfg     *config.Config
	store   store.Store
	pending *repository.PendingRepo
	poster  *fakePoster
	forms   *FormService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	s := store.NewMemory()
	pending := repository.NewPendingRepo(s, cfg.PendingCap)
	poster := &fakePoster{}
	return &fixture{
		cfg:     cfg,
		store:   s,
		pending: pending,
		poster:  poster,
		forms:   NewFormService(poster, pending, validation.New(), cfg, quietLogger()),
	}
}

func (fx *fixture) pendingCount(t *testing.T, kind models.FormKind) int {
	t.Helper()
	n, err := fx.pending.Count(context.Background(), kind)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// pngData is a 1x1 PNG.
var pngData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func image(field, name string) models.File {
	return models.File{Field: field, Name: name, Type: "image/png", Data: pngData}
}
