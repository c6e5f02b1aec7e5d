package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/backend"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

// FallbackMessage is shown when the backend did not take the submission and it was kept locally.
const FallbackMessage = "Guardado localmente. Se enviará cuando el backend esté disponible."

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type Status string

const (
	StatusSent         Status = "sent"
	StatusSavedLocally Status = "saved_locally"
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
	BannerInfo    BannerKind = "info"
)

// View receives every user-visible effect of a submit.
type View interface {
	ShowBanner(kind BannerKind, text string)
	SetBusy(busy bool)
	Reset()
}

type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Form is one kind of user input that posts to the backend.
type Form interface {
	// Check normalizes the input in place and appends every failed rule to errs.
	Check(v *validation.Validator, cfg *config.Config, errs *validation.Errors)
	Submission(now time.Time) *models.FormSubmission
	SentMessage() string
}

// strictForm is implemented by forms whose endpoint must answer {success:true}.
type strictForm interface {
	RequiresSuccess() bool
}

// Poster is the part of the backend client the pipeline needs.
type Poster interface {
	PostMultipart(ctx context.Context, url string, sub *models.FormSubmission) (*backend.Envelope, error)
}

// FormService runs validate -> POST -> local fallback for every backend form.
type FormService struct {
	backend   Poster
	pending   *repository.PendingRepo
	validator *validation.Validator
	cfg       *config.Config
	log       *logrus.Entry
	now       func() time.Time
}

func NewFormService(b Poster, pending *repository.PendingRepo, v *validation.Validator, cfg *config.Config, log *logrus.Logger) *FormService {
	return &FormService{
		backend:   b,
		pending:   pending,
		validator: v,
		cfg:       cfg,
		log:       log.WithField("component", "forms"),
		now:       time.Now,
	}
}

// Submit either posts the whole submission once or stores exactly one PendingRecord.
// A validation failure returns *validation.Errors and touches neither.
func (s *FormService) Submit(ctx context.Context, view View, base string, f Form) (*Outcome, error) {
	view.SetBusy(true)
	defer view.SetBusy(false)

	var errs validation.Errors
	f.Check(s.validator, s.cfg, &errs)
	if errs.Len() > 0 {
		view.ShowBanner(BannerError, errs.First())
		return nil, &errs
	}

	sub := f.Submission(s.now())
	url := base + sub.Endpoint
	log := s.log.WithFields(logrus.Fields{"kind": sub.Kind, "url": url})

	env, err := s.backend.PostMultipart(ctx, url, sub)
	if err == nil {
		if sf, ok := f.(strictForm); ok && sf.RequiresSuccess() && !env.Succeeded() {
			err = &backend.RejectedError{Message: env.Message}
		} else if env.Refused() {
			err = &backend.RejectedError{Message: env.Message}
		}
	}
	if err == nil {
		log.Info("submission sent")
		msg := f.SentMessage()
		view.ShowBanner(BannerSuccess, msg)
		view.Reset()
		return &Outcome{Status: StatusSent, Message: msg}, nil
	}

	log.WithError(err).Warn("backend did not accept submission, saving locally")
	rec := models.PendingFrom(sub, base)
	if perr := s.pending.Add(ctx, rec); perr != nil {
		log.WithError(perr).Error("local fallback failed")
		view.ShowBanner(BannerError, "No se pudo enviar ni guardar localmente. Intenta nuevamente.")
		return nil, fmt.Errorf("submit %s: %w", sub.Kind, perr)
	}
	view.ShowBanner(BannerSuccess, FallbackMessage)
	return &Outcome{Status: StatusSavedLocally, Message: FallbackMessage, Data: map[string]string{"pendingId": rec.ID}}, nil
}

// Validate runs only the checks of f.
func (s *FormService) Validate(f Form) error {
	var errs validation.Errors
	f.Check(s.validator, s.cfg, &errs)
	return errs.Err()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
