package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/web"
)

// envelope is the JSON answer of every form endpoint.
type envelope struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
	Data    any                     `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "error", Message: msg})
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}

// wantsJSON reports whether the client asked for a JSON answer instead of a page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// pageView collects what a service wants the user to see, for the page re-render.
type pageView struct {
	banner *web.Banner
	busy   bool
	reset  bool
}

func (v *pageView) ShowBanner(kind service.BannerKind, text string) {
	v.banner = &web.Banner{Kind: string(kind), Text: text}
}

func (v *pageView) SetBusy(busy bool) { v.busy = busy }

func (v *pageView) Reset() { v.reset = true }

// Pages renders templates with the data shared by every page.
type Pages struct {
	tpl   *web.Templates
	cfg   *config.Config
	quick string
	log   *logrus.Entry
}

func NewPages(tpl *web.Templates, cfg *config.Config, contact *service.ContactService, log *logrus.Logger) *Pages {
	return &Pages{tpl: tpl, cfg: cfg, quick: contact.QuickLink(), log: log.WithField("component", "http")}
}

func (p *Pages) page(r *http.Request, title string) *web.Page {
	_, admin := auth.FromRequest(r, p.cfg.SessionSecret)
	return &web.Page{
		Title:     title,
		Hostal:    p.cfg.HostalName,
		Admin:     admin,
		QuickLink: p.quick,
		Backend:   mw.Override(r.Context()),
	}
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, page *web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.tpl.Render(w, name, page); err != nil {
		p.log.WithError(err).WithField("page", name).Error("template render failed")
	}
}

// respond answers a form submit as JSON or as the re-rendered page.
func (p *Pages) respond(w http.ResponseWriter, r *http.Request, name string, page *web.Page, view *pageView, form map[string]string, out *service.Outcome, err error) {
	status := http.StatusOK
	var ve *validation.Errors
	switch {
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
	case err != nil:
		status = http.StatusInternalServerError
	case out.Status == service.StatusSavedLocally:
		status = http.StatusAccepted
	}

	if wantsJSON(r) {
		env := envelope{}
		switch {
		case ve != nil:
			env.Status, env.Message, env.Errors = "error", ve.First(), ve.All()
		case err != nil:
			env.Status = "error"
			if view.banner != nil {
				env.Message = view.banner.Text
			}
		default:
			env.Status, env.Message, env.Data = string(out.Status), out.Message, out.Data
		}
		writeJSON(w, status, env)
		return
	}

	page.Banner = view.banner
	page.Form = form
	if view.reset {
		page.Form = nil
	}
	if out != nil && page.Data == nil {
		page.Data = out.Data
	}
	p.render(w, status, name, page)
}

// readFiles loads the uploads of the given multipart fields. Empty file inputs are skipped.
func readFiles(r *http.Request, fields ...string) ([]models.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var out []models.File
	for _, field := range fields {
		for _, fh := range r.MultipartForm.File[field] {
			if fh.Filename == "" && fh.Size == 0 {
				continue
			}
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			out = append(out, models.File{
				Field: field,
				Name:  fh.Filename,
				Type:  validation.SniffType(data),
				Data:  data,
			})
		}
	}
	return out, nil
}

// formValues copies the named text fields for re-rendering the form.
func formValues(r *http.Request, names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = r.FormValue(n)
	}
	return m
}
