package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/dashboard"
	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
)

type DashboardHandler struct {
	*Pages
	dashSvc *service.DashboardService
}

func NewDashboardHandler(p *Pages, dashSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Pages: p, dashSvc: dashSvc}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	entries, err := h.dashSvc.Overview(r.Context(), mw.BaseURL(r.Context()))
	if err != nil {
		h.log.WithError(err).Error("overview failed")
		h.render(w, http.StatusInternalServerError, "error", h.page(r, "Error"))
		return
	}
	page := h.page(r, "Administración")
	page.Data = entries
	h.render(w, http.StatusOK, "admin", page)
}

// Dashboard renders one list. A failing backend still yields 200 with the error banner inside the page.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dp, ok := h.load(w, r)
	if !ok {
		return
	}
	page := h.page(r, dp.Spec.Title)
	page.Data = dp
	h.render(w, http.StatusOK, "dashboard", page)
}

func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "xlsx" && format != "json" {
		http.NotFound(w, r)
		return
	}
	dp, ok := h.load(w, r)
	if !ok {
		return
	}
	if dp.Error != "" {
		writeError(w, http.StatusBadGateway, dp.Error)
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", dp.Spec.Name, time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	var err error
	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = dashboard.WriteXLSX(w, dp)
	case "json":
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		err = dashboard.WriteJSON(w, dp)
	}
	if err != nil {
		h.log.WithError(err).WithField("dashboard", dp.Spec.Name).Error("export failed")
	}
}

func (h *DashboardHandler) load(w http.ResponseWriter, r *http.Request) (*dashboard.Page, bool) {
	filters := make(map[string]string)
	for k, v := range r.URL.Query() {
		if k != mw.BackendQueryParam && len(v) > 0 {
			filters[k] = v[0]
		}
	}
	dp, err := h.dashSvc.Page(r.Context(), chi.URLParam(r, "name"), mw.BaseURL(r.Context()), filters)
	if errors.Is(err, service.ErrUnknownDashboard) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.log.WithError(err).Error("dashboard failed")
		h.render(w, http.StatusInternalServerError, "error", h.page(r, "Error"))
		return nil, false
	}
	return dp, true
}
