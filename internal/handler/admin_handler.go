package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
)

// Pinger reports whether local storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AdminHandler struct {
	syncSvc *service.SyncService
	calc    *service.CalculatorService
	store   Pinger
}

func NewAdminHandler(syncSvc *service.SyncService, calc *service.CalculatorService, store Pinger) *AdminHandler {
	return &AdminHandler{syncSvc: syncSvc, calc: calc, store: store}
}

// Pending lists the submissions saved locally while the backend was down.
func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.syncSvc.Pending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: pending})
}

func (h *AdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	results, err := h.syncSvc.Sync(r.Context(), mw.BaseURL(r.Context()))
	if errors.Is(err, service.ErrSyncRunning) {
		writeError(w, http.StatusConflict, "Ya hay una sincronización en curso")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !wantsJSON(r) {
		http.Redirect(w, r, AdminHome, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: results})
}

// History is the local calculation log kept by the calculator.
func (h *AdminHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.calc.History(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: history})
}

func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "store": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
