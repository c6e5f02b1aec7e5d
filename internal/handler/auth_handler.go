package handler

import (
	"errors"
	"net/http"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/web"
)

// AdminHome is where a successful login lands.
const AdminHome = "/admin"

type AuthHandler struct {
	*Pages
	cfg     *config.Config
	authSvc *service.AuthService
}

func NewAuthHandler(p *Pages, cfg *config.Config, authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{Pages: p, cfg: cfg, authSvc: authSvc}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromRequest(r, h.cfg.SessionSecret); ok {
		http.Redirect(w, r, AdminHome, http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login", h.page(r, "Ingresar"))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isJSONBody(r) {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Formulario inválido")
			return
		}
		req.Email, req.Password = r.FormValue("email"), r.FormValue("password")
	}

	token, err := h.authSvc.Login(r.Context(), mw.BaseURL(r.Context()), req.Email, req.Password)
	if err != nil {
		h.loginFailed(w, r, req.Email, err)
		return
	}

	auth.SetCookie(w, token, h.cfg.SecureCookies)
	if wantsJSON(r) || isJSONBody(r) {
		writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: map[string]string{"redirect": AdminHome}})
		return
	}
	http.Redirect(w, r, AdminHome, http.StatusSeeOther)
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, email string, err error) {
	status, msg := http.StatusInternalServerError, "Error de conexión. Intenta nuevamente."
	var ve *validation.Errors
	var ae *service.AuthError
	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusUnprocessableEntity, ve.First()
	case errors.As(err, &ae) && ae.Reason == service.ReasonNetwork:
		status, msg = http.StatusBadGateway, ae.Message
	case errors.As(err, &ae):
		status, msg = http.StatusUnauthorized, ae.Message
	}

	if wantsJSON(r) || isJSONBody(r) {
		writeError(w, status, msg)
		return
	}
	page := h.page(r, "Ingresar")
	page.Banner = &web.Banner{Kind: string(service.BannerError), Text: msg}
	page.Form = map[string]string{"email": email}
	h.render(w, status, "login", page)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w, h.cfg.SecureCookies)
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
