package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/handler"
	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
)

func New(
	cfg *config.Config,
	log *logrus.Logger,
	formH *handler.FormHandler,
	authH *handler.AuthHandler,
	dashH *handler.DashboardHandler,
	adminH *handler.AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS(cfg.CORSOrigins))
	r.Use(mw.Visitor(cfg.SecureCookies))

	r.Get("/healthz", adminH.Health)

	// Public forms. An allowed ?backend= may redirect their submissions.
	r.Group(func(r chi.Router) {
		r.Use(mw.Backend(cfg))

		r.Get("/", formH.Home)
		r.Post("/contacto", formH.Contact)
		r.Get("/vouchers", formH.VoucherPage)
		r.Post("/vouchers", formH.Voucher)
		r.Get("/contadores", formH.ReadingPage)
		r.Post("/contadores", formH.Reading)
		r.Get("/calculadora", formH.CalculatorPage)
		r.Post("/calculadora", formH.Calculator)
		r.Get("/calculadora/preview", formH.CalculatorPreview)
	})

	// Auth and admin always talk to the default backend.
	r.Group(func(r chi.Router) {
		r.Use(mw.DefaultBackend(cfg))

		r.Get(auth.LoginPath, authH.LoginPage)
		r.Post(auth.LoginPath, authH.Login)
		r.Post("/logout", authH.Logout)

		r.Route(handler.AdminHome, func(r chi.Router) {
			r.Use(auth.Middleware(cfg.SessionSecret))

			r.Get("/", dashH.Overview)
			r.Get("/pending", adminH.Pending)
			r.Post("/pending/sync", adminH.Sync)
			r.Get("/history", adminH.History)
			r.Get("/{name}", dashH.Dashboard)
			r.Get("/{name}/export.{format}", dashH.Export)
		})
	})

	return r
}
