package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/backend"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/gelf"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/handler"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/router"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/store"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/web"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
	}
	if cfg.Path != "" {
		log.Infof("Config loaded from %s", cfg.Path)
	}
	if cfg.InsecureSecret() {
		log.Warn("Sessions are signed with the development secret, set SESSION_SECRET before exposing this server")
	}
	if len(cfg.AllowedOverrides) > 0 {
		log.Infof("Backend overrides allowed on public forms: %v", cfg.AllowedOverrides)
	}

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		hook, err := gelf.New(cfg.GelfAddr, "mayelewoo-front")
		if err != nil {
			log.Warnf("GELF init failed: %v", err)
		} else {
			log.AddHook(hook)
			defer hook.Close()
			log.Infof("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Local storage: Redis when configured, memory otherwise.
	var st store.Store
	if cfg.RedisAddr != "" {
		rs, err := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		st = rs
		log.Infof("Connected to Redis at %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
	} else {
		st = store.NewMemory()
		log.Warn("REDIS_ADDR not set, pending submissions are kept in memory only")
	}
	defer st.Close()

	// Repositories
	pendingRepo := repository.NewPendingRepo(st, cfg.PendingCap)
	calcRepo := repository.NewCalculationRepo(st, cfg.HistoryCap)

	// Services
	validator := validation.New()
	client := backend.NewClient(cfg, log)
	formSvc := service.NewFormService(client, pendingRepo, validator, cfg, log)
	calcSvc := service.NewCalculatorService(formSvc, calcRepo, cfg, log)
	contactSvc := service.NewContactService(validator, cfg, log)
	authSvc := service.NewAuthService(service.NewAuthenticator(cfg, client), validator, cfg, log)
	dashSvc := service.NewDashboardService(client, pendingRepo, log)
	syncSvc := service.NewSyncService(client, pendingRepo, log)

	tpl, err := web.Parse()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Handlers
	pages := handler.NewPages(tpl, cfg, contactSvc, log)
	formH := handler.NewFormHandler(pages, cfg, formSvc, calcSvc, contactSvc)
	authH := handler.NewAuthHandler(pages, cfg, authSvc)
	dashH := handler.NewDashboardHandler(pages, dashSvc)
	adminH := handler.NewAdminHandler(syncSvc, calcSvc, st)

	// Router
	r := router.New(cfg, log, formH, authH, dashH, adminH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background replay of locally saved submissions against the default backend.
	base := config.ResolveBaseURL("", "", cfg)
	go syncSvc.Run(ctx, base, cfg.SyncInterval)
	log.Infof("Pending sync every %s against %s", cfg.SyncInterval, base)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Shutdown: %v", err)
		}
	}()

	log.Infof("%s front starting on %s", cfg.HostalName, cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Info("Server stopped")
}
