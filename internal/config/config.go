package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DevSessionSecret signs sessions when nothing else is configured. It is public,
// so Load accepts it only with AuthMode "local".
const DevSessionSecret = "mayelewoo-dev-secret-change-me"

// ErrInsecureSecret means the session secret is missing or the public development one.
var ErrInsecureSecret = errors.New("SESSION_SECRET must be set unless AUTH_MODE=local")

// Config is built once in main and handed to every constructor.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`
	GelfAddr string `yaml:"gelf_addr"`

	// CORSOrigins may call the JSON endpoints from a browser.
	CORSOrigins []string `yaml:"cors_origins"`

	// ProductionURL is the backend used when no override or localhost heuristic applies.
	ProductionURL string `yaml:"production_url"`
	LocalPort     int    `yaml:"local_port"`

	// AllowedOverrides lists the ?backend= values honoured on the public forms:
	// "local" and/or base URLs. Empty means the override is ignored.
	AllowedOverrides []string `yaml:"allowed_overrides"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	PendingCap     int           `yaml:"pending_cap"`
	HistoryCap     int           `yaml:"history_cap"`
	SyncInterval   time.Duration `yaml:"sync_interval"`
	PricePerKWH    float64       `yaml:"price_per_kwh"`
	MaxFileSize    int64         `yaml:"max_file_size"`
	MaxVoucherSize int64         `yaml:"max_voucher_size"`

	SessionSecret string `yaml:"session_secret"`
	SecureCookies bool   `yaml:"secure_cookies"`
	// AuthMode is "remote" (backend login) or "local" (configured admin, dev only).
	AuthMode       string `yaml:"auth_mode"`
	AdminEmail     string `yaml:"admin_email"`
	AdminPassHash  string `yaml:"admin_pass_hash"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	HostalName     string `yaml:"hostal_name"`

	// Path is the YAML file that was read, if any.
	Path string `yaml:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		HTTPAddr:       ":8080",
		CORSOrigins:    []string{"*"},
		LogLevel:       "info",
		ProductionURL:  "https://mayelewoo-back.onrender.com",
		LocalPort:      3000,
		RequestTimeout: 30 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     time.Second,
		PendingCap:     50,
		HistoryCap:     50,
		SyncInterval:   5 * time.Minute,
		PricePerKWH:    439.26,
		MaxFileSize:    5 << 20,
		MaxVoucherSize: 10 << 20,
		SessionSecret:  DevSessionSecret,
		AuthMode:       "remote",
		WhatsAppNumber: "5493516664584",
		HostalName:     "Hostal Mayelewoo",
	}
}

// Load layers defaults, an optional YAML file, .env and the environment, in that order.
func Load() (*Config, error) {
	cfg := Default()

	path := getEnv("HOSTAL_CONFIG", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		cfg.Path = path
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg.HTTPAddr = getEnv("HOSTAL_ADDR", cfg.HTTPAddr)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.GelfAddr = getEnv("GELF_ADDR", cfg.GelfAddr)
	cfg.ProductionURL = getEnv("BACKEND_URL", cfg.ProductionURL)
	cfg.LocalPort = getEnvInt("BACKEND_LOCAL_PORT", cfg.LocalPort)
	cfg.AllowedOverrides = getEnvList("BACKEND_OVERRIDES", cfg.AllowedOverrides)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RetryAttempts = getEnvInt("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.RetryDelay = getEnvDuration("RETRY_DELAY", cfg.RetryDelay)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.PendingCap = getEnvInt("PENDING_CAP", cfg.PendingCap)
	cfg.HistoryCap = getEnvInt("HISTORY_CAP", cfg.HistoryCap)
	cfg.SyncInterval = getEnvDuration("SYNC_INTERVAL", cfg.SyncInterval)
	cfg.PricePerKWH = getEnvFloat("PRICE_PER_KWH", cfg.PricePerKWH)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.SecureCookies = getEnvBool("SECURE_COOKIES", cfg.SecureCookies)
	cfg.AuthMode = getEnv("AUTH_MODE", cfg.AuthMode)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassHash = getEnv("ADMIN_PASS_HASH", cfg.AdminPassHash)
	cfg.WhatsAppNumber = getEnv("WHATSAPP_NUMBER", cfg.WhatsAppNumber)
	cfg.HostalName = getEnv("HOSTAL_NAME", cfg.HostalName)

	if err := cfg.checkSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InsecureSecret reports whether sessions are signed with the public development secret.
func (c *Config) InsecureSecret() bool {
	return c.SessionSecret == "" || c.SessionSecret == DevSessionSecret
}

func (c *Config) checkSecret() error {
	if c.SessionSecret == "" || (c.InsecureSecret() && c.AuthMode != "local") {
		return ErrInsecureSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
