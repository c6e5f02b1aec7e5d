package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/backend"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

const LoginEndpoint = "/api/auth/login"

const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonNetwork            = "network"
)

// AuthError is a failed login. Message is safe to show to the user.
type AuthError struct {
	Reason  string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason + ": " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// Authenticator checks credentials and returns the session to store.
type Authenticator interface {
	Authenticate(ctx context.Context, base, email, password string) (*models.Session, error)
}

// JSONPoster is the part of the backend client remote login needs.
type JSONPoster interface {
	PostJSON(ctx context.Context, url string, v any) (*backend.Envelope, error)
}

// RemoteAuthenticator logs in against the backend.
type RemoteAuthenticator struct {
	client JSONPoster
}

func NewRemoteAuthenticator(c JSONPoster) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: c}
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, base, email, password string) (*models.Session, error) {
	env, err := a.client.PostJSON(ctx, base+LoginEndpoint, map[string]string{"email": email, "password": password})
	if err != nil {
		var ne *backend.NetworkError
		if errors.As(err, &ne) {
			return nil, &AuthError{Reason: ReasonNetwork, Message: "Error de conexión. Intenta nuevamente.", Err: err}
		}
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = "Credenciales incorrectas"
		}
		return nil, &AuthError{Reason: ReasonInvalidCredentials, Message: msg, Err: err}
	}
	if !env.Succeeded() || env.AccessToken == "" {
		msg := env.Message
		if msg == "" {
			msg = "Error de autenticación"
		}
		return nil, &AuthError{Reason: ReasonInvalidCredentials, Message: msg}
	}

	session := &models.Session{Token: env.AccessToken, Email: email, Role: "admin"}
	var user models.User
	if len(env.User) > 0 && json.Unmarshal(env.User, &user) == nil {
		if user.Email != "" {
			session.Email = user.Email
		}
		if user.Role != "" {
			session.Role = user.Role
		}
	}
	return session, nil
}

// LocalAuthenticator accepts only the configured admin. Meant for development without a backend.
type LocalAuthenticator struct {
	email string
	hash  string
}

func NewLocalAuthenticator(email, hash string) *LocalAuthenticator {
	return &LocalAuthenticator{email: strings.ToLower(email), hash: hash}
}

func (a *LocalAuthenticator) Authenticate(_ context.Context, _ string, email, password string) (*models.Session, error) {
	if a.hash == "" || strings.ToLower(email) != a.email || !auth.CheckPassword(password, a.hash) {
		return nil, &AuthError{Reason: ReasonInvalidCredentials, Message: "Email o contraseña incorrectos"}
	}
	return &models.Session{Token: "local-" + uuid.NewString(), Email: email, Role: "admin"}, nil
}

type LoginForm struct {
	Email    string `validate:"required,email_simple"`
	Password string `validate:"required,min=6"`
}

var loginMessages = validation.Messages{
	"Email.required":     "Todos los campos son obligatorios",
	"Email.email_simple": "Por favor ingresa un email válido",
	"Password.required":  "Todos los campos son obligatorios",
	"Password.min":       "La contraseña debe tener al menos 6 caracteres",
}

type AuthService struct {
	authn     Authenticator
	validator *validation.Validator
	secret    string
	log       *logrus.Entry
}

func NewAuthService(authn Authenticator, v *validation.Validator, cfg *config.Config, log *logrus.Logger) *AuthService {
	return &AuthService{authn: authn, validator: v, secret: cfg.SessionSecret, log: log.WithField("component", "auth")}
}

// NewAuthenticator picks the authenticator configured by AuthMode.
func NewAuthenticator(cfg *config.Config, client JSONPoster) Authenticator {
	if cfg.AuthMode == "local" {
		return NewLocalAuthenticator(cfg.AdminEmail, cfg.AdminPassHash)
	}
	return NewRemoteAuthenticator(client)
}

// Login returns a signed session token for the cookie.
// Failures are *validation.Errors or *AuthError.
func (s *AuthService) Login(ctx context.Context, base, email, password string) (string, error) {
	f := LoginForm{Email: strings.TrimSpace(email), Password: password}
	var errs validation.Errors
	s.validator.Struct(&f, loginMessages, &errs)
	if errs.Len() > 0 {
		return "", &errs
	}

	session, err := s.authn.Authenticate(ctx, base, f.Email, f.Password)
	if err != nil {
		s.log.WithError(err).WithField("email", f.Email).Warn("login failed")
		return "", err
	}
	token, err := auth.GenerateToken(s.secret, *session)
	if err != nil {
		return "", err
	}
	s.log.WithField("email", session.Email).Info("admin logged in")
	return token, nil
}
