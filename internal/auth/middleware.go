package auth

import (
	"context"
	"net/http"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// CookieName holds the admin session. It never gets Expires or Max-Age.
const CookieName = "mayelewoo_admin_token"

// LoginPath is where the gate sends anonymous requests.
const LoginPath = "/login"

type contextKey string

const SessionContextKey contextKey = "session"

// Middleware lets a request through only with a valid session cookie.
// Otherwise it redirects to the login page and the wrapped handler never runs.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := FromRequest(r, secret)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// FromRequest decodes the session cookie, if any.
func FromRequest(r *http.Request, secret string) (*models.Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims, err := ValidateToken(secret, c.Value)
	if err != nil {
		return nil, false
	}
	return claims.Session(), true
}

func SetCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

func GetSession(ctx context.Context) *models.Session {
	s, _ := ctx.Value(SessionContextKey).(*models.Session)
	return s
}
