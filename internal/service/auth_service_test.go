package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/backend"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

type fakeJSON struct {
	url  string
	body any
	env  *backend.Envelope
	err  error
}

func (f *fakeJSON) PostJSON(_ context.Context, url string, v any) (*backend.Envelope, error) {
	f.url = url
	f.body = v
	return f.env, f.err
}

func newAuth(authn Authenticator) (*AuthService, *config.Config) {
	cfg := config.Default()
	return NewAuthService(authn, validation.New(), cfg, quietLogger()), cfg
}

func TestRemoteLoginSuccess(t *testing.T) {
	ok := true
	client := &fakeJSON{env: &backend.Envelope{
		Success:     &ok,
		AccessToken: "backend-token",
		User:        json.RawMessage(`{"email":"admin@mayelewoo.com","role":"admin"}`),
	}}
	svc, cfg := newAuth(NewRemoteAuthenticator(client))

	token, err := svc.Login(context.Background(), testBase, " admin@mayelewoo.com ", "secreto")
	require.NoError(t, err)
	assert.Equal(t, testBase+"/api/auth/login", client.url)
	assert.Equal(t, map[string]string{"email": "admin@mayelewoo.com", "password": "secreto"}, client.body)

	claims, err := auth.ValidateToken(cfg.SessionSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", claims.BackendToken)
	assert.Equal(t, "admin", claims.Role)
}

func TestRemoteLoginFailures(t *testing.T) {
	no := false
	cases := map[string]struct {
		client *fakeJSON
		reason string
		msg    string
	}{
		"rejected": {
			&fakeJSON{env: &backend.Envelope{}, err: &backend.HTTPError{Status: 401, Message: "Credenciales inválidas"}},
			ReasonInvalidCredentials, "Credenciales inválidas",
		},
		"rejected without message": {
			&fakeJSON{err: &backend.HTTPError{Status: 401}},
			ReasonInvalidCredentials, "Credenciales incorrectas",
		},
		"success false": {
			&fakeJSON{env: &backend.Envelope{Success: &no, Message: "Usuario inactivo"}},
			ReasonInvalidCredentials, "Usuario inactivo",
		},
		"no token": {
			&fakeJSON{env: &backend.Envelope{}},
			ReasonInvalidCredentials, "Error de autenticación",
		},
		"network": {
			&fakeJSON{err: errDown},
			ReasonNetwork, "Error de conexión. Intenta nuevamente.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newAuth(NewRemoteAuthenticator(tc.client))
			_, err := svc.Login(context.Background(), testBase, "admin@mayelewoo.com", "secreto")
			var ae *AuthError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.reason, ae.Reason)
			assert.Equal(t, tc.msg, ae.Message)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	client := &fakeJSON{}
	svc, _ := newAuth(NewRemoteAuthenticator(client))

	cases := map[string][2]string{
		"Todos los campos son obligatorios":              {"", "secreto"},
		"Por favor ingresa un email válido":              {"admin", "secreto"},
		"La contraseña debe tener al menos 6 caracteres": {"admin@mayelewoo.com", "123"},
	}
	for want, in := range cases {
		_, err := svc.Login(context.Background(), testBase, in[0], in[1])
		ve, ok := validation.AsErrors(err)
		require.True(t, ok, want)
		assert.Equal(t, want, ve.First())
	}
	assert.Empty(t, client.url)
}

func TestLocalAuthenticator(t *testing.T) {
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.AuthMode = "local"
	cfg.AdminEmail = "admin@mayelewoo.com"
	cfg.AdminPassHash = hash
	authn := NewAuthenticator(cfg, nil)
	require.IsType(t, &LocalAuthenticator{}, authn)

	svc, _ := newAuth(authn)
	_, err = svc.Login(context.Background(), "", "ADMIN@mayelewoo.com", "admin123")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "", "admin@mayelewoo.com", "wrong-pass")
	var ae *AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, ReasonInvalidCredentials, ae.Reason)

	assert.IsType(t, &RemoteAuthenticator{}, NewAuthenticator(config.Default(), &fakeJSON{}))
}
