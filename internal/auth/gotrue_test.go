package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return token
}

func validClaims(subject string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func newProviderServer(t *testing.T, handler http.HandlerFunc) *GoTrueProvider {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoTrueProvider(server.URL+"/", "anon-key", time.Second)
}

func TestResolveTokenSuccess(t *testing.T) {
	subject := uuid.NewString()
	token := mintToken(t, validClaims(subject))

	provider := newProviderServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            subject,
			"email":         "alice@example.com",
			"user_metadata": map[string]interface{}{"full_name": "Alice"},
		})
	})

	identity, err := provider.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, subject, identity.Subject)

	profile := identity.Profile()
	assert.Equal(t, "alice@example.com", profile.Email)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Alice", *profile.FullName)
	assert.Nil(t, profile.AvatarURL)
}

func TestResolveTokenRejectedLocally(t *testing.T) {
	calls := 0
	provider := newProviderServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	testCases := []struct {
		name  string
		token string
	}{
		{name: "not a jwt", token: "garbage"},
		{name: "expired", token: mintToken(t, jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(-time.Minute).Unix()})},
		{name: "not yet valid", token: mintToken(t, jwt.MapClaims{"sub": uuid.NewString(), "nbf": time.Now().Add(time.Hour).Unix()})},
		{name: "missing subject", token: mintToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
		{name: "non uuid subject", token: mintToken(t, validClaims("42"))},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.ResolveToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
	assert.Zero(t, calls, "provider must not be called for locally rejected tokens")
}

func TestResolveTokenProviderResponses(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    interface{}
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrInvalidToken},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrInvalidToken},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrProviderUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrProviderUnavailable},
		{name: "other subject", status: http.StatusOK, body: map[string]string{"id": uuid.NewString()}, wantErr: ErrInvalidToken},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			provider := newProviderServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != nil {
					json.NewEncoder(w).Encode(tt.body)
				}
			})

			_, err := provider.ResolveToken(context.Background(), mintToken(t, validClaims(uuid.NewString())))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveTokenTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	provider := NewGoTrueProvider(server.URL, "anon-key", 50*time.Millisecond)
	_, err := provider.ResolveToken(context.Background(), mintToken(t, validClaims(uuid.NewString())))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestProfileWithoutEmail(t *testing.T) {
	identity := &Identity{Subject: "4b1c0f3e-8a39-4c9e-9f5e-2f0a6b7c8d9e"}
	assert.Equal(t, "4b1c0f3e-8a39-4c9e-9f5e-2f0a6b7c8d9e@users.noreply.invalid", identity.Profile().Email)
}
