package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
}

// GoTrueProvider resolves tokens against a GoTrue (Supabase Auth) server
// through GET /auth/v1/user.
type GoTrueProvider struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

// NewGoTrueProvider creates a provider for the project at baseURL. Every
// lookup is bounded by timeout.
func NewGoTrueProvider(baseURL, apiKey string, timeout time.Duration) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// ResolveToken returns the identity the token was issued for.
func (p *GoTrueProvider) ResolveToken(ctx context.Context, token string) (*Identity, error) {
	subject, err := preParse(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		log.WithFields(logrus.Fields{
			"error":    err.Error(),
			"duration": time.Since(start).String(),
		}).Warn("Identity provider request failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: provider rejected token", ErrInvalidToken)
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		log.WithField("status", resp.StatusCode).Warn("Identity provider returned an error")
		return nil, fmt.Errorf("%w: provider returned %d", ErrProviderUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: provider returned %d", ErrInvalidToken, resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: decode provider response: %v", ErrProviderUnavailable, err)
	}
	if identity.Subject != subject {
		log.WithFields(logrus.Fields{
			"token_sub":    subject,
			"provider_sub": identity.Subject,
		}).Warn("Identity provider returned a different subject")
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	log.WithField("subject", identity.Subject).Debug("Bearer token resolved")
	return &identity, nil
}
