package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
)

var (
	// ErrInvalidToken means the bearer token is malformed, expired or rejected by the provider.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrProviderUnavailable means the identity provider could not answer in time.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// IdentityProvider resolves a bearer token to the identity it was issued for.
type IdentityProvider interface {
	ResolveToken(ctx context.Context, token string) (*Identity, error)
}

// Identity is the provider's view of an authenticated user.
type Identity struct {
	Subject      string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// Profile builds the local user row provisioned on first sight of the identity.
// Identities without an email (phone sign-ups) get a stable placeholder so the
// unique email column stays populated.
func (i *Identity) Profile() *models.User {
	email := i.Email
	if email == "" {
		email = fmt.Sprintf("%s@users.noreply.invalid", i.Subject)
	}
	return &models.User{
		SubjectID: i.Subject,
		Email:     email,
		FullName:  i.metadataString("full_name"),
		AvatarURL: i.metadataString("avatar_url"),
	}
}

func (i *Identity) metadataString(key string) *string {
	value, ok := i.UserMetadata[key].(string)
	if !ok || value == "" {
		return nil
	}
	return &value
}
