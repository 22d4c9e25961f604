package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/auth"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Gin context keys set by BearerAuth
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

const realm = "nutri-regimen"

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
}

// errNoCredentials marks a request without an Authorization header.
var errNoCredentials = errors.New("no credentials")

// BearerAuth resolves the bearer token through the identity provider and
// loads (or provisions) the local user. Requests without a valid token are
// rejected following RFC 6750.
func BearerAuth(provider auth.IdentityProvider, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			rejectCredentials(c, err)
			return
		}
		if !authenticate(c, provider, users, token) {
			return
		}
		c.Next()
	}
}

// OptionalBearerAuth behaves like BearerAuth when an Authorization header is
// present and lets anonymous requests through otherwise.
func OptionalBearerAuth(provider auth.IdentityProvider, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if errors.Is(err, errNoCredentials) {
			c.Next()
			return
		}
		if err != nil {
			rejectCredentials(c, err)
			return
		}
		if !authenticate(c, provider, users, token) {
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by BearerAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// extractBearerToken reads the RFC 6750 Authorization header.
func extractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errNoCredentials
	}

	// Validate Bearer scheme format
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: Authorization header must use Bearer scheme. Format: 'Bearer <token>'", auth.ErrInvalidToken)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: Bearer token is empty", auth.ErrInvalidToken)
	}
	return token, nil
}

// authenticate stores the caller in the context or aborts with the matching
// error response. It reports whether the request may continue.
func authenticate(c *gin.Context, provider auth.IdentityProvider, users services.UserService, token string) bool {
	ctx := c.Request.Context()

	identity, err := provider.ResolveToken(ctx, token)
	if err != nil {
		rejectCredentials(c, err)
		return false
	}

	user, err := users.GetOrCreateBySubject(ctx, identity.Profile())
	if err != nil {
		fields := logrus.Fields{"subject": identity.Subject, "error": err.Error()}
		switch {
		case errors.Is(err, services.ErrConflict):
			log.WithFields(fields).Warn("Identity email already belongs to another user")
			abortWithAPIError(c, http.StatusConflict, models.NewAPIError(models.ErrUserAlreadyExists,
				"The identity's email or username is already registered to another account"))
		case database.IsUnavailable(err):
			log.WithFields(fields).Error("Database unavailable while loading user")
			abortWithAPIError(c, http.StatusServiceUnavailable, models.NewAPIError(models.ErrServiceUnavailable,
				"The service is temporarily unavailable"))
		default:
			log.WithFields(fields).Error("Failed to load authenticated user")
			abortWithAPIError(c, http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer,
				"Failed to load authenticated user"))
		}
		return false
	}

	c.Set(ContextUserID, user.ID)
	c.Set(ContextUser, user)
	return true
}

// rejectCredentials maps token failures onto 401 and provider outages onto 503.
func rejectCredentials(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoCredentials):
		c.Header("WWW-Authenticate", fmt.Sprintf(`Bearer realm=%q`, realm))
		respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidRequest,
			"Missing Authorization header. A valid Bearer token is required.")
	case errors.Is(err, auth.ErrProviderUnavailable):
		log.WithError(err).Error("Identity provider unavailable")
		abortWithAPIError(c, http.StatusServiceUnavailable, models.NewAPIError(models.ErrServiceUnavailable,
			"The identity provider is temporarily unavailable"))
	default:
		description := strings.TrimPrefix(err.Error(), auth.ErrInvalidToken.Error()+": ")
		c.Header("WWW-Authenticate", fmt.Sprintf(`Bearer realm=%q, error=%q, error_description=%q`,
			realm, models.ErrInvalidToken, description))
		respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidToken, description)
	}
}

// respondWithOAuth2Error responds with RFC 6750 compliant error format
func respondWithOAuth2Error(c *gin.Context, status int, errorCode, description string) {
	c.AbortWithStatusJSON(status, models.NewOAuth2Error(errorCode, description))
}

func abortWithAPIError(c *gin.Context, status int, apiErr models.APIError) {
	c.AbortWithStatusJSON(status, apiErr)
}
