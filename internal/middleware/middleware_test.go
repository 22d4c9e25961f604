package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/auth"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIdentityProvider is a mock implementation of auth.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ResolveToken(ctx context.Context, token string) (*auth.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

// MockUserService implements the user lookup BearerAuth needs; other methods
// panic through the nil embedded interface.
type MockUserService struct {
	mock.Mock
	services.UserService
}

func (m *MockUserService) GetOrCreateBySubject(ctx context.Context, profile *models.User) (*models.User, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

const subject = "4b1c0f3e-8a39-4c9e-9f5e-2f0a6b7c8d9e"

func newAuthRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/me", handler, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "user_id": c.GetUint(ContextUserID)})
	})
	return r
}

func doRequest(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuthSuccess(t *testing.T) {
	provider := new(MockIdentityProvider)
	users := new(MockUserService)
	identity := &auth.Identity{Subject: subject, Email: "alice@example.com"}
	provider.On("ResolveToken", mock.Anything, "good-token").Return(identity, nil)
	users.On("GetOrCreateBySubject", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.SubjectID == subject && u.Email == "alice@example.com"
	})).Return(&models.User{ID: 7, SubjectID: subject}, nil)

	w := doRequest(newAuthRouter(BearerAuth(provider, users)), "Bearer good-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"user_id":7}`, w.Body.String())
	provider.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestBearerAuthRejections(t *testing.T) {
	testCases := []struct {
		name          string
		header        string
		providerErr   error
		usersErr      error
		expectedCode  int
		expectedError string
		challenge     bool
	}{
		{name: "missing header", expectedCode: http.StatusUnauthorized, expectedError: models.ErrInvalidRequest, challenge: true},
		{name: "wrong scheme", header: "Basic abc", expectedCode: http.StatusUnauthorized, expectedError: models.ErrInvalidToken, challenge: true},
		{name: "empty token", header: "Bearer ", expectedCode: http.StatusUnauthorized, expectedError: models.ErrInvalidToken, challenge: true},
		{
			name:          "provider rejects",
			header:        "Bearer bad",
			providerErr:   fmt.Errorf("%w: provider rejected token", auth.ErrInvalidToken),
			expectedCode:  http.StatusUnauthorized,
			expectedError: models.ErrInvalidToken,
			challenge:     true,
		},
		{
			name:         "provider down",
			header:       "Bearer slow",
			providerErr:  fmt.Errorf("%w: timeout", auth.ErrProviderUnavailable),
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:         "email taken",
			header:       "Bearer taken",
			usersErr:     services.ErrConflict,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "database timeout",
			header:       "Bearer dbslow",
			usersErr:     context.DeadlineExceeded,
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockIdentityProvider)
			users := new(MockUserService)
			if tt.providerErr != nil {
				provider.On("ResolveToken", mock.Anything, mock.Anything).Return(nil, tt.providerErr)
			} else {
				provider.On("ResolveToken", mock.Anything, mock.Anything).Return(&auth.Identity{Subject: subject}, nil)
			}
			if tt.usersErr != nil {
				users.On("GetOrCreateBySubject", mock.Anything, mock.Anything).Return(nil, tt.usersErr)
			}

			w := doRequest(newAuthRouter(BearerAuth(provider, users)), tt.header)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var body models.OAuth2Error
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body.Error)
			}
			if tt.challenge {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestOptionalBearerAuth(t *testing.T) {
	provider := new(MockIdentityProvider)
	users := new(MockUserService)
	provider.On("ResolveToken", mock.Anything, "bad").Return(nil, auth.ErrInvalidToken)
	r := newAuthRouter(OptionalBearerAuth(provider, users))

	anonymous := doRequest(r, "")
	require.Equal(t, http.StatusOK, anonymous.Code)
	assert.JSONEq(t, `{"anonymous":true}`, anonymous.Body.String())

	invalid := doRequest(r, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
}

func TestRequireSelf(t *testing.T) {
	r := gin.New()
	r.PUT("/users/:id", func(c *gin.Context) {
		c.Set(ContextUserID, uint(7))
	}, RequireSelf("id"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	testCases := []struct {
		path         string
		expectedCode int
	}{
		{path: "/users/7", expectedCode: http.StatusNoContent},
		{path: "/users/8", expectedCode: http.StatusForbidden},
		{path: "/users/abc", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range testCases {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, tt.path, nil))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequestIDAndTimeout(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(), Timeout(time.Minute))
	r.GET("/ping", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": hasDeadline, "request_id": GetRequestID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"deadline":true,"request_id":"abc-123"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
