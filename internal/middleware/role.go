package middleware

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireSelf only lets the authenticated user act on the /users/:id path
// that names them. Must run after BearerAuth.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get user info from context (set by BearerAuth middleware)
		value, exists := c.Get(ContextUserID)
		if !exists {
			c.Header("WWW-Authenticate", `Bearer realm="`+realm+`"`)
			respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidRequest, "User not authenticated")
			return
		}
		userID, ok := value.(uint)
		if !ok {
			abortWithAPIError(c, http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Invalid user ID format"))
			return
		}

		target, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			abortWithAPIError(c, http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid user ID format"))
			return
		}

		if uint(target) != userID {
			abortWithAPIError(c, http.StatusForbidden, models.NewAPIError(models.ErrForbidden,
				"You can only modify your own account", map[string]interface{}{"user_id": userID}))
			return
		}

		c.Next()
	}
}
