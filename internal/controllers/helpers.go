package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/middleware"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
}

// respondWithError maps a service error onto the API error taxonomy.
// notFoundCode names the missing resource.
func respondWithError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, notFoundMessage))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "You do not have access to the referenced record"))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "The request conflicts with existing data"))
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed, "Validation failed",
			map[string]interface{}{"password": fmt.Sprintf("must not exceed %d bytes", schemas.MaxPasswordBytes)}))
	case errors.Is(err, services.ErrInvalidReference):
		c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrInvalidReference, "The request references a record that does not exist"))
	case database.IsUnavailable(err):
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Database unavailable")
		c.JSON(http.StatusServiceUnavailable, models.NewAPIError(models.ErrServiceUnavailable, "The service is temporarily unavailable"))
	default:
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.FullPath(),
			"error":      err.Error(),
		}).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "An unexpected error occurred"))
	}
}

// bindJSON decodes and validates the body. Malformed JSON is a 400,
// validation failures are a 422 listing the offending fields.
func bindJSON(c *gin.Context, payload interface{}) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		if fields, ok := schemas.FieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed, "Validation failed", fields))
			return false
		}
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body", map[string]interface{}{"error": err.Error()}))
		return false
	}
	return true
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, query interface{}) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		if fields, ok := schemas.FieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed, "Validation failed", fields))
			return false
		}
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid query parameters", map[string]interface{}{"error": err.Error()}))
		return false
	}
	return true
}

// bindPage reads skip/limit.
func bindPage(c *gin.Context) (services.Page, bool) {
	var query schemas.PageQuery
	if !bindQuery(c, &query) {
		return services.Page{}, false
	}
	return query.Page(), true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ID format", map[string]interface{}{param: c.Param(param)}))
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated caller, answering 401 if there is none.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidRequest, "User not authenticated"))
		return nil, false
	}
	return user, true
}

// viewerID is the caller's id, or nil on anonymous routes.
func viewerID(c *gin.Context) *uint {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return &user.ID
}

type ownable interface {
	OwnedBy(userID uint) bool
}

// authorizeOwner answers 403 unless the caller owns record.
func authorizeOwner(c *gin.Context, user *models.User, record ownable, resource string) bool {
	if record.OwnedBy(user.ID) {
		return true
	}
	c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden,
		"This "+resource+" belongs to another user", map[string]interface{}{"user_id": user.ID}))
	return false
}
