package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests related to users
type UserController interface {
	// CreateUser provisions a user
	CreateUser(c *gin.Context)
	// GetAllUsers lists users
	GetAllUsers(c *gin.Context)
	// GetUserByID retrieves a user by its ID
	GetUserByID(c *gin.Context)
	// UpdateUser partially updates the caller's own account
	UpdateUser(c *gin.Context)
	// DeleteUser deletes the caller's own account
	DeleteUser(c *gin.Context)
	// GetMe returns the authenticated user
	GetMe(c *gin.Context)
	// UpdateMe partially updates the authenticated user
	UpdateMe(c *gin.Context)
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) *userController {
	return &userController{service: service}
}

func respondWithUserError(c *gin.Context, err error) {
	respondWithError(c, err, models.ErrUserNotFound, "User not found")
}

// CreateUser godoc
// @Summary Create a user
// @Description Provision a local user for an identity provider subject. Duplicate subject, email or username is a conflict.
// @Tags users
// @Accept json
// @Produce json
// @Param user body schemas.UserCreate true "User payload"
// @Success 201 {object} schemas.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/ [post]
func (uc *userController) CreateUser(c *gin.Context) {
	var payload schemas.UserCreate
	if !bindJSON(c, &payload) {
		return
	}

	user, err := payload.Model()
	if err != nil {
		respondWithUserError(c, err)
		return
	}
	if err := uc.service.CreateUser(c.Request.Context(), user); err != nil {
		respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewUserResponse(user))
}

// GetAllUsers godoc
// @Summary List users
// @Description Get a page of users ordered by ID
// @Tags users
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.UserResponse
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/ [get]
func (uc *userController) GetAllUsers(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	users, err := uc.service.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponses(users))
}

// GetUserByID godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id} [get]
func (uc *userController) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := uc.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponse(user))
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partially update the caller's own account; absent fields are left untouched
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body schemas.UserUpdate true "Fields to change"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id} [put]
func (uc *userController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	uc.update(c, id)
}

// UpdateMe godoc
// @Summary Update the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param user body schemas.UserUpdate true "Fields to change"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/me [put]
func (uc *userController) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	uc.update(c, user.ID)
}

func (uc *userController) update(c *gin.Context, id uint) {
	var payload schemas.UserUpdate
	if !bindJSON(c, &payload) {
		return
	}

	user, err := uc.service.UpdateUser(c.Request.Context(), id, payload.Changes())
	if err != nil {
		respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete the caller's own account together with its meal plans and weekly assignments. Owned recipes are kept without an owner.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} schemas.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (uc *userController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := uc.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponse(user))
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} schemas.UserResponse
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (uc *userController) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponse(user))
}
