package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest         = "BAD_REQUEST"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrForbidden          = "FORBIDDEN"
	ErrNotFound           = "NOT_FOUND"
	ErrConflict           = "CONFLICT"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed   = "VALIDATION_FAILED"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Domain-specific errors
	ErrUserNotFound             = "USER_NOT_FOUND"
	ErrUserAlreadyExists        = "USER_ALREADY_EXISTS"
	ErrIngredientNotFound       = "INGREDIENT_NOT_FOUND"
	ErrIngredientInUse          = "INGREDIENT_IN_USE"
	ErrRecipeNotFound           = "RECIPE_NOT_FOUND"
	ErrMealPlanNotFound         = "MEAL_PLAN_NOT_FOUND"
	ErrWeeklyAssignmentNotFound = "WEEKLY_ASSIGNMENT_NOT_FOUND"
	ErrInvalidReference         = "INVALID_REFERENCE"

	// Bearer token errors (RFC 6750)
	ErrInvalidRequest = "invalid_request"
	ErrInvalidToken   = "invalid_token"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// OAuth2Error represents a bearer token error response (RFC 6750)
type OAuth2Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// NewOAuth2Error creates a new bearer token error response
func NewOAuth2Error(error, description string) OAuth2Error {
	return OAuth2Error{
		Error:            error,
		ErrorDescription: description,
	}
}
