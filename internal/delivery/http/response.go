package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockfolio/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return ErrorResponse(c, http.StatusInternalServerError, message, errMsg)
}

// DomainErrorResponse maps domain errors to HTTP statuses. Unknown
// errors (storage failures included) surface as 500.
func DomainErrorResponse(c echo.Context, err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ErrorResponse(c, http.StatusBadRequest, validationErr.Message, nil)
	case errors.Is(err, domain.ErrPasswordMismatch):
		return ErrorResponse(c, http.StatusBadRequest, "Passwords do not match", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ErrorResponse(c, http.StatusUnauthorized, "Invalid username and/or password", nil)
	case errors.Is(err, domain.ErrStockNotFound):
		return ErrorResponse(c, http.StatusNotFound, "Stock not found", nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return ErrorResponse(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, domain.ErrUsernameTaken):
		return ErrorResponse(c, http.StatusConflict, "Username is already taken", nil)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return ErrorResponse(c, http.StatusUnprocessableEntity, "Insufficient balance", nil)
	case errors.Is(err, domain.ErrInsufficientShares):
		return ErrorResponse(c, http.StatusUnprocessableEntity, "Insufficient shares", nil)
	default:
		return InternalServerErrorResponse(c, "Internal server error", err)
	}
}
