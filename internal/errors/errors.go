package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUsernameTaken is returned when a signup collides with an existing username.
	ErrUsernameTaken = errors.New("this username is already taken")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password alike.
	ErrInvalidCredentials = errors.New("wrong login details")
	// ErrInvalidFileType is returned when an upload is not a zip archive.
	ErrInvalidFileType = errors.New("file has to be a zip archive")
	// ErrMissingAddress is returned when a seller has no wallet address on file.
	ErrMissingAddress = errors.New("wallet address is not set")
	// ErrInvalidPrice is returned when the price cannot be used for a listing.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrUnknownLicense is returned when the license is not in the catalog.
	ErrUnknownLicense = errors.New("unknown license")
	// ErrItemNotFound is returned when an item does not exist or was removed.
	ErrItemNotFound = errors.New("item not found")
	// ErrForbidden is returned when the user lacks the role for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrSessionUserGone is returned when a session refers to a user that no longer exists.
	ErrSessionUserGone = errors.New("session user not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidFileType):
		return NewHTTPError(http.StatusUnsupportedMediaType, ErrInvalidFileType.Error(), "INVALID_FILE_TYPE")
	case errors.Is(err, ErrMissingAddress):
		return NewHTTPError(http.StatusBadRequest, ErrMissingAddress.Error(), "MISSING_ADDRESS")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPrice.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrUnknownLicense):
		return NewHTTPError(http.StatusBadRequest, ErrUnknownLicense.Error(), "UNKNOWN_LICENSE")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, ErrItemNotFound.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrSessionUserGone):
		return NewHTTPError(http.StatusUnauthorized, "session expired", "SESSION_EXPIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
