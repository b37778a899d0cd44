package model

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials  = errors.New("missing API tokens in environment variables (GITHUB_TOKEN and GITLAB_TOKEN are both required)")
	ErrMissingArgument     = errors.New("missing profile url argument")
	ErrUnsupportedPlatform = errors.New("unsupported platform, profile url must be on github.com or gitlab.com")
	ErrInvalidProfileURL   = errors.New("invalid profile url, unable to extract username")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidByteCount    = errors.New("invalid negative byte count")
	ErrNetwork             = errors.New("network error")
)

// NetworkError wraps any transport or API failure returned by a hosting platform
type NetworkError struct {
	Platform  Platform
	Operation string
	Err       error
}

func NewNetworkError(platform Platform, operation string, err error) *NetworkError {
	return &NetworkError{Platform: platform, Operation: operation, Err: err}
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Platform, e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNetwork) match any NetworkError
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewAPIError(errReason error) APIError {
	switch {
	case errors.Is(errReason, ErrMissingArgument):
		return APIError{
			Code:    "MISSING_ARGUMENT",
			Message: "the url query parameter is required",
		}

	case errors.Is(errReason, ErrUnsupportedPlatform):
		return APIError{Code: "UNSUPPORTED_PLATFORM", Message: errReason.Error()}

	case errors.Is(errReason, ErrInvalidProfileURL):
		return APIError{Code: "INVALID_PROFILE_URL", Message: errReason.Error()}

	case errors.Is(errReason, ErrUserNotFound):
		return APIError{Code: "USER_NOT_FOUND", Message: errReason.Error()}

	case errors.Is(errReason, ErrNetwork):
		return APIError{
			Code:    "FETCH_ERROR",
			Message: "unable to fetch data from the hosting platform. try again in few minutes",
		}

	case errors.Is(errReason, ErrInvalidByteCount):
		return APIError{
			Code:    "INVALID_DATA_FOUND",
			Message: "internal server error. contact our support with the reason code for assistance",
		}
	}

	return APIError{
		Code:    "GENERIC_ERROR",
		Message: "internal server error. contact our support with the reason code for assistance",
	}
}
