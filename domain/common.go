package domain

import (
	"errors"
	"fmt"
)

const (
	RoleAdmin   = "admin"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	// Error kinds. Concrete errors wrap one of these so callers can
	// classify with errors.Is.
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrTooManyRequests   = errors.New("too many requests")
	ErrBadRequest        = errors.New("bad request")
	ErrUnavailable       = errors.New("service unavailable")

	ErrParseUUID      = fmt.Errorf("failed to parse UUID: %w", ErrBadRequest)
	ErrUserNotAllowed = fmt.Errorf("user not allowed: %w", ErrForbidden)
	ErrTokenNotFound  = fmt.Errorf("token not found: %w", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("token invalid: %w", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("token expired: %w", ErrUnauthorized)
)

func IsStaffRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}
