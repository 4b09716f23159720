package domain

import "fmt"

var (
	MessageSuccessLogin = "login successful"
	MessageSuccessGetMe = "user retrieved successfully"
	MessageFailedLogin  = "failed to login"
	MessageFailedGetMe  = "failed to retrieve user"

	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrUserInactive       = fmt.Errorf("user account is inactive: %w", ErrForbidden)
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		Role  string       `json:"role"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
)
