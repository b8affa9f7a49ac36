package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister    = "user registered successfully"
	MessageSuccessLogin       = "login successful"
	MessageSuccessGetMe       = "user retrieved successfully"
	MessageSuccessGetUsers    = "users retrieved successfully"
	MessageSuccessCreateUser  = "user created successfully"
	MessageSuccessUpdateUser  = "user updated successfully"
	MessageSuccessDeleteUser  = "user deleted successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user"
	MessageFailedGetUsers   = "failed to retrieve users"
	MessageFailedCreateUser = "failed to create user"
	MessageFailedUpdateUser = "failed to update user"
	MessageFailedDeleteUser = "failed to delete user"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("incorrect email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidRole        = errors.New("invalid role")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"full_name" validate:"required"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string       `json:"access_token"`
		TokenType   string       `json:"token_type"`
		User        UserResponse `json:"user"`
	}

	CreateUserRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"full_name" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=admin manager staff customer"`
	}

	UpdateUserRequest struct {
		Email    string `json:"email" validate:"omitempty,email"`
		Password string `json:"password" validate:"omitempty,min=8"`
		FullName string `json:"full_name" validate:"omitempty"`
		IsActive *bool  `json:"is_active" validate:"omitempty"`
		Role     string `json:"role" validate:"omitempty,oneof=admin manager staff customer"`
	}

	UserResponse struct {
		ID          string    `json:"id"`
		Email       string    `json:"email"`
		FullName    string    `json:"full_name"`
		IsActive    bool      `json:"is_active"`
		IsSuperuser bool      `json:"is_superuser"`
		Role        string    `json:"role"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
