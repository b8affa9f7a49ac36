package domain

import (
	"errors"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleCustomer = "customer"

	ScopeAdmin         = "admin"
	ScopeManager       = "manager"
	ScopeStaff         = "staff"
	ScopeAuthenticated = "authenticated"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUserNotAllowed       = "user not allowed"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// ScopesForRole expands a role into the ordered capability set embedded in
// access tokens. Roles form a total order: admin covers manager covers staff.
func ScopesForRole(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{ScopeAdmin, ScopeManager, ScopeStaff, ScopeAuthenticated}
	case RoleManager:
		return []string{ScopeManager, ScopeStaff, ScopeAuthenticated}
	case RoleStaff:
		return []string{ScopeStaff, ScopeAuthenticated}
	default:
		return []string{ScopeAuthenticated}
	}
}
