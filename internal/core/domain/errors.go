package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Registration errors
var (
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrDLNumberTaken   = errors.New("driver's license number is already registered")
	ErrUnknownProperty = errors.New("property is not an approved community")
)

// Visitor check-in errors. The messages are surfaced verbatim to the
// gate officer's screen, matching the legacy alerts.
var (
	ErrNoResidentOnFile      = errors.New("SECURITY ALERT: Invalid Unit or No Resident on File.")
	ErrNotAcceptingVisitors  = errors.New("ACCESS DENIED: Resident is NOT ACCEPTING VISITORS.")
	ErrVisitorNotOnGuestList = errors.New("ACCESS DENIED: Visitor is not on the Guest List")
)
