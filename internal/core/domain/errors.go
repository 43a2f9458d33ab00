package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; the two are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrTokenRevoked    = errors.New("token revoked")
	ErrUnknownIdentity = errors.New("token identity unknown")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	// ErrClientNotFound is returned both when a client does not exist and
	// when it is assigned to another caseworker, so callers cannot probe
	// for clients they do not own.
	ErrClientNotFound = errors.New("client not found or not assigned to you")

	ErrInvalidInteractionType = errors.New("invalid interaction type")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
