package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidAdminCode   = errors.New("invalid admin secret code")
	ErrRoleMismatch       = errors.New("account has a different role")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("record not found")
	ErrNotOwner           = errors.New("record belongs to another user")
	ErrInvalidStatus      = errors.New("invalid account status")
)
