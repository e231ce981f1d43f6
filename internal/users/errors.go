package users

import "errors"

var (
	ErrMissingUsername     = errors.New("username is required")
	ErrMissingPassword     = errors.New("password is required")
	ErrDuplicateUser       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)
