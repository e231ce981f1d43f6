package users

import "time"

// User represents a staff account. Accounts are append-only: never
// updated, never deleted (the username uniqueness constraint is the
// only invariant).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest represents the request to register a new staff account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the access token issued on successful login.
// The token replaces the session: it is validated on every request.
type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// RegisterResponse confirms account creation
type RegisterResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}
