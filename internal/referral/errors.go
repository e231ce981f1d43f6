package referral

import "errors"

var (
	ErrMissingNationalID  = errors.New("national ID is required")
	ErrMissingLastName    = errors.New("last name is required")
	ErrMissingFirstName   = errors.New("first name is required")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPhone       = errors.New("phone is required")
	ErrNegativeAge        = errors.New("current age cannot be negative")
	ErrInvalidBirthDate   = errors.New("birth date is not a valid date (expected YYYY-MM-DD)")
	ErrBirthDateInFuture  = errors.New("birth date cannot be after the current date")
	ErrNotFound           = errors.New("no patient found with that national ID")
)
