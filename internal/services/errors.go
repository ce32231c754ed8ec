package services

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid Credentials")

	// ErrWrongPassword is returned when a password change is attempted
	// without the correct current password.
	ErrWrongPassword = errors.New("Current password is incorrect")

	// ErrForbidden is returned when the ownership gate denies a mutation.
	ErrForbidden = errors.New("not authorized to modify this resource")
)
