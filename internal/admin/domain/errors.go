package domain

import "errors"

// Error taxonomy recovered at the handler boundary. None of these may
// escape as an unhandled fault.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so responses never reveal which was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountDisabled means the credentials were correct but the
	// account has is_active = false.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrAccessDenied means the principal is authenticated but lacks the
	// required capability.
	ErrAccessDenied = errors.New("access denied")

	// ErrRegistrationClosed means the user_registration setting is off.
	ErrRegistrationClosed = errors.New("user registration is disabled")

	// ErrSelfDeletion guards an admin from deleting their own account.
	ErrSelfDeletion = errors.New("cannot delete your own account")
)

// ValidationError is a user-correctable input problem: a missing field,
// a mismatch, or a duplicate value.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError from a plain message.
func Validationf(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError and returns its
// user-facing reason.
func IsValidation(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}
