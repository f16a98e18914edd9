// File: questly/services/user/customError.go
package user

import "fmt"

// AuthError is returned for any credential failure. The message is
// deliberately vague so callers cannot probe which half was wrong.
type AuthError struct{}

func (e AuthError) Error() string {
	return "invalid email or password"
}

// ApprovalPendingError pauses a learner flow until the guardian's code
// arrives. SessionID identifies the parked flow.
type ApprovalPendingError struct {
	SessionID string
}

func (e ApprovalPendingError) Error() string {
	return fmt.Sprintf("guardian approval pending for session %s", e.SessionID)
}

// DeviceLimitError means the account already holds the maximum number of
// registered devices.
type DeviceLimitError struct {
	Limit int
}

func (e DeviceLimitError) Error() string {
	return fmt.Sprintf("maximum device limit reached. Only %d devices are allowed", e.Limit)
}

// DuplicateAccountError means the email or username is already taken.
type DuplicateAccountError struct {
	Field string
}

func (e DuplicateAccountError) Error() string {
	return fmt.Sprintf("an account with this %s already exists", e.Field)
}
