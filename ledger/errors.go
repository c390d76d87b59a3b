package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrLoanNotFound means the client has no loan on file.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrClientNotFound means the client does not exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrAlreadySettled means a payment arrived for a loan with no
	// pending installments left.
	ErrAlreadySettled = errors.New("loan is already fully paid, no pending installments found")
	// ErrIntegrity wraps a storage failure inside a multi-write
	// sequence. The enclosing transaction has been rolled back; the
	// caller may retry.
	ErrIntegrity = errors.New("ledger write failed, no changes applied")
)

// ValidationError rejects malformed input before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
