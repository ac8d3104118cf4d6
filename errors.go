// Package sqlbridge provides a vendor-neutral SQL dialect abstraction:
// type mapping, function rendering, capability negotiation, statement
// translation, and native error classification for H2, Oracle, CockroachDB,
// Cloud Spanner, and PostgreSQL.
//
// The root package defines the portable error taxonomy shared by all
// dialects. The engine itself lives in the dialect sub-package.
package sqlbridge

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for the portable runtime error taxonomy.
var (
	// ErrLockTimeout is returned when a row or object lock could not be
	// acquired within the requested wait policy.
	ErrLockTimeout = errors.New("sqlbridge: lock timeout")

	// ErrDeadlock is returned when the backend detected a deadlock (or a
	// serialization conflict it resolves by aborting one participant).
	ErrDeadlock = errors.New("sqlbridge: deadlock detected")

	// ErrConstraintViolation is returned when a statement violated a unique,
	// foreign key, check, or not-null constraint.
	ErrConstraintViolation = errors.New("sqlbridge: constraint violation")

	// ErrQueryTimeout is returned when a statement was cancelled or exceeded
	// its execution deadline.
	ErrQueryTimeout = errors.New("sqlbridge: query cancelled")
)

// LockTimeoutError reports a failed lock acquisition.
type LockTimeoutError struct {
	Code  int    // native vendor error code, 0 if the vendor reports SQLSTATE only
	State string // SQLSTATE, if the vendor reports one
	Err   error  // underlying driver error
}

// Error returns the error string.
func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("sqlbridge: lock timeout: %v", e.Err)
}

// Is reports whether the target error matches ErrLockTimeout.
func (e *LockTimeoutError) Is(err error) bool { return err == ErrLockTimeout }

// Unwrap returns the underlying driver error.
func (e *LockTimeoutError) Unwrap() error { return e.Err }

// IsLockTimeout reports whether err classifies as a lock timeout.
func IsLockTimeout(err error) bool {
	if err == nil {
		return false
	}
	var e *LockTimeoutError
	return errors.As(err, &e) || errors.Is(err, ErrLockTimeout)
}

// DeadlockError reports a deadlock detected by the backend.
type DeadlockError struct {
	Code  int
	State string
	Err   error
}

// Error returns the error string.
func (e *DeadlockError) Error() string {
	return fmt.Sprintf("sqlbridge: deadlock detected: %v", e.Err)
}

// Is reports whether the target error matches ErrDeadlock.
func (e *DeadlockError) Is(err error) bool { return err == ErrDeadlock }

// Unwrap returns the underlying driver error.
func (e *DeadlockError) Unwrap() error { return e.Err }

// IsDeadlock reports whether err classifies as a deadlock.
func IsDeadlock(err error) bool {
	if err == nil {
		return false
	}
	var e *DeadlockError
	return errors.As(err, &e) || errors.Is(err, ErrDeadlock)
}

// ConstraintViolationError reports a violated database constraint. The
// constraint name is extracted from the vendor message where the vendor's
// delimiter template allows it, and is empty otherwise.
type ConstraintViolationError struct {
	Constraint string // extracted constraint name, may be empty
	Code       int
	State      string
	Err        error
}

// Error returns the error string.
func (e *ConstraintViolationError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("sqlbridge: constraint %q violated: %v", e.Constraint, e.Err)
	}
	return fmt.Sprintf("sqlbridge: constraint violation: %v", e.Err)
}

// Is reports whether the target error matches ErrConstraintViolation.
func (e *ConstraintViolationError) Is(err error) bool { return err == ErrConstraintViolation }

// Unwrap returns the underlying driver error.
func (e *ConstraintViolationError) Unwrap() error { return e.Err }

// IsConstraintViolation reports whether err classifies as a constraint
// violation.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var e *ConstraintViolationError
	return errors.As(err, &e) || errors.Is(err, ErrConstraintViolation)
}

// ConstraintName returns the constraint name carried by err, if err is a
// ConstraintViolationError with one.
func ConstraintName(err error) string {
	var e *ConstraintViolationError
	if errors.As(err, &e) {
		return e.Constraint
	}
	return ""
}

// QueryTimeoutError reports a cancelled or timed-out statement.
type QueryTimeoutError struct {
	Code  int
	State string
	Err   error
}

// Error returns the error string.
func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("sqlbridge: query cancelled: %v", e.Err)
}

// Is reports whether the target error matches ErrQueryTimeout.
func (e *QueryTimeoutError) Is(err error) bool { return err == ErrQueryTimeout }

// Unwrap returns the underlying driver error.
func (e *QueryTimeoutError) Unwrap() error { return e.Err }

// IsQueryTimeout reports whether err classifies as a query timeout.
func IsQueryTimeout(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryTimeoutError
	return errors.As(err, &e) || errors.Is(err, ErrQueryTimeout)
}

// ConfigurationError reports a broken dialect configuration: an unmapped type
// code, an unregistered function, or an unsupported capability request. It is
// raised at startup or on first use and never silently degrades.
type ConfigurationError struct {
	msg string
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sqlbridge: configuration: %s", e.msg)
}

// NewConfigurationError returns a new ConfigurationError with the given
// formatted message.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e)
}

// TranslationError reports a malformed or unsupported abstract statement
// shape handed to a translator. It indicates a programming-contract violation
// in the caller, not a recoverable runtime condition.
type TranslationError struct {
	msg string
}

// Error returns the error string.
func (e *TranslationError) Error() string {
	return fmt.Sprintf("sqlbridge: translation: %s", e.msg)
}

// NewTranslationError returns a new TranslationError with the given formatted
// message.
func NewTranslationError(format string, args ...any) *TranslationError {
	return &TranslationError{msg: fmt.Sprintf(format, args...)}
}

// IsTranslation reports whether err is a TranslationError.
func IsTranslation(err error) bool {
	if err == nil {
		return false
	}
	var e *TranslationError
	return errors.As(err, &e)
}
