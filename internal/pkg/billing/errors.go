package billing

import (
	"errors"
	"fmt"
)

// Failure taxonomy of the plan-update engine. All are matched with
// errors.Is by the HTTP boundary.
var (
	// ErrNoActivePlan: the account has no customer or no live plan row.
	ErrNoActivePlan = errors.New("billing: no active plan for this account")
	// ErrIllegalTransition: the requested status is not reachable from
	// the plan's current status (or a schedule change was requested on
	// a non-active plan).
	ErrIllegalTransition = errors.New("billing: illegal plan status transition")
	// ErrInvalidLicenseCount: negative, or below the seats in use.
	ErrInvalidLicenseCount = errors.New("billing: invalid license count")
	// ErrConflictingUpdate: a schedule change combined with any other
	// field in the same request.
	ErrConflictingUpdate = errors.New("billing: conflicting plan update")
)

// PersistenceError wraps a collaborator I/O failure. The engine never
// retries; callers decide on retry policy. A failed update leaves the
// plan row untouched (see CustomerPlanRepository.ApplyPlanUpdate).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("billing: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrapPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
