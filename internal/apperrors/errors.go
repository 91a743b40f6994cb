package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidOperation indicates a well-formed request that asks for an illegal
// state transition, e.g. archiving an account that still carries a balance.
var ErrInvalidOperation = errors.New("operation not allowed in current state")

// ErrPostingNotAllowed indicates the target account cannot receive direct postings
// (inactive, archived, non-posting, or requires sub-accounts).
var ErrPostingNotAllowed = errors.New("account does not accept direct postings")

// ErrAlreadyPosted indicates a journal entry has already been posted. Posting is not
// idempotent by id reuse, so callers must check entry state instead of retrying.
var ErrAlreadyPosted = errors.New("journal entry already posted")

// ErrReferencedByReconciliation indicates the entry's ledger rows are held by an
// in-progress bank reconciliation and cannot be reversed until it finishes.
var ErrReferencedByReconciliation = errors.New("entry referenced by in-progress reconciliation")

// ErrLedgerIntegrity indicates a bookkeeping invariant was violated post-hoc.
// This signals a defect in the ledger engine, never a user mistake.
var ErrLedgerIntegrity = errors.New("ledger integrity violation")

// ErrUnresolvedDiscrepancy indicates a reconciliation cannot complete because its
// discrepancy is non-zero and no adjustment entry has been attached.
var ErrUnresolvedDiscrepancy = errors.New("reconciliation discrepancy unresolved")

// ErrForbidden indicates the caller lacks permission for the organization.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a state conflict with a concurrent operation.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status-like code and message around a wrapped cause.
// Repositories use it to report infrastructure failures without leaking SQL detail.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
