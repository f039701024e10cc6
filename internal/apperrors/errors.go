package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadySettled indicates that a debt record has already transitioned to SETTLED.
// Settling an already-settled debt is treated as a no-op success by convention;
// this error exists for callers that need to distinguish the case.
var ErrAlreadySettled = errors.New("debt already settled")

// ErrConcurrentModification indicates an optimistic-lock failure: the record was
// changed by another request between read and write. Callers should reload and retry.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// AmountMismatchError is returned when the computed shares of an expense do not
// sum exactly to its total amount. The engine never clamps or redistributes to
// hide the gap; the caller gets both figures for diagnostics.
type AmountMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("allocated shares sum to %d, expected %d", e.Actual, e.Expected)
}

// Is makes AmountMismatchError match ErrValidation in errors.Is chains, since a
// mismatch always originates from caller-supplied inputs.
func (e *AmountMismatchError) Is(target error) bool {
	return target == ErrValidation
}

// BatchSettleError is returned by the batch settle workflow when one or more of
// the requested debt IDs do not exist. The batch is all-or-nothing: no record is
// mutated when this error is returned.
type BatchSettleError struct {
	MissingIDs []string
}

func (e *BatchSettleError) Error() string {
	return fmt.Sprintf("batch settle aborted, unknown debt ids: %s", strings.Join(e.MissingIDs, ", "))
}

func (e *BatchSettleError) Is(target error) bool {
	return target == ErrNotFound
}
