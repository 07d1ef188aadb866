package core

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// InvalidShiftError reports a shift identifier outside {A, B, C}.
type InvalidShiftError struct {
	Shift string
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("invalid shift %q: must be one of A, B, C", e.Shift)
}

// ValidationError reports the first unmet requirement on a submit, skip,
// reject or edit. Nothing is persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DuplicateSlotError reports a second submit or skip for a slot that already
// has an entry for the same (date, shift, line). Surfaced to the operator as
// "slot already recorded"; never retried automatically.
type DuplicateSlotError struct {
	TimeSlot string
}

func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("slot %s already recorded", e.TimeSlot)
}

// ErrNotPending reports an approve/reject against an entry that no longer
// matches the pending filter, usually because another supervisor resolved it
// first. Callers refresh the queue.
var ErrNotPending = errors.New("entry no longer pending")

// RemoteUnavailableError wraps a failed or timed-out call to the persistence
// layer or the factory API. Local state stays untouched so the same action
// can be retried.
type RemoteUnavailableError struct {
	Op  string
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("%s: remote unavailable: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}

// translateWriteError maps gorm's translated duplicate-key error onto the
// domain error for the slot being written.
func translateWriteError(err error, timeSlot string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateSlotError{TimeSlot: timeSlot}
	}
	return err
}
