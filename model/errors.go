package model

import (
	"errors"
	"fmt"
)

// ErrExpectedAbsence marks a failure of an optional legacy API that is
// unavailable in some account configurations. Collectors drop these errors
// without recording them as adapter failures.
var ErrExpectedAbsence = errors.New("optional API unavailable")

// AuthenticationError reports that no usable AWS session exists. It aborts the
// run before any collection starts.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return "authentication failed: no AWS session available"
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// AdapterError records the failure of one resource family query. The run goes
// on without that family's data.
type AdapterError struct {
	Source string
	Err    error
}

func (e AdapterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e AdapterError) Unwrap() error { return e.Err }

// CancellationError reports that the caller aborted the run. No partial report
// is produced.
type CancellationError struct {
	Err error
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("analysis canceled: %v", e.Err)
}

func (e *CancellationError) Unwrap() error { return e.Err }

// AdapterSources returns the source name of each adapter error, in order.
func AdapterSources(errs []AdapterError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Source)
	}
	return out
}
