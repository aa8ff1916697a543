package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrInputParse marks a roster row that cannot be turned into a participant
	ErrInputParse = errors.New("input parse error")
	// ErrInvalidConfiguration marks a slot count that cannot produce a schedule
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrScheduleUnsatisfiable marks a slot whose same-day conflicts could not be resolved
	ErrScheduleUnsatisfiable = errors.New("schedule unsatisfiable")
	// ErrResourceUnavailable marks an input or output resource that could not be used
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// ParseError identifies the roster row that failed to parse
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("row %d: invalid %s %q", e.Row, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInputParse }

// ConfigError describes why a slot count or a track's banding was rejected.
// Track is empty and Slot is -1 when the error is not tied to one band.
type ConfigError struct {
	Track  string
	Slot   int
	Reason string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Track != "" && e.Slot >= 0:
		return fmt.Sprintf("invalid configuration: track %s slot %d: %s", e.Track, e.Slot, e.Reason)
	case e.Track != "":
		return fmt.Sprintf("invalid configuration: track %s: %s", e.Track, e.Reason)
	default:
		return "invalid configuration: " + e.Reason
	}
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

// UnsatisfiableError reports the slot whose draw exceeded the retry bound
type UnsatisfiableError struct {
	Day      int
	Slot     int
	Attempts int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("schedule unsatisfiable: day %d slot %d: no conflict-free draw after %d attempts",
		e.Day, e.Slot, e.Attempts)
}

func (e *UnsatisfiableError) Is(target error) bool { return target == ErrScheduleUnsatisfiable }

// ResourceError wraps a failure to open, read or write an external resource
type ResourceError struct {
	Resource string
	Op       string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource unavailable: %s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Is(target error) bool { return target == ErrResourceUnavailable }
