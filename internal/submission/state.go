package submission

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned when a confirm arrives while the previous one is still being processed.
	ErrInFlight = errors.New("submission in flight")
	// ErrDisposed is returned for calls on, or results for, a disposed machine.
	ErrDisposed = errors.New("submission disposed")
)

type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

var statusNames = [...]string{
	Idle:       "idle",
	Submitting: "submitting",
	Succeeded:  "succeeded",
	Failed:     "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown submission status %q", b)
}

// State is the visible state of one form. Redirect is only set on success.
type State struct {
	Status   Status `json:"status"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// Begin enters Submitting. Any state but Submitting may be left this way.
func Begin(s State) (State, error) {
	if s.Status == Submitting {
		return s, ErrInFlight
	}
	return State{Status: Submitting}, nil
}

// Succeed settles a running submission.
func Succeed(s State, message, redirect string) State {
	if s.Status != Submitting {
		return s
	}
	return State{Status: Succeeded, Message: message, Redirect: redirect}
}

// Fail settles a running submission with an error message.
func Fail(s State, message string) State {
	if s.Status != Submitting {
		return s
	}
	return State{Status: Failed, Message: message}
}

// Reject records a validation failure. It never leaves Submitting, the
// running call owns that state.
func Reject(s State, message string) State {
	if s.Status == Submitting {
		return s
	}
	return State{Status: Failed, Message: message}
}
