package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Messages are the fixed texts of one action.
type Messages struct {
	Success  string
	Failure  string
	Redirect string
}

// Observer is called after every settled attempt.
type Observer func(form string, s State)

type Option func(*Machine)

func WithObserver(o Observer) Option {
	return func(m *Machine) {
		m.observer = o
	}
}

// Machine drives one form instance through Idle, Submitting, Succeeded and
// Failed. At most one call is running at a time.
type Machine struct {
	name     string
	msgs     Messages
	log      *slog.Logger
	observer Observer

	mu       sync.Mutex
	state    State
	disposed bool
}

func New(name string, msgs Messages, log *slog.Logger, opts ...Option) *Machine {
	m := &Machine{
		name: name,
		msgs: msgs,
		log:  log,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Machine) Name() string {
	return m.name
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Submit runs validate and, if it passes, call. Validation errors never reach
// call. The call gets a context that is not canceled with ctx: a client going
// away abandons the attempt but does not abort it.
func (m *Machine) Submit(ctx context.Context, validate func() error, call func(ctx context.Context) error) (State, error) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return State{}, ErrDisposed
	}

	if m.state.Status == Submitting {
		s := m.state
		m.mu.Unlock()
		return s, ErrInFlight
	}

	if validate != nil {
		if err := validate(); err != nil {
			m.state = Reject(m.state, userMessage(err, m.msgs.Failure))
			s := m.state
			m.mu.Unlock()

			m.log.DebugContext(ctx, "submission rejected", "form", m.name, "error", err)
			m.notify(s)
			return s, err
		}
	}

	s, _ := Begin(m.state)
	m.state = s
	m.mu.Unlock()

	callErr := safeCall(context.WithoutCancel(ctx), call)

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		m.log.InfoContext(ctx, "late submission result discarded", "form", m.name, "error", callErr)
		return State{}, ErrDisposed
	}

	if callErr != nil {
		m.state = Fail(m.state, userMessage(callErr, m.msgs.Failure))
	} else {
		m.state = Succeed(m.state, m.msgs.Success, m.msgs.Redirect)
	}
	s = m.state
	m.mu.Unlock()

	if callErr != nil {
		m.log.ErrorContext(ctx, "submission failed", "form", m.name, "error", callErr)
	} else {
		m.log.InfoContext(ctx, "submission succeeded", "form", m.name)
	}
	m.notify(s)

	return s, callErr
}

// Dispose tears the machine down. Results of calls still running are dropped.
func (m *Machine) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
}

func (m *Machine) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

func (m *Machine) notify(s State) {
	if m.observer != nil {
		m.observer(m.name, s)
	}
}

func safeCall(ctx context.Context, call func(ctx context.Context) error) (err error) {
	if call == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return call(ctx)
}

// userMessage returns the curated text of err if it carries one.
func userMessage(err error, fallback string) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return fallback
}
