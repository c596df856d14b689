// Package forms runs the site's forms through submission machines.
package forms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daniilsolovey/verein-site/internal/mailrelay"
	"github.com/daniilsolovey/verein-site/internal/session"
	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	FormContact      = "contact"
	FormMembership   = "membership"
	FormRegister     = "register"
	FormLogin        = "login"
	FormLogout       = "logout"
	FormRegistration = "registration"
)

var formMessages = map[string]submission.Messages{
	FormContact:      {Success: verein.MsgContactSent, Failure: verein.MsgSendError},
	FormMembership:   {Success: verein.MsgMembershipSent, Failure: verein.MsgSendError},
	FormRegister:     {Success: verein.MsgRegistered, Failure: verein.MsgRegisterError, Redirect: "/login"},
	FormLogin:        {Success: verein.MsgLoggedIn, Failure: verein.MsgLoginError, Redirect: "/"},
	FormLogout:       {Success: verein.MsgLoggedOut, Failure: verein.MsgLogoutError, Redirect: "/"},
	FormRegistration: {Success: verein.MsgRegistrationDone, Failure: verein.MsgRegistrationError},
}

type Relay interface {
	SendContact(ctx context.Context, req mailrelay.ContactRequest) error
	SendMembership(ctx context.Context, req mailrelay.MembershipRequest) error
}

type Auth interface {
	Register(ctx context.Context, email, password string) (verein.PendingRegistration, error)
	SignIn(ctx context.Context, email, password string) (*verein.Session, error)
	SignOut(ctx context.Context, session verein.Session) error
}

type Registrations interface {
	ApproveRegistration(ctx context.Context, id string) error
	DenyRegistration(ctx context.Context, id string) error
}

// Service keeps one machine per form and owner. Owners are session or visitor
// keys from the session package.
type Service struct {
	relay    Relay
	auth     Auth
	regs     Registrations
	registry *session.Registry
	log      *slog.Logger
	observer submission.Observer
}

func NewService(relay Relay, auth Auth, regs Registrations, registry *session.Registry, log *slog.Logger, observer submission.Observer) *Service {
	return &Service{
		relay:    relay,
		auth:     auth,
		regs:     regs,
		registry: registry,
		log:      log,
		observer: observer,
	}
}

func (s *Service) machine(owner, form, instance string) *submission.Machine {
	return session.Get(s.registry, owner, instance, func() *submission.Machine {
		return s.newMachine(form)
	})
}

func (s *Service) newMachine(form string) *submission.Machine {
	var opts []submission.Option
	if s.observer != nil {
		opts = append(opts, submission.WithObserver(s.observer))
	}
	return submission.New(form, formMessages[form], s.log, opts...)
}

// State returns the current state of form for owner.
func (s *Service) State(owner, form string) submission.State {
	m, ok := session.Lookup[*submission.Machine](s.registry, owner, form)
	if !ok {
		return submission.State{}
	}
	return m.State()
}

func (s *Service) SendContact(ctx context.Context, owner string, f ContactForm) (submission.State, error) {
	return s.machine(owner, FormContact, FormContact).Submit(ctx, f.Validate, func(ctx context.Context) error {
		return s.relay.SendContact(ctx, f.request())
	})
}

func (s *Service) SendMembership(ctx context.Context, owner string, f MembershipForm) (submission.State, error) {
	return s.machine(owner, FormMembership, FormMembership).Submit(ctx, f.Validate, func(ctx context.Context) error {
		return s.relay.SendMembership(ctx, f.request())
	})
}

// Register creates the account together with its pending registration in
// one step. No session is opened, so the account stays signed out until an
// administrator approves it and its owner logs in.
func (s *Service) Register(ctx context.Context, owner string, f RegistrationForm) (submission.State, error) {
	return s.machine(owner, FormRegister, FormRegister).Submit(ctx, f.Validate, func(ctx context.Context) error {
		reg, err := s.auth.Register(ctx, f.Email, f.Password)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}

		s.log.InfoContext(ctx, "registration pending", "registrationId", reg.ID)
		return nil
	})
}

// Login returns the new session on success.
func (s *Service) Login(ctx context.Context, owner string, f LoginForm) (submission.State, *verein.Session, error) {
	var signedIn *verein.Session
	state, err := s.machine(owner, FormLogin, FormLogin).Submit(ctx, f.Validate, func(ctx context.Context) error {
		sess, err := s.auth.SignIn(ctx, f.Email, f.Password)
		if err != nil {
			return err
		}
		signedIn = sess
		return nil
	})
	if err != nil {
		return state, nil, err
	}

	return state, signedIn, nil
}

// Logout signs sess out. Its machine is not kept in the registry since
// signing out disposes everything the session owns.
func (s *Service) Logout(ctx context.Context, sess verein.Session) (submission.State, error) {
	return s.newMachine(FormLogout).Submit(ctx, nil, func(ctx context.Context) error {
		return s.auth.SignOut(ctx, sess)
	})
}

// Decide approves or denies a pending registration.
func (s *Service) Decide(ctx context.Context, owner, id string, approve bool) (submission.State, error) {
	validate := func() error {
		if _, err := uuid.Parse(id); err != nil {
			return verein.Invalid("id", verein.MsgInvalidChoice)
		}
		return nil
	}

	return s.machine(owner, FormRegistration, FormRegistration+":"+id).Submit(ctx, validate, func(ctx context.Context) error {
		if approve {
			return s.regs.ApproveRegistration(ctx, id)
		}
		return s.regs.DenyRegistration(ctx, id)
	})
}
