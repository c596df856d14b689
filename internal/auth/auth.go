// Package auth signs users up and in and issues session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/verein-site/internal/verein"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

// Store persists users and sessions.
type Store interface {
	// CreatePendingUser stores the user and its pending registration
	// atomically.
	CreatePendingUser(ctx context.Context, user verein.User) (verein.PendingRegistration, error)
	UserByEmail(ctx context.Context, email string) (*verein.User, error)
	CreateSession(ctx context.Context, session verein.Session) error
	SessionByID(ctx context.Context, id string) (*verein.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type Config struct {
	Secret     string
	BcryptCost int
	SessionTTL time.Duration
}

type EventType int

const (
	SignedIn EventType = iota + 1
	SignedOut
)

func (t EventType) String() string {
	switch t {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	}
	return "unknown"
}

// Event describes a change of the authentication state of one session.
type Event struct {
	Type    EventType
	Session verein.Session
}

type Listener func(Event)

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Service handles sign up, sign in and session tokens. Tokens are HS256 JWTs
// naming a stored session, so signing out revokes them.
type Service struct {
	store  Store
	secret []byte
	cost   int
	ttl    time.Duration
	log    *slog.Logger
	now    func() time.Time

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewService(store Store, cfg Config, log *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}

	return &Service{
		store:     store,
		secret:    []byte(cfg.Secret),
		cost:      cfg.BcryptCost,
		ttl:       cfg.SessionTTL,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// Register creates an account that still needs approval together with its
// pending registration. No session is opened, so the account stays signed out.
func (s *Service) Register(ctx context.Context, email, password string) (verein.PendingRegistration, error) {
	_, reg, err := s.register(ctx, email, password)
	return reg, err
}

// SignUp registers an account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*verein.Session, error) {
	user, _, err := s.register(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *Service) register(ctx context.Context, email, password string) (verein.User, verein.PendingRegistration, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := verein.ValidateEmail("email", email); err != nil {
		return verein.User{}, verein.PendingRegistration{}, err
	}
	if len(password) < verein.MinPasswordLength {
		return verein.User{}, verein.PendingRegistration{}, verein.Invalid("password", verein.MsgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return verein.User{}, verein.PendingRegistration{}, fmt.Errorf("hash password: %w", err)
	}

	user := verein.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	reg, err := s.store.CreatePendingUser(ctx, user)
	if err != nil {
		return verein.User{}, verein.PendingRegistration{}, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "userId", user.ID, "registrationId", reg.ID)
	return user, reg, nil
}

// SignIn checks the credentials. Unknown users and wrong passwords are not
// told apart, accounts without approval are refused with ErrNotApproved.
func (s *Service) SignIn(ctx context.Context, email, password string) (*verein.Session, error) {
	user, err := s.store.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, verein.ErrNotFound) {
		return nil, verein.ErrUnauthorized
	} else if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, verein.ErrUnauthorized
	}

	if !user.Approved {
		return nil, verein.ErrNotApproved
	}

	return s.issue(ctx, *user)
}

// SignOut revokes the session.
func (s *Service) SignOut(ctx context.Context, session verein.Session) error {
	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.emit(Event{Type: SignedOut, Session: session})
	return nil
}

// Session resolves a token to its stored session. Any problem with the token
// or the session is reported as ErrUnauthorized.
func (s *Service) Session(ctx context.Context, token string) (*verein.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, verein.ErrUnauthorized
	}

	session, err := s.store.SessionByID(ctx, c.SessionID)
	if errors.Is(err, verein.ErrNotFound) {
		return nil, verein.ErrUnauthorized
	} else if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.User.ID != c.Subject || !session.ExpiresAt.After(s.now()) {
		return nil, verein.ErrUnauthorized
	}

	session.Token = token
	return session, nil
}

// OnAuthStateChange registers l for sign in and sign out events. The returned
// func removes it again.
func (s *Service) OnAuthStateChange(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) issue(ctx context.Context, user verein.User) (*verein.Session, error) {
	now := s.now()
	session := verein.Session{
		ID:        uuid.NewString(),
		User:      user,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	session.Token = token

	s.log.InfoContext(ctx, "user signed in", "userId", user.ID)
	s.emit(Event{Type: SignedIn, Session: session})

	return &session, nil
}

func (s *Service) emit(e Event) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
}
