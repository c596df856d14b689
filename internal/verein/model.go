package verein

import (
	"io"
	"time"
)

// Post is one published article.
// Image is nil when the post has no picture, it is never an empty string.
type Post struct {
	ID        string
	Title     string
	Content   string
	Image     *string
	CreatedAt time.Time
	UserID    string
}

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusDenied   RegistrationStatus = "denied"
)

// Valid reports whether s is one of the known statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// Transition checks that s may move to next. Only pending registrations are
// decided, and a decision is final.
func (s RegistrationStatus) Transition(next RegistrationStatus) error {
	if s != StatusPending || (next != StatusApproved && next != StatusDenied) {
		return ErrInvalidTransition
	}
	return nil
}

// PendingRegistration is a self-service signup awaiting an administrator.
type PendingRegistration struct {
	ID        string
	UserID    string
	Email     string
	Status    RegistrationStatus
	CreatedAt time.Time
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	Approved     bool
	CreatedAt    time.Time
}

// Session is an authenticated login. Token is only set when the session was
// issued or resolved from a token.
type Session struct {
	ID        string
	User      User
	ExpiresAt time.Time
	Token     string
}

// IsOwner reports whether the session user wrote p. This is a presentation
// guard only, the database repeats the check on every write.
func (s *Session) IsOwner(p Post) bool {
	return s != nil && s.User.ID != "" && s.User.ID == p.UserID
}

// CanAuthor reports whether the session may create and change posts.
func (s *Session) CanAuthor() bool {
	return s != nil && s.User.Approved
}

// Upload is a file handed in for object storage.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is a stored file.
type Object struct {
	Bucket      string
	Path        string
	ContentType string
	Size        int64
	Data        []byte
	CreatedAt   time.Time
}
