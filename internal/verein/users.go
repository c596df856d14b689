package verein

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/verein-site/internal/db"
)

// CreatePendingUser stores an unapproved user and its pending registration in
// one transaction, so a failed registration leaves no account behind.
func (m *Manager) CreatePendingUser(ctx context.Context, user User) (PendingRegistration, error) {
	reg := &db.PendingRegistration{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Email:  user.Email,
		Status: string(StatusPending),
	}

	err := m.db.RunInTransaction(ctx, func(tx *db.Repository) error {
		err := tx.InsertUser(ctx, &db.User{
			ID:           user.ID,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			IsAdmin:      user.IsAdmin,
			Approved:     user.Approved,
			CreatedAt:    user.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		if err := tx.InsertRegistration(ctx, reg); err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}

		return nil
	})
	if errors.Is(err, db.ErrDuplicate) {
		return PendingRegistration{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, user.Email)
	} else if err != nil {
		return PendingRegistration{}, fmt.Errorf("db create pending user: %w", err)
	}

	// created_at is filled by the database
	stored, err := m.db.RegistrationByID(ctx, reg.ID)
	if err != nil {
		return PendingRegistration{}, fmt.Errorf("db get registration: %w", err)
	} else if stored != nil {
		reg = stored
	}

	return NewPendingRegistration(reg), nil
}

func (m *Manager) UserByEmail(ctx context.Context, email string) (*User, error) {
	dbUser, err := m.db.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("db get user by email: %w", err)
	} else if dbUser == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}

	user := NewUser(dbUser)
	return &user, nil
}

func (m *Manager) CreateSession(ctx context.Context, session Session) error {
	err := m.db.InsertSession(ctx, &db.Session{
		ID:        session.ID,
		UserID:    session.User.ID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("db insert session: %w", err)
	}

	return nil
}

// SessionByID returns the stored session with its current user record.
func (m *Manager) SessionByID(ctx context.Context, id string) (*Session, error) {
	dbSession, err := m.db.SessionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get session: %w", err)
	} else if dbSession == nil || dbSession.User == nil {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}

	return &Session{
		ID:        dbSession.ID,
		User:      NewUser(dbSession.User),
		ExpiresAt: dbSession.ExpiresAt,
	}, nil
}

func (m *Manager) DeleteSession(ctx context.Context, id string) error {
	if err := m.db.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("db delete session: %w", err)
	}

	return nil
}
