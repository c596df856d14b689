package verein

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniilsolovey/verein-site/internal/db"
)

// Manager is the data gateway of the site. Every call reads from or writes to
// the database, nothing is cached.
type Manager struct {
	db        *db.Repository
	publicURL string
}

// NewManager creates a Manager. publicURL is the externally visible base URL
// used to build references to stored objects.
func NewManager(repo *db.Repository, publicURL string) *Manager {
	return &Manager{
		db:        repo,
		publicURL: publicURL,
	}
}

// Posts returns all posts ordered by creation date, newest first.
func (m *Manager) Posts(ctx context.Context) ([]Post, error) {
	list, err := m.db.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get posts: %w", err)
	}

	return NewPosts(list), nil
}

func (m *Manager) PostsCount(ctx context.Context) (int, error) {
	count, err := m.db.PostsCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("db get posts count: %w", err)
	}

	return count, nil
}

// PostByID returns ErrNotFound both for unknown and for malformed ids.
func (m *Manager) PostByID(ctx context.Context, id string) (*Post, error) {
	if !ValidPostID(id) {
		return nil, fmt.Errorf("%w: malformed post id %q", ErrNotFound, id)
	}

	dbPost, err := m.db.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, id)
	}

	post := NewPost(dbPost)
	return &post, nil
}

// InsertPost stores a new post under a fresh id and returns it.
func (m *Manager) InsertPost(ctx context.Context, post Post) (Post, error) {
	if post.UserID == "" {
		return Post{}, fmt.Errorf("%w: post without owner", ErrUnauthorized)
	}

	post.ID = uuid.NewString()
	post.Image = NormalizeImage(post.Image)

	if err := m.db.InsertPost(ctx, dbPost(post)); err != nil {
		return Post{}, fmt.Errorf("db insert post: %w", err)
	}

	return post, nil
}

// UpdatePost writes post on behalf of actorID. The update only matches rows
// owned by actorID.
func (m *Manager) UpdatePost(ctx context.Context, actorID string, post Post) error {
	ok, err := m.db.UpdatePost(ctx, actorID, dbPost(post))
	if err != nil {
		return fmt.Errorf("db update post: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: post %s of user %s", ErrNotFound, post.ID, actorID)
	}

	return nil
}

func (m *Manager) DeletePost(ctx context.Context, actorID, postID string) error {
	ok, err := m.db.DeletePost(ctx, actorID, postID)
	if err != nil {
		return fmt.Errorf("db delete post: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: post %s of user %s", ErrNotFound, postID, actorID)
	}

	return nil
}

func (m *Manager) Registrations(ctx context.Context, f *db.RegistrationFilter) ([]PendingRegistration, error) {
	if f != nil && f.Status != "" && !RegistrationStatus(f.Status).Valid() {
		return nil, Invalid("status", MsgInvalidChoice)
	}

	list, err := m.db.Registrations(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("db get registrations: %w", err)
	}

	return NewPendingRegistrations(list), nil
}

func (m *Manager) ApproveRegistration(ctx context.Context, id string) error {
	return m.decide(ctx, id, StatusApproved, db.ProcApproveRegistration)
}

func (m *Manager) DenyRegistration(ctx context.Context, id string) error {
	return m.decide(ctx, id, StatusDenied, db.ProcDenyRegistration)
}

// decide checks the transition locally before invoking the procedure, which
// checks it again inside the database.
func (m *Manager) decide(ctx context.Context, id string, next RegistrationStatus, proc string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed registration id %q", ErrNotFound, id)
	}

	reg, err := m.db.RegistrationByID(ctx, id)
	if err != nil {
		return fmt.Errorf("db get registration: %w", err)
	} else if reg == nil {
		return fmt.Errorf("%w: registration %s", ErrNotFound, id)
	}

	if err := RegistrationStatus(reg.Status).Transition(next); err != nil {
		return fmt.Errorf("registration %s is %s: %w", id, reg.Status, err)
	}

	if err := m.db.CallProcedure(ctx, proc, id); err != nil {
		return fmt.Errorf("db %s: %w", proc, err)
	}

	return nil
}
