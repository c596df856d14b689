package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/urlstruct"
)

const (
	ProcApproveRegistration = "approve_registration"
	ProcDenyRegistration    = "deny_registration"

	uniqueViolation = "23505"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// RegistrationFilter is decoded from URL query values, e.g. ?status=pending&limit=20.
type RegistrationFilter struct {
	Status string
	urlstruct.Pager
}

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

// RunInTransaction runs fn with a repository bound to one transaction. The
// transaction is rolled back when fn fails.
func (r *Repository) RunInTransaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Ping(ctx)
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Close()
	}

	return nil
}

// Posts returns all posts, newest first.
func (r *Repository) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := r.db.ModelContext(ctx, &posts).
		OrderExpr(`"t"."created_at" DESC`).
		OrderExpr(`"t"."id" DESC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) PostsCount(ctx context.Context) (int, error) {
	count, err := r.db.ModelContext(ctx, (*Post)(nil)).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get posts count: %w", err)
	}

	return count, nil
}

func (r *Repository) PostByID(ctx context.Context, id string) (*Post, error) {
	post := &Post{}
	err := r.db.ModelContext(ctx, post).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *Repository) InsertPost(ctx context.Context, post *Post) error {
	if _, err := r.db.ModelContext(ctx, post).Insert(); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// UpdatePost writes the editable columns of post. The row must belong to
// userID, otherwise nothing is updated and false is returned.
func (r *Repository) UpdatePost(ctx context.Context, userID string, post *Post) (bool, error) {
	res, err := r.db.ModelContext(ctx, post).
		Column(Columns.Post.Title, Columns.Post.Content, Columns.Post.Image, Columns.Post.CreatedAt).
		Where(`"t"."id" = ?`, post.ID).
		Where(`"t"."user_id" = ?`, userID).
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// DeletePost removes the post if it belongs to userID.
func (r *Repository) DeletePost(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Where(`"t"."id" = ?`, id).
		Where(`"t"."user_id" = ?`, userID).
		Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) InsertRegistration(ctx context.Context, reg *PendingRegistration) error {
	if _, err := r.db.ModelContext(ctx, reg).Insert(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}

	return nil
}

func (r *Repository) RegistrationByID(ctx context.Context, id string) (*PendingRegistration, error) {
	reg := &PendingRegistration{}
	err := r.db.ModelContext(ctx, reg).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get registration by id: %w", err)
	}

	return reg, nil
}

// Registrations returns registrations newest first, optionally filtered by status.
func (r *Repository) Registrations(ctx context.Context, f *RegistrationFilter) ([]PendingRegistration, error) {
	var regs []PendingRegistration
	query := r.db.ModelContext(ctx, &regs)

	if f != nil {
		if f.Status != "" {
			query = query.Where(`"t"."status" = ?`, f.Status)
		}
		query = query.Limit(f.GetLimit()).Offset(f.GetOffset())
	}

	err := query.
		OrderExpr(`"t"."created_at" DESC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}

	return regs, nil
}

// CallProcedure invokes a server side function taking a single id argument.
func (r *Repository) CallProcedure(ctx context.Context, name, id string) error {
	_, err := r.db.ExecContext(ctx, `SELECT ?(?)`, pg.Ident(name), id)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", name, err)
	}

	return nil
}

func (r *Repository) InsertUser(ctx context.Context, user *User) error {
	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`lower("t"."email") = lower(?)`, email).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) InsertSession(ctx context.Context, session *Session) error {
	if _, err := r.db.ModelContext(ctx, session).Insert(); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// SessionByID returns the session together with its user.
func (r *Repository) SessionByID(ctx context.Context, id string) (*Session, error) {
	session := &Session{}
	err := r.db.ModelContext(ctx, session).
		Relation(Columns.Session.User).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ModelContext(ctx, (*Session)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *Repository) InsertObject(ctx context.Context, obj *StorageObject) error {
	if _, err := r.db.ModelContext(ctx, obj).Insert(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert object: %w", err)
	}

	return nil
}

func (r *Repository) Object(ctx context.Context, bucket, path string) (*StorageObject, error) {
	obj := &StorageObject{}
	err := r.db.ModelContext(ctx, obj).
		Where(`"t"."bucket" = ?`, bucket).
		Where(`"t"."path" = ?`, path).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	return obj, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pg.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
