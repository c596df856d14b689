// Package editor toggles a post between its read view and an editable draft.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	ImageBucket = "images"
	imagePrefix = "posts/"
)

var (
	ErrNotOwner             = fmt.Errorf("not the post owner: %w", verein.ErrForbidden)
	ErrNotEditing           = errors.New("editor is not editing")
	ErrConfirmationRequired = errors.New("deletion needs confirmation")
)

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "viewing":
		*m = Viewing
	case "editing":
		*m = Editing
	default:
		return fmt.Errorf("unknown editor mode %q", text)
	}
	return nil
}

// Draft holds the staged fields. Date uses verein.DateLayout.
type Draft struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Image   *string `json:"image"`
	Date    string  `json:"date"`
}

// Patch changes the draft fields that are set. Image takes an existing
// reference, an empty string removes the image.
type Patch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
	Image   *string `json:"image"`
}

type Store interface {
	InsertPost(ctx context.Context, post verein.Post) (verein.Post, error)
	UpdatePost(ctx context.Context, actorID string, post verein.Post) error
	DeletePost(ctx context.Context, actorID, postID string) error
}

type Uploader interface {
	Upload(ctx context.Context, bucket, path string, file verein.Upload, progress func(int)) (string, error)
}

type Config struct {
	Location *time.Location
	Logger   *slog.Logger
	Observer submission.Observer
}

// Editor belongs to one viewer and one post.
type Editor struct {
	store    Store
	uploader Uploader
	loc      *time.Location
	viewerID string

	create *submission.Machine
	save   *submission.Machine
	remove *submission.Machine
	upload *submission.Machine

	mu       sync.Mutex
	post     verein.Post
	creating bool
	mode     Mode
	draft    Draft
	progress int
	disposed bool

	// machine of the last commit
	committed *submission.Machine
}

// New returns an editor showing post to viewerID.
func New(post verein.Post, viewerID string, store Store, uploader Uploader, cfg Config) *Editor {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var opts []submission.Option
	if cfg.Observer != nil {
		opts = append(opts, submission.WithObserver(cfg.Observer))
	}

	return &Editor{
		store:    store,
		uploader: uploader,
		loc:      cfg.Location,
		viewerID: viewerID,
		post:     post,
		create: submission.New("post-create", submission.Messages{
			Success:  verein.MsgPostCreated,
			Failure:  verein.MsgPostCreateError,
			Redirect: "/",
		}, cfg.Logger, opts...),
		save: submission.New("post-edit", submission.Messages{
			Success: verein.MsgPostSaved,
			Failure: verein.MsgPostSaveError,
		}, cfg.Logger, opts...),
		remove: submission.New("post-delete", submission.Messages{
			Success:  verein.MsgPostDeleted,
			Failure:  verein.MsgPostDeleteError,
			Redirect: "/",
		}, cfg.Logger, opts...),
		upload: submission.New("image-upload", submission.Messages{
			Success: verein.MsgImageUploaded,
			Failure: verein.MsgImageUploadErr,
		}, cfg.Logger, opts...),
	}
}

// NewPost returns an editor for a post that does not exist yet. It starts in
// Editing with an empty draft dated today.
func NewPost(viewerID string, today time.Time, store Store, uploader Uploader, cfg Config) *Editor {
	e := New(verein.Post{UserID: viewerID}, viewerID, store, uploader, cfg)
	e.creating = true
	e.mode = Editing
	e.draft = Draft{Date: verein.FormatDate(today, e.loc)}

	return e
}

// CanEdit reports whether the viewer owns the post. The check only guards the
// view, the store scopes every write to the owner again.
func (e *Editor) CanEdit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canEdit()
}

func (e *Editor) canEdit() bool {
	return e.viewerID != "" && e.viewerID == e.post.UserID
}

// Begin snapshots the post into the draft and enters Editing.
func (e *Editor) Begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canEdit() {
		return ErrNotOwner
	}
	if e.mode == Editing {
		return nil
	}

	e.mode = Editing
	e.draft = Draft{
		Title:   e.post.Title,
		Content: e.post.Content,
		Image:   verein.NormalizeImage(e.post.Image),
		Date:    verein.FormatDate(e.post.CreatedAt, e.loc),
	}

	return nil
}

// Edit applies p to the draft only.
func (e *Editor) Edit(p Patch) error {
	if e.saving() {
		return submission.ErrInFlight
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != Editing {
		return ErrNotEditing
	}

	if p.Image != nil && *p.Image != "" {
		if err := verein.ValidateImageRef(*p.Image); err != nil {
			return err
		}
	}

	if p.Title != nil {
		e.draft.Title = *p.Title
	}
	if p.Content != nil {
		e.draft.Content = *p.Content
	}
	if p.Date != nil {
		e.draft.Date = *p.Date
	}
	if p.Image != nil {
		e.draft.Image = verein.NormalizeImage(p.Image)
	}

	return nil
}

// AttachImage uploads file and points the draft image at it. Type and size are
// checked before anything is sent to storage.
func (e *Editor) AttachImage(ctx context.Context, file verein.Upload) (submission.State, error) {
	if err := e.requireEditing(); err != nil {
		return e.upload.State(), err
	}
	if e.saving() {
		return e.upload.State(), submission.ErrInFlight
	}

	name := imagePrefix + uuid.NewString() + strings.ToLower(path.Ext(file.Filename))

	return e.upload.Submit(ctx, func() error {
		return verein.ValidateImage(file.ContentType, file.Size)
	}, func(ctx context.Context) error {
		defer e.setProgress(0)

		ref, err := e.uploader.Upload(ctx, ImageBucket, name, file, e.setProgress)
		if err != nil {
			return err
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.disposed && e.mode == Editing {
			e.draft.Image = &ref
		}

		return nil
	})
}

// DetachImage clears the draft image. The stored object is kept.
func (e *Editor) DetachImage() error {
	if e.uploading() {
		return submission.ErrInFlight
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != Editing {
		return ErrNotEditing
	}
	e.draft.Image = nil

	return nil
}

// Progress returns the upload progress in percent, 0 when idle.
func (e *Editor) Progress() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

func (e *Editor) setProgress(pct int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress = max(0, min(pct, 100))
}

// Commit validates the draft and writes it. On success the post view shows the
// committed values and the editor returns to Viewing, on failure the draft is
// kept. A commit is refused while an image upload is running.
func (e *Editor) Commit(ctx context.Context) (submission.State, error) {
	if e.uploading() {
		return e.SaveState(), submission.ErrInFlight
	}

	e.mu.Lock()
	if e.mode != Editing {
		e.mu.Unlock()
		return e.save.State(), ErrNotEditing
	}
	draft, base, creating := e.draft, e.post, e.creating
	e.mu.Unlock()

	machine := e.save
	if creating {
		machine = e.create
	}

	e.mu.Lock()
	e.committed = machine
	e.mu.Unlock()

	var date time.Time
	validate := func() error {
		if err := verein.Required("title", draft.Title); err != nil {
			return err
		}
		if err := verein.Required("content", draft.Content); err != nil {
			return err
		}

		var err error
		date, err = verein.ParseDate(draft.Date, e.loc)
		return err
	}

	return machine.Submit(ctx, validate, func(ctx context.Context) error {
		next := base
		next.Title = draft.Title
		next.Content = draft.Content
		next.Image = verein.NormalizeImage(draft.Image)
		next.CreatedAt = date

		if creating {
			created, err := e.store.InsertPost(ctx, next)
			if err != nil {
				return err
			}
			next = created
		} else if err := e.store.UpdatePost(ctx, e.viewerID, next); err != nil {
			return err
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.disposed {
			e.post = next
			e.creating = false
			e.mode = Viewing
			e.draft = Draft{}
		}

		return nil
	})
}

// Cancel drops the draft and returns to Viewing. A new post has no view, its
// draft is reset instead.
func (e *Editor) Cancel() error {
	if e.saving() || e.uploading() {
		return submission.ErrInFlight
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != Editing {
		return ErrNotEditing
	}

	if e.creating {
		e.draft = Draft{Date: verein.FormatDate(time.Now(), e.loc)}
		return nil
	}
	e.mode = Viewing
	e.draft = Draft{}

	return nil
}

// Delete removes the post. Without confirmed nothing is sent.
func (e *Editor) Delete(ctx context.Context, confirmed bool) (submission.State, error) {
	e.mu.Lock()
	owner := e.canEdit() && !e.creating
	postID := e.post.ID
	e.mu.Unlock()

	if !owner {
		return e.remove.State(), ErrNotOwner
	}
	if !confirmed {
		return e.remove.State(), ErrConfirmationRequired
	}

	return e.remove.Submit(ctx, nil, func(ctx context.Context) error {
		return e.store.DeletePost(ctx, e.viewerID, postID)
	})
}

func (e *Editor) requireEditing() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Editing {
		return ErrNotEditing
	}
	return nil
}

func (e *Editor) saving() bool {
	return e.save.State().Status == submission.Submitting || e.create.State().Status == submission.Submitting
}

func (e *Editor) uploading() bool {
	return e.upload.State().Status == submission.Submitting
}

func (e *Editor) Post() verein.Post {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.post
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *Editor) Creating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creating
}

// SaveState returns the state of the last commit.
func (e *Editor) SaveState() submission.State {
	e.mu.Lock()
	machine := e.committed
	e.mu.Unlock()

	if machine == nil {
		return submission.State{}
	}
	return machine.State()
}

func (e *Editor) UploadState() submission.State {
	return e.upload.State()
}

func (e *Editor) DeleteState() submission.State {
	return e.remove.State()
}

// Dispose tears the editor down. Results of running calls are dropped.
func (e *Editor) Dispose() {
	e.mu.Lock()
	e.disposed = true
	e.mu.Unlock()

	e.create.Dispose()
	e.save.Dispose()
	e.remove.Dispose()
	e.upload.Dispose()
}
