package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/db"
	"github.com/daniilsolovey/verein-site/internal/editor"
	"github.com/daniilsolovey/verein-site/internal/forms"
	"github.com/daniilsolovey/verein-site/internal/session"
	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

// Content is the data gateway used by the handlers.
type Content interface {
	Posts(ctx context.Context) ([]verein.Post, error)
	PostByID(ctx context.Context, id string) (*verein.Post, error)
	InsertPost(ctx context.Context, post verein.Post) (verein.Post, error)
	UpdatePost(ctx context.Context, actorID string, post verein.Post) error
	DeletePost(ctx context.Context, actorID, postID string) error
	Upload(ctx context.Context, bucket, path string, file verein.Upload, progress func(int)) (string, error)
	Object(ctx context.Context, bucket, path string) (*verein.Object, error)
	Registrations(ctx context.Context, f *db.RegistrationFilter) ([]verein.PendingRegistration, error)
}

// Authenticator resolves session tokens.
type Authenticator interface {
	Session(ctx context.Context, token string) (*verein.Session, error)
}

type Deps struct {
	Content  Content
	Auth     Authenticator
	Forms    *forms.Service
	Registry *session.Registry
	Ping     func(ctx context.Context) error
	Location *time.Location
	Observer submission.Observer

	// RPC is mounted on /rpc when set.
	RPC http.Handler

	// CookieSecure marks cookies as HTTPS only.
	CookieSecure bool
}

type Handler struct {
	content      Content
	auth         Authenticator
	forms        *forms.Service
	registry     *session.Registry
	rpc          http.Handler
	ping         func(ctx context.Context) error
	loc          *time.Location
	observer     submission.Observer
	cookieSecure bool
	log          *slog.Logger
}

func NewHandler(deps Deps, log *slog.Logger) *Handler {
	if deps.Location == nil {
		deps.Location = time.Local
	}

	return &Handler{
		content:      deps.Content,
		auth:         deps.Auth,
		forms:        deps.Forms,
		registry:     deps.Registry,
		rpc:          deps.RPC,
		ping:         deps.Ping,
		loc:          deps.Location,
		observer:     deps.Observer,
		cookieSecure: deps.CookieSecure,
		log:          log,
	}
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message, "path", c.Path())
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// respondSubmission maps the outcome of a submission to a status code. The
// body is always the submission state, raw errors are only logged.
func (h *Handler) respondSubmission(c echo.Context, resp Submission, err error) error {
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, submission.ErrInFlight):
		status = http.StatusConflict
	case errors.Is(err, submission.ErrDisposed):
		status = http.StatusGone
	case errors.Is(err, editor.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, verein.ErrInvalidTransition),
		errors.Is(err, verein.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, verein.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, verein.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, verein.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, verein.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("submission failed", "error", err, "path", c.Path())
	} else if err != nil {
		h.log.Debug("submission not accepted", "error", err, "statusCode", status, "path", c.Path())
	}

	return c.JSON(status, resp)
}

func (h *Handler) editorConfig() editor.Config {
	return editor.Config{
		Location: h.loc,
		Logger:   h.log,
		Observer: h.observer,
	}
}
