package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/editor"
	"github.com/daniilsolovey/verein-site/internal/session"
	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

// newPostID addresses the creation editor in draft routes.
const newPostID = "new"

func editorName(postID string) string {
	return "editor:" + postID
}

// openEditor re-reads the post and replaces any editor the session holds
// for it.
func (h *Handler) openEditor(c echo.Context, postID string) (*editor.Editor, error) {
	sess := currentSession(c)
	owner := session.OwnerKey(*sess)
	name := editorName(postID)
	h.registry.Drop(owner, name)

	if postID == newPostID {
		return session.Get(h.registry, owner, name, func() *editor.Editor {
			return editor.NewPost(sess.User.ID, time.Now(), h.content, h.content, h.editorConfig())
		}), nil
	}

	post, err := h.content.PostByID(c.Request().Context(), postID)
	if err != nil {
		return nil, err
	}

	return session.Get(h.registry, owner, name, func() *editor.Editor {
		return editor.New(*post, sess.User.ID, h.content, h.content, h.editorConfig())
	}), nil
}

// creationEditor returns the running creation editor of the session so that a
// repeated create while one is saving is refused.
func (h *Handler) creationEditor(c echo.Context) *editor.Editor {
	sess := currentSession(c)
	owner := session.OwnerKey(*sess)
	create := func() *editor.Editor {
		return editor.NewPost(sess.User.ID, time.Now(), h.content, h.content, h.editorConfig())
	}

	e := session.Get(h.registry, owner, editorName(newPostID), create)
	if !e.Creating() {
		h.registry.Drop(owner, editorName(newPostID))
		e = session.Get(h.registry, owner, editorName(newPostID), create)
	}

	return e
}

func (h *Handler) lookupEditor(c echo.Context) (*editor.Editor, bool) {
	return session.Lookup[*editor.Editor](h.registry, session.OwnerKey(*currentSession(c)), editorName(c.Param("id")))
}

func (h *Handler) editorView(c echo.Context, e *editor.Editor) EditorView {
	return NewEditorView(e, currentSession(c), h.loc)
}

func (h *Handler) respondEditorError(c echo.Context, e *editor.Editor, err error) error {
	switch {
	case errors.Is(err, verein.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: verein.MsgPostNotFound})
	case errors.Is(err, verein.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "Nur der Autor kann diesen Beitrag bearbeiten."})
	case errors.Is(err, editor.ErrNotEditing), errors.Is(err, submission.ErrInFlight):
		return c.JSON(http.StatusConflict, h.editorView(c, e))
	case errors.Is(err, verein.ErrInvalidInput):
		var verr *verein.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: verr.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Ungültige Eingabe."})
	}

	return h.handleError(c, err, http.StatusInternalServerError, verein.MsgPostLoadError)
}

func (h *Handler) draftNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Kein Entwurf vorhanden."})
}

// BeginEdit handles POST /api/v1/posts/:id/edit
// @Summary Start editing a post
// @Description Snapshots the post into a draft. The id "new" starts a new post dated today.
// @Tags editor
// @Produce json
// @Param id path string true "Post ID or new"
// @Success 200 {object} rest.EditorView
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id}/edit [post]
func (h *Handler) BeginEdit(c echo.Context) error {
	e, err := h.openEditor(c, c.Param("id"))
	if err != nil {
		return h.respondEditorError(c, nil, err)
	}

	if err := e.Begin(); err != nil {
		h.registry.Drop(session.OwnerKey(*currentSession(c)), editorName(c.Param("id")))
		return h.respondEditorError(c, e, err)
	}

	return c.JSON(http.StatusOK, h.editorView(c, e))
}

// Draft handles GET /api/v1/posts/:id/draft
// @Summary Get editor state
// @Tags editor
// @Produce json
// @Param id path string true "Post ID or new"
// @Success 200 {object} rest.EditorView
// @Failure 401,404 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id}/draft [get]
func (h *Handler) Draft(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	return c.JSON(http.StatusOK, h.editorView(c, e))
}

// EditDraft handles PATCH /api/v1/posts/:id/draft
// @Summary Change draft fields
// @Description Only the draft changes, the post stays untouched until commit
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Post ID or new"
// @Param patch body editor.Patch true "Fields to change"
// @Success 200 {object} rest.EditorView
// @Failure 400,401,404,409,422 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id}/draft [patch]
func (h *Handler) EditDraft(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	var patch editor.Patch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	if err := e.Edit(patch); err != nil {
		return h.respondEditorError(c, e, err)
	}

	return c.JSON(http.StatusOK, h.editorView(c, e))
}

// CancelDraft handles DELETE /api/v1/posts/:id/draft
// @Summary Discard the draft
// @Tags editor
// @Produce json
// @Param id path string true "Post ID or new"
// @Success 200 {object} rest.EditorView
// @Failure 401,404,409 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id}/draft [delete]
func (h *Handler) CancelDraft(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	if err := e.Cancel(); err != nil {
		return h.respondEditorError(c, e, err)
	}

	return c.JSON(http.StatusOK, h.editorView(c, e))
}

// AttachImage handles PUT /api/v1/posts/:id/draft/image
// @Summary Upload the draft image
// @Description Accepts JPG, PNG and WebP up to 5 MB in the form field "image"
// @Tags editor
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post ID or new"
// @Param image formData file true "Image"
// @Success 200 {object} rest.Submission
// @Failure 400,401,404,409,422,500 {object} rest.Submission
// @Router /api/v1/posts/{id}/draft/image [put]
func (h *Handler) AttachImage(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, verein.MsgRequired)
	}

	file, err := fh.Open()
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, verein.MsgImageUploadErr)
	}
	defer file.Close()

	state, err := e.AttachImage(c.Request().Context(), verein.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	})

	return h.respondSubmission(c, Submission{State: state}, err)
}

// DetachImage handles DELETE /api/v1/posts/:id/draft/image
// @Summary Remove the draft image
// @Description The stored object is kept
// @Tags editor
// @Produce json
// @Param id path string true "Post ID or new"
// @Success 200 {object} rest.EditorView
// @Failure 401,404,409 {object} rest.ErrorResponse
// @Router /api/v1/posts/{id}/draft/image [delete]
func (h *Handler) DetachImage(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	if err := e.DetachImage(); err != nil {
		return h.respondEditorError(c, e, err)
	}

	return c.JSON(http.StatusOK, h.editorView(c, e))
}

// CommitDraft handles POST /api/v1/posts/:id/draft/commit
// @Summary Save the draft
// @Tags editor
// @Produce json
// @Param id path string true "Post ID or new"
// @Success 200 {object} rest.Submission
// @Failure 401,403,404,409,422,500 {object} rest.Submission
// @Router /api/v1/posts/{id}/draft/commit [post]
func (h *Handler) CommitDraft(c echo.Context) error {
	e, ok := h.lookupEditor(c)
	if !ok {
		return h.draftNotFound(c)
	}

	state, err := e.Commit(c.Request().Context())
	resp := Submission{State: state}
	if err == nil {
		post := NewPost(e.Post(), currentSession(c), h.loc)
		resp.Post = &post
	}

	return h.respondSubmission(c, resp, err)
}

// CreatePost handles POST /api/v1/posts
// @Summary Create a post
// @Description One step creation. date defaults to today, image is an optional URL of a stored object.
// @Tags editor
// @Accept json
// @Produce json
// @Param post body rest.CreatePostRequest true "Post"
// @Success 200 {object} rest.Submission
// @Failure 400,401,403,409,422,500 {object} rest.Submission
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	e := h.creationEditor(c)

	patch := editor.Patch{Title: &req.Title, Content: &req.Content, Image: req.Image}
	if req.Date != "" {
		patch.Date = &req.Date
	}
	if err := e.Edit(patch); err != nil {
		return h.respondSubmission(c, Submission{State: submission.Reject(submission.State{}, userMessage(err))}, err)
	}

	state, err := e.Commit(c.Request().Context())
	resp := Submission{State: state}
	if err == nil {
		post := NewPost(e.Post(), currentSession(c), h.loc)
		resp.Post = &post
		h.registry.Drop(session.OwnerKey(*currentSession(c)), editorName(newPostID))
	}

	return h.respondSubmission(c, resp, err)
}

// DeletePost handles DELETE /api/v1/posts/:id
// @Summary Delete a post
// @Description Needs confirm=true, otherwise nothing is deleted
// @Tags editor
// @Produce json
// @Param id path string true "Post ID"
// @Param confirm query bool false "Confirm the deletion"
// @Success 200 {object} rest.Submission
// @Failure 401,403,404,409,428,500 {object} rest.Submission
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c echo.Context) error {
	var confirmed bool
	if err := echo.QueryParamsBinder(c).Bool("confirm", &confirmed).BindError(); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	postID := c.Param("id")
	owner := session.OwnerKey(*currentSession(c))

	e, open := h.lookupEditor(c)
	if !open {
		post, err := h.content.PostByID(c.Request().Context(), postID)
		if err != nil {
			return h.respondEditorError(c, nil, err)
		}
		e = session.Get(h.registry, owner, editorName(postID), func() *editor.Editor {
			return editor.New(*post, currentSession(c).User.ID, h.content, h.content, h.editorConfig())
		})
	}

	state, err := e.Delete(c.Request().Context(), confirmed)
	switch {
	case errors.Is(err, submission.ErrInFlight):
	case open && errors.Is(err, editor.ErrConfirmationRequired):
		// an open draft survives an unconfirmed delete
	default:
		h.registry.Drop(owner, editorName(postID))
	}

	return h.respondSubmission(c, Submission{State: state}, err)
}

func userMessage(err error) string {
	var verr *verein.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return verein.MsgPostCreateError
}
