package rest

import (
	"time"

	"github.com/daniilsolovey/verein-site/internal/editor"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewPost(p verein.Post, viewer *verein.Session, loc *time.Location) Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		Date:      verein.FormatDate(p.CreatedAt, loc),
		UserID:    p.UserID,
		IsOwner:   viewer.IsOwner(p),
	}
}

func NewPendingRegistration(r verein.PendingRegistration) PendingRegistration {
	return PendingRegistration{
		ID:        r.ID,
		UserID:    r.UserID,
		Email:     r.Email,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func NewSession(s verein.Session) Session {
	return Session{
		User: User{
			ID:       s.User.ID,
			Email:    s.User.Email,
			IsAdmin:  s.User.IsAdmin,
			Approved: s.User.Approved,
		},
		ExpiresAt: s.ExpiresAt,
	}
}

func NewEditorView(e *editor.Editor, viewer *verein.Session, loc *time.Location) EditorView {
	view := EditorView{
		Mode:     e.Mode(),
		Creating: e.Creating(),
		Progress: e.Progress(),
		Save:     e.SaveState(),
		Upload:   e.UploadState(),
		Delete:   e.DeleteState(),
	}

	if !view.Creating {
		post := NewPost(e.Post(), viewer, loc)
		view.Post = &post
	}
	if view.Mode == editor.Editing {
		draft := e.Draft()
		view.Draft = &draft
	}

	return view
}
