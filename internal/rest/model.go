package rest

import (
	"time"

	"github.com/daniilsolovey/verein-site/internal/editor"
	"github.com/daniilsolovey/verein-site/internal/submission"
)

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	Date      string    `json:"date"`
	UserID    string    `json:"userId"`
	IsOwner   bool      `json:"isOwner"`
}

// Feed is one window of the post list.
type Feed struct {
	Posts       []Post `json:"posts"`
	Visible     int    `json:"visible"`
	Total       int    `json:"total"`
	HasMore     bool   `json:"hasMore"`
	NextVisible int    `json:"nextVisible"`
}

type PendingRegistration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Approved bool   `json:"approved"`
}

type Session struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Submission is the answer of every form endpoint.
type Submission struct {
	submission.State
	Post  *Post  `json:"post,omitempty"`
	Token string `json:"token,omitempty"`
}

// EditorView is the state of a post editor.
type EditorView struct {
	Mode     editor.Mode      `json:"mode"`
	Creating bool             `json:"creating"`
	Post     *Post            `json:"post,omitempty"`
	Draft    *editor.Draft    `json:"draft,omitempty"`
	Progress int              `json:"progress"`
	Save     submission.State `json:"save"`
	Upload   submission.State `json:"upload"`
	Delete   submission.State `json:"delete"`
}

type CreatePostRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Image   *string `json:"image"`
	Date    string  `json:"date"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
