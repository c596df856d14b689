package rpc

import (
	"time"

	"github.com/daniilsolovey/verein-site/internal/verein"
)

func NewPost(p verein.Post, loc *time.Location) Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		Date:      verein.FormatDate(p.CreatedAt, loc),
		CreatedAt: p.CreatedAt,
	}
}

func NewPosts(in []verein.Post, loc *time.Location) Posts {
	out := make(Posts, len(in))
	for i := range in {
		out[i] = NewPost(in[i], loc)
	}
	return out
}
