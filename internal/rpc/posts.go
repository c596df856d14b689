package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/verein-site/internal/pagination"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

//go:generate zenrpc

// PostReader is the read side of the post store.
type PostReader interface {
	Posts(ctx context.Context) ([]verein.Post, error)
	PostsCount(ctx context.Context) (int, error)
	PostByID(ctx context.Context, id string) (*verein.Post, error)
}

// PostsService provides read only RPC methods for posts.
type PostsService struct {
	zenrpc.Service
	posts PostReader
	loc   *time.Location
}

func NewPostsService(posts PostReader, loc *time.Location) *PostsService {
	if loc == nil {
		loc = time.Local
	}
	return &PostsService{posts: posts, loc: loc}
}

// Feed returns the home page window, newest first.
//
//zenrpc:visible number of posts already shown
//zenrpc:return window of posts
//zenrpc:500 internal server error
func (s PostsService) Feed(ctx context.Context, visible *int) (Feed, error) {
	return s.window(ctx, pagination.HomePageSize, visible)
}

// Archive returns the archive window, ten posts per page.
//
//zenrpc:visible number of posts already shown
//zenrpc:return window of posts
//zenrpc:500 internal server error
func (s PostsService) Archive(ctx context.Context, visible *int) (Feed, error) {
	return s.window(ctx, pagination.ArchivePageSize, visible)
}

// Count returns the number of posts.
//
//zenrpc:return count of posts
//zenrpc:500 internal server error
func (s PostsService) Count(ctx context.Context) (int, error) {
	return s.posts.PostsCount(ctx)
}

// ByID retrieves a single post.
//
//zenrpc:id post UUID
//zenrpc:return post
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s PostsService) ByID(ctx context.Context, id string) (*Post, error) {
	post, err := s.posts.PostByID(ctx, id)
	if errors.Is(err, verein.ErrNotFound) {
		return nil, zenrpc.NewStringError(404, verein.MsgPostNotFound)
	} else if err != nil {
		return nil, err
	}

	result := NewPost(*post, s.loc)
	return &result, nil
}

func (s PostsService) window(ctx context.Context, pageSize int, visible *int) (Feed, error) {
	posts, err := s.posts.Posts(ctx)
	if err != nil {
		return Feed{}, err
	}

	var shown int
	if visible != nil {
		shown = *visible
	}

	total := len(posts)
	cursor := pagination.At(pageSize, shown)

	return Feed{
		Posts:       NewPosts(pagination.Window(posts, cursor), s.loc),
		Visible:     cursor.Visible(total),
		Total:       total,
		HasMore:     cursor.HasMore(total),
		NextVisible: cursor.More(total).Visible(total),
	}, nil
}
