package editor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	ownerID  = "0b9d4c61-3f0e-4d5a-9c57-1d2e3f4a5b6c"
	otherID  = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	postID   = "5f1c2e3d-4b5a-4c6d-8e7f-000000000001"
	imageURL = "http://localhost:3000/storage/v1/object/public/images/posts/old.png"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// mockStore is a manual stub implementation of Store
type mockStore struct {
	insertPostFunc func(ctx context.Context, post verein.Post) (verein.Post, error)
	updatePostFunc func(ctx context.Context, actorID string, post verein.Post) error
	deletePostFunc func(ctx context.Context, actorID, postID string) error

	inserts, updates, deletes int
}

func (m *mockStore) InsertPost(ctx context.Context, post verein.Post) (verein.Post, error) {
	m.inserts++
	if m.insertPostFunc != nil {
		return m.insertPostFunc(ctx, post)
	}
	post.ID = postID
	return post, nil
}

func (m *mockStore) UpdatePost(ctx context.Context, actorID string, post verein.Post) error {
	m.updates++
	if m.updatePostFunc != nil {
		return m.updatePostFunc(ctx, actorID, post)
	}
	return nil
}

func (m *mockStore) DeletePost(ctx context.Context, actorID, postID string) error {
	m.deletes++
	if m.deletePostFunc != nil {
		return m.deletePostFunc(ctx, actorID, postID)
	}
	return nil
}

// mockUploader is a manual stub implementation of Uploader
type mockUploader struct {
	uploadFunc func(ctx context.Context, bucket, path string, file verein.Upload, progress func(int)) (string, error)

	calls int
}

func (m *mockUploader) Upload(ctx context.Context, bucket, path string, file verein.Upload, progress func(int)) (string, error) {
	m.calls++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, bucket, path, file, progress)
	}
	return "http://localhost:3000/storage/v1/object/public/" + bucket + "/" + path, nil
}

func testPost() verein.Post {
	img := imageURL
	return verein.Post{
		ID:        postID,
		Title:     "Sommerfest",
		Content:   "Am Samstag feiern wir.",
		Image:     &img,
		CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		UserID:    ownerID,
	}
}

func newTestEditor(viewerID string, store *mockStore, uploader *mockUploader) *Editor {
	return New(testPost(), viewerID, store, uploader, Config{Location: time.UTC, Logger: noOpLogger()})
}

func ptr(s string) *string {
	return &s
}

func TestEditor_Begin(t *testing.T) {
	t.Run("OwnerSnapshotsPost", func(t *testing.T) {
		e := newTestEditor(ownerID, &mockStore{}, &mockUploader{})

		require.NoError(t, e.Begin())
		assert.Equal(t, Editing, e.Mode())
		assert.Equal(t, Draft{
			Title:   "Sommerfest",
			Content: "Am Samstag feiern wir.",
			Image:   ptr(imageURL),
			Date:    "2024-06-01",
		}, e.Draft())
	})

	t.Run("NonOwnerStaysViewing", func(t *testing.T) {
		e := newTestEditor(otherID, &mockStore{}, &mockUploader{})

		assert.False(t, e.CanEdit())
		assert.ErrorIs(t, e.Begin(), verein.ErrForbidden)
		assert.Equal(t, Viewing, e.Mode())
	})

	t.Run("AnonymousStaysViewing", func(t *testing.T) {
		e := newTestEditor("", &mockStore{}, &mockUploader{})
		assert.ErrorIs(t, e.Begin(), ErrNotOwner)
	})
}

func TestEditor_EditOnlyTouchesDraft(t *testing.T) {
	store := &mockStore{}
	e := newTestEditor(ownerID, store, &mockUploader{})

	assert.ErrorIs(t, e.Edit(Patch{Title: ptr("x")}), ErrNotEditing)

	require.NoError(t, e.Begin())
	require.NoError(t, e.Edit(Patch{Title: ptr("Herbstfest")}))
	require.NoError(t, e.DetachImage())

	assert.Equal(t, "Herbstfest", e.Draft().Title)
	assert.Nil(t, e.Draft().Image)
	assert.Equal(t, testPost(), e.Post())
	assert.Zero(t, store.updates)

	require.NoError(t, e.Cancel())
	assert.Equal(t, Viewing, e.Mode())
	assert.Equal(t, testPost(), e.Post())
}

func TestEditor_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got verein.Post
		var actor string
		store := &mockStore{
			updatePostFunc: func(_ context.Context, actorID string, post verein.Post) error {
				actor, got = actorID, post
				return nil
			},
		}
		e := newTestEditor(ownerID, store, &mockUploader{})
		require.NoError(t, e.Begin())
		require.NoError(t, e.Edit(Patch{
			Title:   ptr("Herbstfest"),
			Content: ptr("Neuer Termin."),
			Date:    ptr("2024-09-14"),
		}))
		require.NoError(t, e.DetachImage())

		s, err := e.Commit(ctx)
		require.NoError(t, err)
		assert.Equal(t, submission.Succeeded, s.Status)
		assert.Equal(t, verein.MsgPostSaved, s.Message)
		assert.Equal(t, 1, store.updates)
		assert.Equal(t, ownerID, actor)

		want := verein.Post{
			ID:        postID,
			Title:     "Herbstfest",
			Content:   "Neuer Termin.",
			CreatedAt: time.Date(2024, time.September, 14, 0, 0, 0, 0, time.UTC),
			UserID:    ownerID,
		}
		assert.Equal(t, want, got)
		assert.Equal(t, want, e.Post())
		assert.Equal(t, Viewing, e.Mode())
		assert.Equal(t, s, e.SaveState())
	})

	t.Run("EmptyTitleKeepsDraft", func(t *testing.T) {
		store := &mockStore{}
		e := newTestEditor(ownerID, store, &mockUploader{})
		require.NoError(t, e.Begin())
		require.NoError(t, e.Edit(Patch{Title: ptr("  "), Content: ptr("Text bleibt")}))

		s, err := e.Commit(ctx)
		assert.ErrorIs(t, err, verein.ErrInvalidInput)
		assert.Equal(t, submission.Failed, s.Status)
		assert.Equal(t, verein.MsgRequired, s.Message)
		assert.Zero(t, store.updates)
		assert.Equal(t, Editing, e.Mode())
		assert.Equal(t, "Text bleibt", e.Draft().Content)
		assert.Equal(t, "  ", e.Draft().Title)
	})

	t.Run("InvalidDate", func(t *testing.T) {
		store := &mockStore{}
		e := newTestEditor(ownerID, store, &mockUploader{})
		require.NoError(t, e.Begin())
		require.NoError(t, e.Edit(Patch{Date: ptr("2024-02-30")}))

		s, err := e.Commit(ctx)
		assert.ErrorIs(t, err, verein.ErrInvalidInput)
		assert.Equal(t, verein.MsgInvalidDate, s.Message)
		assert.Zero(t, store.updates)
	})

	t.Run("RemoteFailureKeepsDraft", func(t *testing.T) {
		store := &mockStore{
			updatePostFunc: func(context.Context, string, verein.Post) error {
				return errors.New("connection reset")
			},
		}
		e := newTestEditor(ownerID, store, &mockUploader{})
		require.NoError(t, e.Begin())
		require.NoError(t, e.Edit(Patch{Title: ptr("Neu")}))

		s, err := e.Commit(ctx)
		assert.Error(t, err)
		assert.Equal(t, submission.State{Status: submission.Failed, Message: verein.MsgPostSaveError}, s)
		assert.Equal(t, Editing, e.Mode())
		assert.Equal(t, "Neu", e.Draft().Title)
		assert.Equal(t, "Sommerfest", e.Post().Title)
	})

	t.Run("NotEditing", func(t *testing.T) {
		store := &mockStore{}
		e := newTestEditor(ownerID, store, &mockUploader{})

		_, err := e.Commit(ctx)
		assert.ErrorIs(t, err, ErrNotEditing)
		assert.Zero(t, store.updates)
	})

	t.Run("DisposedDuringCall", func(t *testing.T) {
		var e *Editor
		store := &mockStore{
			updatePostFunc: func(context.Context, string, verein.Post) error {
				e.Dispose()
				return nil
			},
		}
		e = newTestEditor(ownerID, store, &mockUploader{})
		require.NoError(t, e.Begin())
		require.NoError(t, e.Edit(Patch{Title: ptr("Spät")}))

		_, err := e.Commit(ctx)
		assert.ErrorIs(t, err, submission.ErrDisposed)
		assert.Equal(t, "Sommerfest", e.Post().Title)
	})
}

func TestEditor_NewPost(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, time.March, 5, 15, 30, 0, 0, time.UTC)

	var inserted verein.Post
	store := &mockStore{
		insertPostFunc: func(_ context.Context, post verein.Post) (verein.Post, error) {
			inserted = post
			post.ID = postID
			return post, nil
		},
	}
	e := NewPost(ownerID, today, store, &mockUploader{}, Config{Location: time.UTC, Logger: noOpLogger()})

	assert.True(t, e.Creating())
	assert.Equal(t, Editing, e.Mode())
	assert.Equal(t, "2024-03-05", e.Draft().Date)

	require.NoError(t, e.Edit(Patch{Title: ptr("Neu"), Content: ptr("Inhalt")}))
	s, err := e.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, submission.State{Status: submission.Succeeded, Message: verein.MsgPostCreated, Redirect: "/"}, s)
	assert.Equal(t, 1, store.inserts)
	assert.Zero(t, store.updates)

	assert.Equal(t, ownerID, inserted.UserID)
	assert.Nil(t, inserted.Image)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), inserted.CreatedAt)

	assert.False(t, e.Creating())
	assert.Equal(t, Viewing, e.Mode())
	assert.Equal(t, postID, e.Post().ID)
	assert.Equal(t, s, e.SaveState())
}

func TestEditor_AttachImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var bucket, name string
		var seen []int
		var e *Editor
		uploader := &mockUploader{
			uploadFunc: func(_ context.Context, b, p string, file verein.Upload, progress func(int)) (string, error) {
				bucket, name = b, p
				progress(50)
				seen = append(seen, e.Progress())
				progress(100)
				seen = append(seen, e.Progress())
				return "http://localhost:3000/storage/v1/object/public/" + b + "/" + p, nil
			},
		}
		e = newTestEditor(ownerID, &mockStore{}, uploader)
		require.NoError(t, e.Begin())

		s, err := e.AttachImage(ctx, verein.Upload{
			Filename:    "Foto.JPG",
			ContentType: "image/jpeg",
			Size:        4,
			Body:        bytes.NewReader([]byte("jpeg")),
		})
		require.NoError(t, err)
		assert.Equal(t, submission.Succeeded, s.Status)

		assert.Equal(t, ImageBucket, bucket)
		assert.True(t, strings.HasPrefix(name, "posts/"))
		assert.True(t, strings.HasSuffix(name, ".jpg"))
		assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(name, "posts/"), ".jpg"), 36)

		require.NotNil(t, e.Draft().Image)
		assert.Equal(t, "http://localhost:3000/storage/v1/object/public/images/"+name, *e.Draft().Image)
		assert.Equal(t, []int{50, 100}, seen)
		assert.Zero(t, e.Progress())
		assert.Equal(t, ptr(imageURL), e.Post().Image)
	})

	t.Run("RejectedBeforeStorage", func(t *testing.T) {
		tests := []struct {
			name    string
			file    verein.Upload
			wantMsg string
		}{
			{
				name:    "WrongType",
				file:    verein.Upload{Filename: "a.gif", ContentType: "image/gif", Size: 10},
				wantMsg: verein.MsgImageType,
			},
			{
				name:    "TooLarge",
				file:    verein.Upload{Filename: "a.png", ContentType: "image/png", Size: verein.MaxImageSize + 1},
				wantMsg: verein.MsgImageSize,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uploader := &mockUploader{}
				e := newTestEditor(ownerID, &mockStore{}, uploader)
				require.NoError(t, e.Begin())

				s, err := e.AttachImage(ctx, tt.file)
				assert.ErrorIs(t, err, verein.ErrInvalidInput)
				assert.Equal(t, tt.wantMsg, s.Message)
				assert.Zero(t, uploader.calls)
				assert.Equal(t, ptr(imageURL), e.Draft().Image)
			})
		}
	})

	t.Run("UploadFailure", func(t *testing.T) {
		uploader := &mockUploader{
			uploadFunc: func(context.Context, string, string, verein.Upload, func(int)) (string, error) {
				return "", errors.New("storage down")
			},
		}
		e := newTestEditor(ownerID, &mockStore{}, uploader)
		require.NoError(t, e.Begin())

		s, err := e.AttachImage(ctx, verein.Upload{Filename: "a.png", ContentType: "image/png", Size: 3})
		assert.Error(t, err)
		assert.Equal(t, verein.MsgImageUploadErr, s.Message)
		assert.Equal(t, ptr(imageURL), e.Draft().Image)
	})

	t.Run("CommitWaitsForUpload", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		uploader := &mockUploader{
			uploadFunc: func(_ context.Context, b, p string, _ verein.Upload, _ func(int)) (string, error) {
				close(started)
				<-release
				return "http://localhost:3000/storage/v1/object/public/" + b + "/" + p, nil
			},
		}
		store := &mockStore{}
		e := newTestEditor(ownerID, store, uploader)
		require.NoError(t, e.Begin())

		done := make(chan error, 1)
		go func() {
			_, err := e.AttachImage(ctx, verein.Upload{Filename: "neu.png", ContentType: "image/png", Size: 3})
			done <- err
		}()
		<-started

		_, err := e.Commit(ctx)
		assert.ErrorIs(t, err, submission.ErrInFlight)
		assert.ErrorIs(t, e.Cancel(), submission.ErrInFlight)
		assert.ErrorIs(t, e.DetachImage(), submission.ErrInFlight)
		assert.Zero(t, store.updates)
		assert.Equal(t, Editing, e.Mode())

		close(release)
		require.NoError(t, <-done)

		uploaded := e.Draft().Image
		require.NotNil(t, uploaded)
		assert.NotEqual(t, imageURL, *uploaded)

		s, err := e.Commit(ctx)
		require.NoError(t, err)
		assert.Equal(t, submission.Succeeded, s.Status)
		assert.Equal(t, 1, store.updates)
		assert.Equal(t, uploaded, e.Post().Image)
	})

	t.Run("ResultIgnoredAfterEditingEnds", func(t *testing.T) {
		var e *Editor
		uploader := &mockUploader{
			uploadFunc: func(_ context.Context, b, p string, _ verein.Upload, _ func(int)) (string, error) {
				e.mu.Lock()
				e.mode = Viewing
				e.draft = Draft{}
				e.mu.Unlock()
				return "http://localhost:3000/storage/v1/object/public/" + b + "/" + p, nil
			},
		}
		e = newTestEditor(ownerID, &mockStore{}, uploader)
		require.NoError(t, e.Begin())

		_, err := e.AttachImage(ctx, verein.Upload{Filename: "neu.png", ContentType: "image/png", Size: 3})
		require.NoError(t, err)
		assert.Nil(t, e.Draft().Image)
		assert.Equal(t, ptr(imageURL), e.Post().Image)
	})

	t.Run("NotEditing", func(t *testing.T) {
		uploader := &mockUploader{}
		e := newTestEditor(ownerID, &mockStore{}, uploader)

		_, err := e.AttachImage(ctx, verein.Upload{Filename: "a.png", ContentType: "image/png", Size: 3})
		assert.ErrorIs(t, err, ErrNotEditing)
		assert.Zero(t, uploader.calls)
	})
}

func TestEditor_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("WithoutConfirmation", func(t *testing.T) {
		store := &mockStore{}
		e := newTestEditor(ownerID, store, &mockUploader{})

		_, err := e.Delete(ctx, false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Zero(t, store.deletes)
	})

	t.Run("Confirmed", func(t *testing.T) {
		var gotActor, gotID string
		store := &mockStore{
			deletePostFunc: func(_ context.Context, actorID, id string) error {
				gotActor, gotID = actorID, id
				return nil
			},
		}
		e := newTestEditor(ownerID, store, &mockUploader{})

		s, err := e.Delete(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 1, store.deletes)
		assert.Equal(t, ownerID, gotActor)
		assert.Equal(t, postID, gotID)
		assert.Equal(t, submission.State{Status: submission.Succeeded, Message: verein.MsgPostDeleted, Redirect: "/"}, s)
	})

	t.Run("NonOwner", func(t *testing.T) {
		store := &mockStore{}
		e := newTestEditor(otherID, store, &mockUploader{})

		_, err := e.Delete(ctx, true)
		assert.ErrorIs(t, err, verein.ErrForbidden)
		assert.Zero(t, store.deletes)
	})

	t.Run("RemoteFailure", func(t *testing.T) {
		store := &mockStore{
			deletePostFunc: func(context.Context, string, string) error {
				return verein.ErrNotFound
			},
		}
		e := newTestEditor(ownerID, store, &mockUploader{})

		s, err := e.Delete(ctx, true)
		assert.ErrorIs(t, err, verein.ErrNotFound)
		assert.Equal(t, submission.State{Status: submission.Failed, Message: verein.MsgPostDeleteError}, s)
	})
}

func TestEditor_EditImageReference(t *testing.T) {
	e := newTestEditor(ownerID, &mockStore{}, &mockUploader{})
	require.NoError(t, e.Begin())

	err := e.Edit(Patch{Title: ptr("bleibt nicht"), Image: ptr("javascript:alert(1)")})
	assert.ErrorIs(t, err, verein.ErrInvalidInput)
	assert.Equal(t, "Sommerfest", e.Draft().Title)

	err = e.Edit(Patch{Image: ptr("https://example.com/a.png")})
	assert.ErrorIs(t, err, verein.ErrInvalidInput)
	assert.Equal(t, ptr(imageURL), e.Draft().Image)

	stored := "http://localhost:3000/storage/v1/object/public/images/posts/neu.png"
	require.NoError(t, e.Edit(Patch{Image: ptr(stored)}))
	assert.Equal(t, ptr(stored), e.Draft().Image)

	require.NoError(t, e.Edit(Patch{Image: ptr("")}))
	assert.Nil(t, e.Draft().Image)
}
