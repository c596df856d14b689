package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/verein-site/internal/auth"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

type fakeInstance struct {
	disposed bool
}

func (f *fakeInstance) Dispose() {
	f.disposed = true
}

type otherInstance struct {
	fakeInstance
}

// mockSubscriber is a manual stub implementation of Subscriber
type mockSubscriber struct {
	listener auth.Listener
}

func (m *mockSubscriber) OnAuthStateChange(l auth.Listener) func() {
	m.listener = l
	return func() { m.listener = nil }
}

func TestGet(t *testing.T) {
	r := NewRegistry(time.Minute, noOpLogger())
	created := 0
	create := func() *fakeInstance {
		created++
		return &fakeInstance{}
	}

	a := Get(r, VisitorKey("v1"), "contact", create)
	b := Get(r, VisitorKey("v1"), "contact", create)
	c := Get(r, VisitorKey("v2"), "contact", create)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, r.Len())

	got, ok := Lookup[*fakeInstance](r, VisitorKey("v1"), "contact")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = Lookup[*fakeInstance](r, VisitorKey("v1"), "membership")
	assert.False(t, ok)
}

func TestGet_ReplacesOtherType(t *testing.T) {
	r := NewRegistry(time.Minute, noOpLogger())

	first := Get(r, "o", "x", func() *fakeInstance { return &fakeInstance{} })
	second := Get(r, "o", "x", func() *otherInstance { return &otherInstance{} })

	assert.True(t, first.disposed)
	assert.False(t, second.disposed)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Drop(t *testing.T) {
	r := NewRegistry(time.Minute, noOpLogger())
	inst := Get(r, "o", "editor:1", func() *fakeInstance { return &fakeInstance{} })

	r.Drop("o", "editor:1")
	r.Drop("o", "missing")

	assert.True(t, inst.disposed)
	assert.Zero(t, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	r := NewRegistry(time.Minute, noOpLogger())
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return start }

	old := Get(r, "o", "old", func() *fakeInstance { return &fakeInstance{} })
	r.now = func() time.Time { return start.Add(50 * time.Second) }
	fresh := Get(r, "o", "fresh", func() *fakeInstance { return &fakeInstance{} })

	n := r.Sweep(start.Add(90 * time.Second))
	assert.Equal(t, 1, n)
	assert.True(t, old.disposed)
	assert.False(t, fresh.disposed)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Bind(t *testing.T) {
	r := NewRegistry(time.Minute, noOpLogger())
	sub := &mockSubscriber{}
	unbind := r.Bind(sub)
	require.NotNil(t, sub.listener)

	sess := verein.Session{ID: "s1"}
	mine := Get(r, OwnerKey(sess), "editor", func() *fakeInstance { return &fakeInstance{} })
	other := Get(r, OwnerKey(verein.Session{ID: "s2"}), "editor", func() *fakeInstance { return &fakeInstance{} })

	sub.listener(auth.Event{Type: auth.SignedIn, Session: sess})
	assert.False(t, mine.disposed)

	sub.listener(auth.Event{Type: auth.SignedOut, Session: sess})
	assert.True(t, mine.disposed)
	assert.False(t, other.disposed)
	assert.Equal(t, 1, r.Len())

	unbind()
	assert.Nil(t, sub.listener)
}
