package verein

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	return verr.Message
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"max@example.com", ""},
		{"", MsgRequired},
		{"   ", MsgRequired},
		{"max", MsgInvalidEmail},
		{"Max <max@example.com>", MsgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateEmail("email", tt.value)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, validationMessage(t, err))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123", "password123"))
	assert.Equal(t, MsgPasswordTooShort, validationMessage(t, ValidatePassword("kurz", "kurz")))

	err := ValidatePassword("password123", "password124")
	assert.Equal(t, MsgPasswordMismatch, validationMessage(t, err))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "confirmPassword", verr.Field)
}

func TestValidateImage(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp", "IMAGE/PNG"} {
		assert.NoError(t, ValidateImage(ct, 1024), ct)
	}
	assert.NoError(t, ValidateImage("image/png", MaxImageSize))

	assert.Equal(t, MsgImageType, validationMessage(t, ValidateImage("image/gif", 10)))
	assert.Equal(t, MsgImageType, validationMessage(t, ValidateImage("", 10)))
	assert.Equal(t, MsgImageSize, validationMessage(t, ValidateImage("image/jpeg", MaxImageSize+1)))
}

func TestValidateImageRef(t *testing.T) {
	assert.NoError(t, ValidateImageRef("http://localhost:3000/storage/v1/object/public/images/posts/a.png"))
	assert.NoError(t, ValidateImageRef("https://bhbv.de/storage/v1/object/public/images/a.png"))

	for _, ref := range []string{
		"ftp://example.com/a.png",
		"/relative.png",
		"not a url",
		"https://example.com/a.png",
		"https://example.com/storage/v1/object/public/",
		"https://example.com/storage/v1/object/public/images",
		"https://example.com/storage/v1/object/public/images/",
		"https://example.com/storage/v1/object/public/images/posts/../a.png",
		"https://example.com/other/storage/v1/object/public/images/a.png",
		"/storage/v1/object/public/images/a.png",
	} {
		assert.Equal(t, MsgImageRef, validationMessage(t, ValidateImageRef(ref)), ref)
	}
}

func TestNormalizeImage(t *testing.T) {
	empty, blank, ref := "", "  ", "https://example.com/a.png"

	assert.Nil(t, NormalizeImage(nil))
	assert.Nil(t, NormalizeImage(&empty))
	assert.Nil(t, NormalizeImage(&blank))

	got := NormalizeImage(&ref)
	require.NotNil(t, got)
	assert.Equal(t, ref, *got)
	assert.NotSame(t, &ref, got)
}

func TestValidPostID(t *testing.T) {
	assert.True(t, ValidPostID("5f1c2e3d-4b5a-4c6d-8e7f-000000000001"))

	for _, id := range []string{
		"",
		"42",
		"5f1c2e3d-4b5a-1c6d-8e7f-000000000001",
		"5f1c2e3d4b5a4c6d8e7f000000000001",
		"{5f1c2e3d-4b5a-4c6d-8e7f-000000000001}",
	} {
		assert.False(t, ValidPostID(id), id)
	}
}

func TestDates(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	d, err := ParseDate("2024-03-31", berlin)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, berlin).Equal(d))
	assert.Equal(t, "2024-03-31", FormatDate(d, berlin))

	_, err = ParseDate("31.03.2024", berlin)
	assert.Equal(t, MsgInvalidDate, validationMessage(t, err))

	late := time.Date(2024, time.March, 30, 23, 30, 0, 0, time.UTC)
	assert.True(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, berlin).Equal(Midnight(late, berlin)))
	assert.Equal(t, "2024-03-31", FormatDate(late, berlin))
}

func TestRegistrationStatus_Transition(t *testing.T) {
	assert.NoError(t, StatusPending.Transition(StatusApproved))
	assert.NoError(t, StatusPending.Transition(StatusDenied))

	assert.ErrorIs(t, StatusPending.Transition(StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, StatusApproved.Transition(StatusDenied), ErrInvalidTransition)
	assert.ErrorIs(t, StatusDenied.Transition(StatusApproved), ErrInvalidTransition)
	assert.ErrorIs(t, StatusApproved.Transition(StatusApproved), ErrInvalidTransition)

	assert.False(t, RegistrationStatus("unknown").Valid())
}

func TestSession_Permissions(t *testing.T) {
	var anonymous *Session
	post := Post{UserID: "u1"}

	assert.False(t, anonymous.IsOwner(post))
	assert.False(t, anonymous.CanAuthor())

	s := &Session{User: User{ID: "u1"}}
	assert.True(t, s.IsOwner(post))
	assert.False(t, s.CanAuthor())

	s.User.Approved = true
	assert.True(t, s.CanAuthor())
	assert.False(t, s.IsOwner(Post{UserID: "u2"}))
}

func TestErrNotApproved(t *testing.T) {
	assert.ErrorIs(t, ErrNotApproved, ErrUnauthorized)
	assert.Equal(t, MsgNotApproved, ErrNotApproved.UserMessage())
}

func TestPublicURL(t *testing.T) {
	m := NewManager(nil, "http://localhost:3000/")

	assert.Equal(t,
		"http://localhost:3000/storage/v1/object/public/images/posts/a%20b.png",
		m.PublicURL("images", "posts/a b.png"),
	)
}

func TestReadWithProgress(t *testing.T) {
	data := bytes.Repeat([]byte("x"), uploadChunk*3+10)

	var reported []int
	got, err := readWithProgress(bytes.NewReader(data), int64(len(data)), func(p int) {
		reported = append(reported, p)
	})
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NotEmpty(t, reported)
	assert.Equal(t, 100, reported[len(reported)-1])
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1])
	}

	got, err = readWithProgress(strings.NewReader("abc"), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = readWithProgress(nil, 0, nil)
	assert.Error(t, err)
}
