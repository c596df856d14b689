package verein

import (
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinPasswordLength = 8
	MaxImageSize      = 5 * 1024 * 1024

	// DateLayout is the calendar date format used by forms.
	DateLayout = "2006-01-02"
)

var imageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, MsgRequired)
	}
	return nil
}

func ValidateEmail(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return Invalid(field, MsgInvalidEmail)
	}
	return nil
}

// ValidatePassword checks length and confirmation of a new password.
func ValidatePassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return Invalid("password", MsgPasswordTooShort)
	}
	if password != confirm {
		return Invalid("confirmPassword", MsgPasswordMismatch)
	}
	return nil
}

// ValidateImage checks an upload before it reaches storage.
func ValidateImage(contentType string, size int64) error {
	if _, ok := imageTypes[strings.ToLower(contentType)]; !ok {
		return Invalid("image", MsgImageType)
	}
	if size > MaxImageSize {
		return Invalid("image", MsgImageSize)
	}
	return nil
}

// ValidateImageRef accepts absolute http(s) URLs of stored objects, that is
// URLs whose path is PublicObjectPrefix followed by a bucket and an object path.
func ValidateImageRef(ref string) error {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Invalid("image", MsgImageRef)
	}

	tail, ok := strings.CutPrefix(u.Path, PublicObjectPrefix)
	if !ok {
		return Invalid("image", MsgImageRef)
	}
	bucket, object, ok := strings.Cut(tail, "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return Invalid("image", MsgImageRef)
	}
	for _, seg := range strings.Split(object, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return Invalid("image", MsgImageRef)
		}
	}

	return nil
}

// NormalizeImage maps an empty reference to nil.
func NormalizeImage(ref *string) *string {
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return nil
	}
	v := *ref
	return &v
}

// ValidPostID reports whether id is a canonical version 4 UUID.
func ValidPostID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// ParseDate parses a form date and returns local midnight of that day.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, Invalid("date", MsgInvalidDate)
	}
	return d, nil
}

// Midnight truncates t to the start of its day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FormatDate renders t as a form date in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
