package verein

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/daniilsolovey/verein-site/internal/db"
)

// PublicObjectPrefix is the HTTP path under which stored objects are served.
const PublicObjectPrefix = "/storage/v1/object/public/"

const uploadChunk = 32 * 1024

// Upload stores file at bucket/path and returns its public reference.
// progress, if set, receives the share of the body read so far in percent.
// Existing objects are never overwritten.
func (m *Manager) Upload(ctx context.Context, bucket, path string, file Upload, progress func(int)) (string, error) {
	data, err := readWithProgress(file.Body, file.Size, progress)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	obj := &db.StorageObject{
		Bucket:      bucket,
		Path:        path,
		ContentType: file.ContentType,
		Size:        int64(len(data)),
		Data:        data,
		CreatedAt:   time.Now(),
	}

	err = m.db.InsertObject(ctx, obj)
	if errors.Is(err, db.ErrDuplicate) {
		return "", fmt.Errorf("%w: %s/%s", ErrDuplicateObject, bucket, path)
	} else if err != nil {
		return "", fmt.Errorf("db insert object: %w", err)
	}

	return m.PublicURL(bucket, path), nil
}

func (m *Manager) Object(ctx context.Context, bucket, path string) (*Object, error) {
	dbObj, err := m.db.Object(ctx, bucket, path)
	if err != nil {
		return nil, fmt.Errorf("db get object: %w", err)
	} else if dbObj == nil {
		return nil, fmt.Errorf("%w: object %s/%s", ErrNotFound, bucket, path)
	}

	obj := NewObject(dbObj)
	return &obj, nil
}

// PublicURL builds the public reference of an object.
func (m *Manager) PublicURL(bucket, path string) string {
	segments := strings.Split(path, "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}

	return strings.TrimRight(m.publicURL, "/") + PublicObjectPrefix + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func readWithProgress(r io.Reader, size int64, progress func(int)) ([]byte, error) {
	if r == nil {
		return nil, errors.New("empty body")
	}

	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}

	chunk := make([]byte, uploadChunk)
	var read int64
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			report(progress, read, size)
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
	}

	if progress != nil {
		progress(100)
	}

	return buf.Bytes(), nil
}

func report(progress func(int), read, size int64) {
	if progress == nil || size <= 0 {
		return
	}

	pct := int(read * 100 / size)
	if pct > 100 {
		pct = 100
	}
	progress(pct)
}
