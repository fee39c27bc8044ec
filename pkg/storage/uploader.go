package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Uploader persists one uploaded file and returns the string clients should
// store as the media URL. Depending on the sink that string is a
// root-relative path, a pre-signed object URL, or a base64 data URI.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

// newObjectName generates a unique name preserving the original extension.
func newObjectName(filename string) string {
	name := uuid.NewString()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && ext != "." {
		name += ext
	}
	return name
}
