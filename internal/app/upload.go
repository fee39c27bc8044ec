package app

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// allowedMIMEPrefixes is the upload allowlist: cards only embed visual and
// audible media.
var allowedMIMEPrefixes = []string{"image/", "video/", "audio/"}

// Upload validates and stores one uploaded file, returning the string the
// client should persist as mediaUrl (path, object URL or data URI depending
// on the configured sink).
func (a *App) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if a.uploader == nil {
		return "", fmt.Errorf("no upload sink configured")
	}
	if !mimeAllowed(contentType) {
		return "", ErrUnsupportedFileType
	}
	if a.maxUploadBytes > 0 && size > a.maxUploadBytes {
		return "", ErrFileTooLarge
	}
	url, err := a.uploader.Upload(ctx, filename, contentType, size, r)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return url, nil
}

func mimeAllowed(contentType string) bool {
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
