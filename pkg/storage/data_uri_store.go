package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// DataURIStore re-encodes the file as a base64 data URI instead of writing
// it anywhere. The payload lives inside the card record itself, which trades
// persistence for correctness on read-only serverless filesystems.
type DataURIStore struct{}

// NewDataURIStore builds the ephemeral sink.
func NewDataURIStore() *DataURIStore {
	return &DataURIStore{}
}

// Upload returns "data:<mime>;base64,<payload>".
func (DataURIStore) Upload(_ context.Context, _, contentType string, _ int64, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(raw))
	return b.String(), nil
}
