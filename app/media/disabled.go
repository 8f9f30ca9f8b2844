package media

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when no image host is configured.
var ErrNotConfigured = errors.New("image host not configured")

// DisabledStore stands in when CLOUDINARY_URL is unset. Products can
// still be managed with explicit image URLs; file uploads fail.
type DisabledStore struct{}

func (DisabledStore) Upload(ctx context.Context, file io.Reader) (*Upload, error) {
	return nil, ErrNotConfigured
}

func (DisabledStore) Delete(ctx context.Context, publicID string) error {
	return nil
}
