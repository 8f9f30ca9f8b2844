// Package media wraps the external image host. Only the URL and the
// host-side public id ever reach the rest of the app.
package media

import (
	"context"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "frechnel-shop/products"

// Upload is the result of storing an image remotely.
type Upload struct {
	URL      string
	PublicID string
}

// Store uploads and deletes product images. Deletion is best-effort at
// every call site; callers log failures and carry on.
type Store interface {
	Upload(ctx context.Context, file io.Reader) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader) (*Upload, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: uploadFolder})
	if err != nil {
		return nil, err
	}
	return &Upload{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// PublicIDFromURL recovers the public id from a Cloudinary secure URL,
// e.g. .../upload/v123/frechnel-shop/products/abc.jpg ->
// frechnel-shop/products/abc. Returns "" for non-Cloudinary URLs so
// externally hosted images are never deleted.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return ""
	}
	// skip the version segment after "upload"
	withExt := strings.Join(parts[uploadIdx+2:], "/")
	if dot := strings.LastIndex(withExt, "."); dot > 0 {
		return withExt[:dot]
	}
	return withExt
}
