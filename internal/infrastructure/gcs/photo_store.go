package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

// PhotoStore uploads contact photos into a single bucket.
type PhotoStore struct {
	client *storage.Client
	bucket string
}

func NewPhotoStore(client *storage.Client, bucket string) *PhotoStore {
	return &PhotoStore{client: client, bucket: bucket}
}

func (s *PhotoStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Delete removes the object behind url. URLs that do not point into the bucket are ignored.
func (s *PhotoStore) Delete(ctx context.Context, url string) error {
	objectPath, ok := helpers.ObjectPathFromURL(s.bucket, url)
	if !ok {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, objectPath)
}
