package source

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GCSRepository fetches the configuration document from a Google Cloud
// Storage object. The bucket is expected to be readable without
// authentication (a public bucket or the storage emulator).
type GCSRepository struct {
	Bucket string
	Path   string
}

// NewGCSRepository creates a GCSRepository for the given bucket and object
// path.
func NewGCSRepository(bucket, path string) (Repository, error) {
	return &GCSRepository{Bucket: bucket, Path: path}, nil
}

func (g *GCSRepository) Fetch(ctx context.Context) ([]byte, error) {
	client, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		logrus.WithError(err).Debug("error creating client")
		return nil, err
	}
	defer client.Close()

	reader, err := client.Bucket(g.Bucket).Object(g.Path).NewReader(ctx)
	if err != nil {
		logrus.WithError(err).Debug("error creating reader")
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (g *GCSRepository) GetType() string {
	return "gs"
}
