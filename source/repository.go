// Package source fetches the release configuration override document from
// wherever it lives: a local file, an HTTP endpoint, a git repository, an S3
// bucket, or a GCS bucket. Every source implements Repository; New picks the
// implementation from the location's scheme.
package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Repository is a single-shot reader for a configuration document.
type Repository interface {
	// Fetch returns the raw bytes of the configuration document.
	Fetch(ctx context.Context) ([]byte, error)

	// GetType returns the kind of source ("file", "http", "git", "s3", "gs").
	GetType() string
}

// New selects a Repository for the given location.
//
//	config/release.json                    local file
//	https://example.com/release.json       HTTP(S) endpoint
//	https://host/org/repo.git#path.json    file inside a git repository
//	s3://bucket/path.json?region=us-east-1 S3 object
//	gs://bucket/path.json                  GCS object
//
// For git locations the URL fragment names the file inside the clone
// (default release-it.json) and a `ref` query parameter selects the branch.
// The token, when set, authenticates git and HTTP sources.
func New(location, token string) (Repository, error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid config source %q: %w", location, err)
	}
	switch parsed.Scheme {
	case "", "file":
		return NewFileRepository(parsed.Path)
	case "http", "https":
		if strings.HasSuffix(parsed.Path, ".git") {
			return NewGitRepository(parsed, token)
		}
		return NewWebRepository(parsed, token)
	case "s3":
		return NewS3Repository(parsed.Host, strings.TrimPrefix(parsed.Path, "/"), parsed.Query().Get("region"))
	case "gs":
		return NewGCSRepository(parsed.Host, strings.TrimPrefix(parsed.Path, "/"))
	default:
		return nil, fmt.Errorf("unsupported config source scheme %q", parsed.Scheme)
	}
}
