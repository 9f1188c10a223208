package source

import (
	"context"
	"io"
	"net/url"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/sirupsen/logrus"
)

// GitRepository fetches the configuration document from a file inside a git
// repository, cloned shallowly into an in-memory filesystem.
type GitRepository struct {
	URL    *url.URL
	Path   string // path of the document inside the clone
	Branch string // optional branch, default branch when empty
	Auth   *http.BasicAuth
}

// NewGitRepository creates a GitRepository from a clone URL. The URL fragment
// names the document inside the repository (default release-it.json) and the
// `ref` query parameter selects a branch. The token, when set, is used as an
// installation token for HTTP basic auth.
func NewGitRepository(u *url.URL, token string) (Repository, error) {
	path := u.Fragment
	if path == "" {
		path = "release-it.json"
	}
	branch := u.Query().Get("ref")

	var auth *http.BasicAuth
	if token != "" {
		auth = &http.BasicAuth{Username: "x-access-token", Password: token}
	}

	cloneURL := *u
	cloneURL.Fragment = ""
	cloneURL.RawQuery = ""
	return &GitRepository{URL: &cloneURL, Path: path, Branch: branch, Auth: auth}, nil
}

func (g *GitRepository) Fetch(ctx context.Context) ([]byte, error) {
	fs := memfs.New()
	logrus.Debugf("cloning %s into memory", g.URL)

	options := &git.CloneOptions{
		URL:   g.URL.String(),
		Auth:  g.Auth,
		Depth: 1,
	}
	if g.Branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(g.Branch)
		options.SingleBranch = true
	}
	if _, err := git.CloneContext(ctx, memory.NewStorage(), fs, options); err != nil {
		return nil, err
	}

	file, err := fs.Open(g.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.WithError(err).Debug("error closing file")
		}
	}()
	return io.ReadAll(file)
}

func (g *GitRepository) GetType() string {
	return "git"
}
