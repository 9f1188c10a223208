package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// WebRepository fetches the configuration document from an HTTP endpoint.
type WebRepository struct {
	URL   *url.URL
	Token string // optional bearer token
}

// NewWebRepository creates a WebRepository for the given URL. The token,
// when set, is sent as a bearer Authorization header.
func NewWebRepository(u *url.URL, token string) (Repository, error) {
	return &WebRepository{URL: u, Token: token}, nil
}

func (w *WebRepository) Fetch(ctx context.Context) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL.String(), nil)
	if err != nil {
		logrus.WithError(err).Debug("error creating request")
		return nil, err
	}
	if w.Token != "" {
		request.Header.Set("Authorization", "Bearer "+w.Token)
	}

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		logrus.WithError(err).Debug("error doing request")
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logrus.WithError(err).Debug("error closing response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", w.URL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (w *WebRepository) GetType() string {
	return "http"
}
