package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080")
//	resp, err := client.R().Get("/courses")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client for baseURL that keeps cookies between
// requests and does not follow redirects, so callers see the 302 responses
// of the form handlers. It drives the catalog the way a browser would and
// is used by the end-to-end tests.
//
// Each call returns an independent client instance with its own
// cookie jar, connection pool, and state.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &HTTPClient{Client: client}
}
