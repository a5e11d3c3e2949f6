package httpx

import (
	"net/http"
	"time"
)

const UserAgent = "jobsearch-engine/1.0 (+local)"

// NewClient returns the http.Client providers share their defaults from.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
