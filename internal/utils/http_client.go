package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// defaultHTTPTimeout caps outbound calls when the caller passes no bound.
const defaultHTTPTimeout = 10 * time.Second

// HTTPClient wraps [resty.Client] for the outbound calls the adapters make:
// Google certificate fetches, exchange-rate pulls, store receipt
// verification. Embedding keeps the whole resty API reachable.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool
// and state. Every outbound call here runs inside an inbound request or a
// worker tick, so an overall timeout is mandatory; a non-positive value
// falls back to defaultHTTPTimeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)

	return &HTTPClient{Client: client}
}
