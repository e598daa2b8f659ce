// Package http builds the outbound HTTP client used by the market data providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for third-party API calls.
// The transport dials with a short connect timeout, honours HTTP_PROXY and
// keeps a bounded idle pool. timeout caps each whole request; a value <= 0
// falls back to 10s since http.DefaultClient has no timeout at all.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
