package prime

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewHTTPClient builds the HTTP/2 capable client shared by the wallet client
// and the SDK backed portfolio service. timeout bounds each request.
func NewHTTPClient(timeout time.Duration) (http.Client, error) {
	if timeout <= 0 {
		return http.Client{}, fmt.Errorf("%w: request timeout must be positive, got %v", ErrConfiguration, timeout)
	}

	tr := &http.Transport{
		ResponseHeaderTimeout: timeout,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return http.Client{}, fmt.Errorf("unable to configure http2 transport: %w", err)
	}

	return http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}
