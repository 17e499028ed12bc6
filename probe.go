package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

// httpProber checks URL reachability with a HEAD request, falling back to a
// single GET before concluding the resource is unreachable. No result is
// cached: every URL is probed fresh, even if repeated across notebooks.
type httpProber struct {
	client *http.Client
}

func newHTTPProber() httpProber {
	return httpProber{client: &http.Client{
		Transport: &http.Transport{
			Proxy:              http.ProxyFromEnvironment,
			MaxIdleConns:       40,
			IdleConnTimeout:    30 * time.Second,
			DisableCompression: false,
			DialContext: (&net.Dialer{
				Timeout:   4 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 4 * time.Second,
		},
		Timeout: probeTimeout,
	}}
}

// Reachable reports whether u answers a HEAD or GET with a 2xx/3xx status.
func (p httpProber) Reachable(ctx context.Context, u string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if ok, done := p.attempt(ctx, http.MethodHead, u); done {
		return ok
	}
	ok, _ := p.attempt(ctx, http.MethodGet, u)
	return ok
}

// attempt issues one request. done=false means the HEAD was inconclusive and
// the caller should retry with GET.
func (p httpProber) attempt(ctx context.Context, method, u string) (ok, done bool) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return false, true
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		// Transport errors on HEAD still get the GET retry.
		return false, method == http.MethodGet
	}
	defer func() { _ = resp.Body.Close() }()

	if method == http.MethodGet {
		// Drain a bounded chunk so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return true, true
	}
	return false, method == http.MethodGet
}
