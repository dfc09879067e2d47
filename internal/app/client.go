package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"routeanalyzer.g11.org/internal/metrics"
)

// latencyTrackingRoundTripper is a custom HTTP RoundTripper that wraps another RoundTripper
// to measure and record the latency (duration) of each outgoing HTTP request.
//
// Purpose:
//   - Collect Prometheus metrics on the latency (in seconds) of remote
//     parameter fetches and GTFS bundle downloads
//   - Label the metrics by URL, HTTP method, and response status
//   - Make a slow parameters host visible before refreshes start backing off
//
// Why use this:
// Prometheus does not track request latency on its own. Wrapping the transport
// measures every call made through the pooled client without touching the
// loaders in config and waypoints.
type latencyTrackingRoundTripper struct {
	// next is the underlying RoundTripper that actually performs the request.
	next http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface.
// It records the time before and after delegating to the next RoundTripper,
// then exports the observed duration to Prometheus under metrics.OutgoingLatency.
func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	// Default to "error" if the request failed or response is nil
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Normalized URL label (scheme + host + path). Query strings may carry
	// credentials and would explode label cardinality.
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	metrics.OutgoingLatency.WithLabelValues(
		safeURL,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns the HTTP client used for remote parameters and
// GTFS bundle downloads.
//
// The transport configuration is tuned for:
//   - Connection reuse across periodic parameter refreshes in serve mode
//   - Short dial and TLS timeouts so an unreachable host fails fast and
//     DoWithBackoff takes over
//   - A whole-request timeout large enough for GTFS bundle downloads
//   - Latency instrumentation through latencyTrackingRoundTripper
//
// Configuration rationale:
//
//   - Proxy: http.ProxyFromEnvironment
//     Honors HTTP_PROXY/HTTPS_PROXY, parameter hosts often sit behind one.
//
//   - MaxIdleConns: 100, MaxIdleConnsPerHost: 10
//     The parameters host and the GTFS host keep a few warm connections each.
//
//   - IdleConnTimeout: 90s
//     Longer than the default refresh interval (1m), so the refresh loop
//     reuses the same connection instead of redoing the TLS handshake.
//
//   - DialContext (Timeout: 5s, KeepAlive: 30s)
//     Fails fast when the host is unreachable.
//
//   - TLSHandshakeTimeout: 5s
//     Caps a stalled TLS negotiation.
//
//   - http.Client Timeout: 60s
//     Covers the full request lifecycle. Higher than a plain API poll
//     because a GTFS static bundle can be tens of megabytes.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &http.Client{
		Transport: &latencyTrackingRoundTripper{next: transport},
		Timeout:   60 * time.Second,
	}
}
