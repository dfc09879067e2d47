package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// CachedPromHandler wraps promhttp.HandlerFor with a caching layer.
//
// Purpose:
//   - The route analyzer exposes per-source route gauges and run counters on
//     `/metrics`, and Prometheus scrapes them every few seconds.
//   - Each scrape triggers gathering and text serialization of every
//     collector, including the analysis duration histograms.
//   - CachedPromHandler precomputes the exposition once per ttl and serves
//     that cached result to every scraper.
//
// Benefit:
//   - Scrapes do not compete with /v1/analyze requests for CPU.
//   - Latency stays predictable when several Prometheus servers scrape at once.
type CachedPromHandler struct {
	mu    sync.RWMutex  // Guards concurrent access to cache
	cache []byte        // Holds the precomputed metrics exposition
	ttl   time.Duration // Refresh interval for the cache
	h     http.Handler  // Underlying promhttp handler used for actual gathering
}

// NewCachedPromHandler creates a new CachedPromHandler instance.
//
// Parameters:
//   - ctx: the serve-mode context from main(), canceled on SIGINT/SIGTERM so
//     the background goroutine stops with the server.
//   - gatherer: the Prometheus gatherer (prometheus.DefaultGatherer in
//     production, a private registry in tests).
//   - ttl: how often the cache is refreshed; should be <= scrape interval.
//
// Why it exists:
//   - Spawns refreshLoop in the background to keep the cache warm.
func NewCachedPromHandler(ctx context.Context, gatherer prometheus.Gatherer, ttl time.Duration) *CachedPromHandler {
	c := &CachedPromHandler{
		ttl: ttl,
		h:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}

	go c.refreshLoop(ctx)
	return c
}

// refreshLoop runs in a goroutine and periodically refreshes the metrics cache.
//
// It runs until ctx is canceled, which happens on graceful shutdown of the
// HTTP server.
func (c *CachedPromHandler) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

// refresh gathers the metrics in the plain text format.
//
// promhttp negotiates the exposition format from the request headers, so a
// real request is passed instead of nil. With no Accept header the plain
// text format is chosen, matching the Content-Type set in ServeHTTP.
func (c *CachedPromHandler) refresh() {
	var buf bytes.Buffer
	rec := &responseRecorder{buf: &buf}
	// The URL is constant, NewRequest cannot fail here.
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	c.h.ServeHTTP(rec, req)

	c.mu.Lock()
	c.cache = buf.Bytes()
	c.mu.Unlock()
}

// ServeHTTP implements http.Handler by serving cached metrics.
//
// Behavior:
//   - If the cache is still empty (right after startup), falls back to the
//     underlying promhttp handler.
//   - Otherwise, serves the precomputed response immediately.
//
// The Content-Type comes from expfmt.NewFormat(expfmt.TypeTextPlain)
// instead of a hardcoded "text/plain; version=0.0.4" string, to stay
// aligned with the Prometheus library.
func (c *CachedPromHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Cache is empty very early after startup, fall back to the live handler.
	if len(c.cache) == 0 {
		c.h.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(c.cache)
}

// responseRecorder is a lightweight implementation of http.ResponseWriter.
//
// Purpose:
//   - promhttp writes directly to a ResponseWriter.
//   - To cache the exposition, writes are redirected into a bytes.Buffer
//     instead of a socket.
//
// Status codes are ignored: a gathered exposition is always a 200 OK.
// The header map is kept because promhttp sets Content-Type and
// Content-Encoding on it while writing.
type responseRecorder struct {
	buf    *bytes.Buffer
	header http.Header
}

// Write appends the promhttp output into the buffer.
func (rr *responseRecorder) Write(b []byte) (int, error) { return rr.buf.Write(b) }

// Header returns the recorder's header map, allocated on first use.
func (rr *responseRecorder) Header() http.Header {
	if rr.header == nil {
		rr.header = http.Header{}
	}
	return rr.header
}

// WriteHeader is a no-op since status codes are not needed.
func (rr *responseRecorder) WriteHeader(statusCode int) {}
