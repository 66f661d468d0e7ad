package imagingimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-feed/internal/ratelimit"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"github.com/orgball2608/insta-feed/pkg/retry"
)

var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func newLoader(t *testing.T, h http.Handler) (*HTTPLoader, string) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	l := NewHTTP(srv.Client(), ratelimit.NewInMemoryLimiter(0, time.Second, 1), logger.Discard())
	l.Retry = retry.Config{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}
	return l, srv.URL
}

func TestLoadImage(t *testing.T) {
	l, base := newLoader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gifBytes)
	}))

	if err := l.Load(context.Background(), base+"/a.gif"); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsNonImage(t *testing.T) {
	var hits atomic.Int32
	l, base := newLoader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body>not found</body></html>"))
	}))

	err := l.Load(context.Background(), base+"/a.jpg")
	if !errors.IsMalformed(err) || errors.GetCode(err) != errors.CodeImage {
		t.Fatalf("Load(html) = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("non-image retried %d times", hits.Load())
	}
}

func TestLoadRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	l, base := newLoader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(gifBytes)
	}))

	if err := l.Load(context.Background(), base+"/a.gif"); err != nil {
		t.Fatalf("Load after transient errors: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("hits = %d, want 3", hits.Load())
	}
}

func TestLoadNotFoundIsFinal(t *testing.T) {
	var hits atomic.Int32
	l, base := newLoader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))

	if err := l.Load(context.Background(), base+"/gone.jpg"); !errors.IsNotFound(err) {
		t.Fatalf("Load(404) = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("404 retried: hits = %d", hits.Load())
	}
}

func TestLoadBadURL(t *testing.T) {
	l, _ := newLoader(t, http.NotFoundHandler())
	if err := l.Load(context.Background(), "not a url"); !errors.IsInvalidInput(err) {
		t.Errorf("Load(bad url) = %v", err)
	}
}

// gatedLoader blocks every load until release is closed and records the
// highest number of loads running together.
type gatedLoader struct {
	release chan struct{}
	running atomic.Int32
	peak    atomic.Int32
}

func (g *gatedLoader) Load(context.Context, string) error {
	n := g.running.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-g.release
	g.running.Add(-1)
	return nil
}

func TestPooledCapsConcurrentLoads(t *testing.T) {
	gate := &gatedLoader{release: make(chan struct{})}
	p, err := NewPooled(gate, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()

	done := make(chan error, 5)
	for i := 0; i < 5; i++ {
		go func() { done <- p.Load(context.Background(), "https://example.com/a.jpg") }()
	}

	deadline := time.Now().Add(2 * time.Second)
	for gate.running.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(gate.release)

	for i := 0; i < 5; i++ {
		if err := <-done; err != nil {
			t.Errorf("Load: %v", err)
		}
	}
	if peak := gate.peak.Load(); peak > 2 {
		t.Errorf("peak concurrent loads = %d, want at most 2", peak)
	}
}

func TestPooledHonoursContext(t *testing.T) {
	gate := &gatedLoader{release: make(chan struct{})}
	defer close(gate.release)

	p, err := NewPooled(gate, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Load(ctx, "https://example.com/a.jpg"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Load = %v, want deadline exceeded", err)
	}
}
