package imagingimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/orgball2608/insta-feed/internal/imaging"
	"github.com/orgball2608/insta-feed/internal/ratelimit"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"github.com/orgball2608/insta-feed/pkg/retry"
)

// sniffLen is how much of the body mimetype needs to decide.
const sniffLen = 3072

type HTTPLoader struct {
	Client  *http.Client
	Limiter ratelimit.Limiter
	Logger  logger.Logger
	Retry   retry.Config
}

var _ imaging.Loader = (*HTTPLoader)(nil)

func NewHTTP(client *http.Client, limiter ratelimit.Limiter, log logger.Logger) *HTTPLoader {
	return &HTTPLoader{
		Client:  client,
		Limiter: limiter,
		Logger:  log.WithComponent("ImageLoader"),
		Retry:   retry.Interactive(),
	}
}

// Load fetches the start of the image and checks that it really is one.
// Server errors are retried, anything else fails at once.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeImage, fmt.Sprintf("bad image url %q", rawURL))
	}

	err = retry.Do(ctx, l.Logger, "load image", func() error {
		if err := l.Limiter.Wait(ctx, u.Host); err != nil {
			return retry.Permanent(err)
		}
		return l.fetch(ctx, rawURL)
	}, l.Retry)
	if err != nil {
		l.Logger.Debug("Image failed", "url", rawURL, "error", err)
		return errors.WrapWithCode(err, errors.CodeImage, "failed to load image")
	}
	return nil
}

func (l *HTTPLoader) fetch(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return retry.Permanent(err)
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return err
	}
	defer safeClose(resp.Body, l.Logger)

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", errors.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return retry.Permanent(fmt.Errorf("%w: status %d", errors.ErrNotFound, resp.StatusCode))
	}

	mt, err := mimetype.DetectReader(io.LimitReader(resp.Body, sniffLen))
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return retry.Permanent(fmt.Errorf("%w: got %s", errors.ErrMalformed, mt.String()))
	}
	return nil
}

// Offline accepts every image without fetching it.
type Offline struct{}

var _ imaging.Loader = Offline{}

func (Offline) Load(context.Context, string) error { return nil }

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}

func timeoutClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
