package imagingimpl

import (
	"context"

	"github.com/orgball2608/insta-feed/internal/imaging"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/panjf2000/ants/v2"
)

// Pooled caps how many images load at once. Callers beyond the cap wait for
// a free worker.
type Pooled struct {
	next imaging.Loader
	pool *ants.Pool
}

var _ imaging.Loader = (*Pooled)(nil)

func NewPooled(next imaging.Loader, workers int) (*Pooled, error) {
	pool, err := ants.NewPool(max(1, workers), ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	return &Pooled{next: next, pool: pool}, nil
}

func (p *Pooled) Load(ctx context.Context, url string) error {
	done := make(chan error, 1)
	if err := p.pool.Submit(func() { done <- p.next.Load(ctx, url) }); err != nil {
		return errors.WrapWithCode(err, errors.CodeImage, "image workers unavailable")
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release stops the workers. Loads submitted afterwards fail.
func (p *Pooled) Release() {
	p.pool.Release()
}
