package imaging

import "context"

// Loader stands in for the image display surface: it reports whether the
// image at url can be shown.
type Loader interface {
	Load(ctx context.Context, url string) error
}
