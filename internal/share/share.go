package share

import (
	"context"

	"github.com/orgball2608/insta-feed/internal/domain"
)

//go:generate mockgen -source=share.go -destination=mocks/mock.go

// Client hands a post to whatever sharing channel is configured.
type Client interface {
	SharePost(ctx context.Context, post domain.Post) error
}
