package shareimpl

import (
	"context"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/share"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// LogClient records the share intent and does nothing else.
type LogClient struct {
	logger logger.Logger
}

var _ share.Client = (*LogClient)(nil)

func NewLog(log logger.Logger) *LogClient {
	return &LogClient{logger: log.WithComponent("Share")}
}

func (c *LogClient) SharePost(_ context.Context, post domain.Post) error {
	c.logger.Info("Share post", "postID", post.ID)
	return nil
}
