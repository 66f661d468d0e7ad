package feedimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/feed"
	"github.com/orgball2608/insta-feed/internal/seed"
	"github.com/orgball2608/insta-feed/internal/session"
	"github.com/orgball2608/insta-feed/internal/share"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Seed   seed.Client
	Store  *session.Store
	Share  share.Client
	Logger logger.Logger
}

type FeedImpl struct {
	seed   seed.Client
	store  *session.Store
	share  share.Client
	logger logger.Logger
}

var _ feed.Controller = (*FeedImpl)(nil)

func New(opts Opts) *FeedImpl {
	return &FeedImpl{
		seed:   opts.Seed,
		store:  opts.Store,
		share:  opts.Share,
		logger: opts.Logger.WithComponent("Feed"),
	}
}

func (f *FeedImpl) CurrentUser(ctx context.Context) domain.User {
	return f.store.CurrentUser.Get(ctx)
}

// Posts is recomputed on every call so it always reflects the latest
// overrides.
func (f *FeedImpl) Posts(ctx context.Context) []domain.Post {
	return feed.Enrich(f.seed.Posts(), f.store.Liked.Get(ctx), f.store.Saved.Get(ctx))
}

func (f *FeedImpl) Stories() []domain.Story {
	return f.seed.Stories()
}

func (f *FeedImpl) SuggestedUsers(ctx context.Context) []feed.Suggestion {
	users := f.seed.SuggestedUsers()
	suggestions := make([]feed.Suggestion, 0, len(users))
	for _, u := range users {
		suggestions = append(suggestions, feed.Suggestion{User: u, Following: f.store.IsFollowing(ctx, u.ID)})
	}
	return suggestions
}

func (f *FeedImpl) Comments(postID string) []domain.Comment {
	return f.seed.Comments(postID)
}

func (f *FeedImpl) Search(query string) []*domain.User {
	return f.seed.SearchUsers(query)
}

func (f *FeedImpl) Like(ctx context.Context, postID string, liked bool) error {
	_, err := f.store.Liked.Update(ctx, func(prev session.Overrides) session.Overrides {
		return prev.With(postID, liked)
	})
	f.logger.Info("Post like changed", "postID", postID, "liked", liked)
	return err
}

func (f *FeedImpl) Save(ctx context.Context, postID string, saved bool) error {
	_, err := f.store.Saved.Update(ctx, func(prev session.Overrides) session.Overrides {
		return prev.With(postID, saved)
	})
	f.logger.Info("Post save changed", "postID", postID, "saved", saved)
	return err
}

// Comment has no thread service behind it yet.
func (f *FeedImpl) Comment(_ context.Context, postID string) {
	f.logger.Info("Comment on post", "postID", postID)
}

func (f *FeedImpl) Share(ctx context.Context, postID string) error {
	post, ok := f.post(ctx, postID)
	if !ok {
		return errors.Wrap(errors.ErrNotFound, fmt.Sprintf("post %s", postID))
	}
	return f.share.SharePost(ctx, post)
}

// Follow only ever adds to the followed set.
func (f *FeedImpl) Follow(ctx context.Context, userID string) error {
	if f.store.IsFollowing(ctx, userID) {
		return nil
	}
	_, err := f.store.Followed.Update(ctx, func(prev session.Overrides) session.Overrides {
		return prev.With(userID, true)
	})
	f.logger.Info("Followed user", "userID", userID)
	return err
}

// OpenStory logs the intent. Stories have no seen state to update.
func (f *FeedImpl) OpenStory(_ context.Context, storyID string) {
	f.logger.Info("View story", "storyID", storyID)
}

func (f *FeedImpl) SwitchAccount(context.Context) {
	f.logger.Info("Switch account clicked")
}

func (f *FeedImpl) post(ctx context.Context, postID string) (domain.Post, bool) {
	for _, p := range f.Posts(ctx) {
		if p.ID == postID {
			return p, true
		}
	}
	return domain.Post{}, false
}
