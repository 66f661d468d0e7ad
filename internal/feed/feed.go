package feed

import (
	"context"

	"github.com/orgball2608/insta-feed/internal/domain"
)

// Controller owns the feed as the viewer sees it: seed posts merged with the
// session's overrides, plus the intents that change those overrides.
type Controller interface {
	CurrentUser(ctx context.Context) domain.User
	Posts(ctx context.Context) []domain.Post
	Stories() []domain.Story
	SuggestedUsers(ctx context.Context) []Suggestion
	Comments(postID string) []domain.Comment
	Search(query string) []*domain.User

	Like(ctx context.Context, postID string, liked bool) error
	Save(ctx context.Context, postID string, saved bool) error
	Comment(ctx context.Context, postID string)
	Share(ctx context.Context, postID string) error
	Follow(ctx context.Context, userID string) error
	OpenStory(ctx context.Context, storyID string)
	SwitchAccount(ctx context.Context)
}

// Suggestion is a suggested account and whether the viewer already follows it.
type Suggestion struct {
	User      *domain.User
	Following bool
}

// Enrich returns copies of posts whose Liked and Saved flags take the
// override when one exists, even a false one, and the authored value
// otherwise. posts is never modified.
func Enrich(posts []domain.Post, liked, saved map[string]bool) []domain.Post {
	enriched := make([]domain.Post, len(posts))
	for i, p := range posts {
		if v, ok := liked[p.ID]; ok {
			p.Liked = v
		}
		if v, ok := saved[p.ID]; ok {
			p.Saved = v
		}
		enriched[i] = p
	}
	return enriched
}
