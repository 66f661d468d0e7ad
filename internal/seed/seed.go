package seed

import "github.com/orgball2608/insta-feed/internal/domain"

// Client supplies the initial users, posts and stories. The collections are
// read-only; callers must not mutate the returned records.
type Client interface {
	CurrentUser() domain.User
	Posts() []domain.Post
	Stories() []domain.Story
	SuggestedUsers() []*domain.User
	Comments(postID string) []domain.Comment
	// SearchUsers returns the mock result set for any non-empty query.
	SearchUsers(query string) []*domain.User
	// User looks an account up by id.
	User(id string) (*domain.User, bool)
}
