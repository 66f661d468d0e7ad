package seedimpl

import (
	"strings"
	"time"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/seed"
)

// Mock is the built-in data set. Timestamps are relative to the clock passed
// to New.
type Mock struct {
	current   domain.User
	users     map[string]*domain.User
	suggested []*domain.User
	posts     []domain.Post
	stories   []domain.Story
	comments  map[string][]domain.Comment
	search    []*domain.User
}

var _ seed.Client = (*Mock)(nil)

func New() *Mock {
	return NewAt(time.Now())
}

func NewAt(now time.Time) *Mock {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	current := domain.User{
		ID:        "user_1",
		Username:  "johndoe",
		FullName:  "John Doe",
		Avatar:    "https://i.pravatar.cc/150?img=12",
		Bio:       "Photography enthusiast 📸 | Travel lover ✈️ | Coffee addict ☕",
		Website:   "https://johndoe.com",
		Followers: 1234,
		Following: 567,
		Posts:     89,
		Verified:  true,
	}

	suggested := []*domain.User{
		{ID: "user_2", Username: "sarahwilson", FullName: "Sarah Wilson", Avatar: "https://i.pravatar.cc/150?img=5", FollowedBy: []string{"user_3", "user_4"}},
		{ID: "user_3", Username: "mikejones", FullName: "Mike Jones", Avatar: "https://i.pravatar.cc/150?img=13", FollowedBy: []string{"user_2"}, Verified: true},
		{ID: "user_4", Username: "emilychen", FullName: "Emily Chen", Avatar: "https://i.pravatar.cc/150?img=9", FollowedBy: []string{"user_2", "user_3"}},
		{ID: "user_5", Username: "davidbrown", FullName: "David Brown", Avatar: "https://i.pravatar.cc/150?img=14", FollowedBy: []string{"user_1"}},
		{ID: "user_6", Username: "lisaanderson", FullName: "Lisa Anderson", Avatar: "https://i.pravatar.cc/150?img=27", FollowedBy: []string{"user_1", "user_3"}, Verified: true},
	}

	users := map[string]*domain.User{current.ID: &current}
	for _, u := range suggested {
		users[u.ID] = u
	}

	stories := []domain.Story{
		{ID: "story_1", Author: users["user_2"], HasUnseenStories: true, Timestamp: ago(2 * time.Hour)},
		{ID: "story_2", Author: users["user_3"], HasUnseenStories: true, Timestamp: ago(5 * time.Hour)},
		{ID: "story_3", Author: users["user_4"], HasUnseenStories: false, Timestamp: ago(12 * time.Hour)},
		{ID: "story_4", Author: users["user_5"], HasUnseenStories: true, Timestamp: ago(1 * time.Hour)},
		{ID: "story_5", Author: users["user_6"], HasUnseenStories: true, Timestamp: ago(3 * time.Hour)},
	}

	posts := []domain.Post{
		{
			ID:        "post_1",
			Author:    users["user_2"],
			Images:    []string{"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=800&fit=crop"},
			Caption:   "Golden hour at the beach 🌅 Nothing beats this view! #sunset #beach #nature",
			Likes:     1234,
			Comments:  89,
			Timestamp: ago(2 * time.Hour),
			Location:  "Malibu Beach, CA",
		},
		{
			ID:        "post_2",
			Author:    users["user_3"],
			Images:    []string{"https://images.unsplash.com/photo-1517466787929-bc90951d0974?w=800&h=800&fit=crop"},
			Caption:   "Urban exploration 🏙️ The city never sleeps and neither do I",
			Likes:     2456,
			Comments:  156,
			Timestamp: ago(5 * time.Hour),
			Location:  "New York City",
			Liked:     true,
		},
		{
			ID:        "post_3",
			Author:    users["user_4"],
			Images:    []string{"https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=800&h=800&fit=crop"},
			Caption:   "Homemade pasta night 🍝 Recipe in bio!",
			Likes:     892,
			Comments:  43,
			Timestamp: ago(8 * time.Hour),
			Location:  "San Francisco, CA",
			Saved:     true,
		},
		{
			ID:        "post_4",
			Author:    users["user_5"],
			Images:    []string{"https://images.unsplash.com/photo-1470770903676-69b98201ea1c?w=800&h=800&fit=crop"},
			Caption:   "Mountain views that take your breath away 🏔️ #hiking #adventure #nature",
			Likes:     3421,
			Comments:  234,
			Timestamp: ago(12 * time.Hour),
			Location:  "Rocky Mountains, CO",
			Liked:     true,
			Saved:     true,
		},
		{
			ID:        "post_5",
			Author:    users["user_6"],
			Images:    []string{"https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800&h=800&fit=crop"},
			Caption:   "New collection drop tomorrow! Stay tuned 👗✨ #fashion #style",
			Likes:     5678,
			Comments:  432,
			Timestamp: ago(18 * time.Hour),
			Location:  "Los Angeles, CA",
		},
	}

	comments := map[string][]domain.Comment{
		"post_1": {
			{ID: "comment_1", Author: users["user_3"], Text: "Stunning shot! 😍", Likes: 12, Timestamp: ago(1 * time.Hour)},
			{ID: "comment_2", Author: users["user_4"], Text: "The colors are incredible!", Likes: 8, Timestamp: ago(30 * time.Minute)},
		},
		"post_2": {
			{ID: "comment_3", Author: users["user_2"], Text: "NYC vibes! Love it 🏙️", Likes: 24, Timestamp: ago(2 * time.Hour)},
		},
	}

	search := []*domain.User{
		{ID: "search_1", Username: "johndoe", FullName: "John Doe", Avatar: "https://i.pravatar.cc/150?img=12"},
		{ID: "search_2", Username: "janedoe", FullName: "Jane Doe", Avatar: "https://i.pravatar.cc/150?img=5"},
	}

	return &Mock{
		current:   current,
		users:     users,
		suggested: suggested,
		posts:     posts,
		stories:   stories,
		comments:  comments,
		search:    search,
	}
}

func (m *Mock) CurrentUser() domain.User {
	return m.current
}

func (m *Mock) Posts() []domain.Post {
	return m.posts
}

func (m *Mock) Stories() []domain.Story {
	return m.stories
}

func (m *Mock) SuggestedUsers() []*domain.User {
	return m.suggested
}

func (m *Mock) Comments(postID string) []domain.Comment {
	return m.comments[postID]
}

func (m *Mock) SearchUsers(query string) []*domain.User {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return m.search
}

func (m *Mock) User(id string) (*domain.User, bool) {
	u, ok := m.users[id]
	return u, ok
}
