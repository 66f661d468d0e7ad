package domain

import "time"

type Post struct {
	ID        string   // Unique post id
	Author    *User    // Shared, not owned
	Images    []string // Only the first one is rendered
	Caption   string
	Likes     int
	Comments  int
	Timestamp time.Time
	Location  string // Optional
	Liked     bool   // Authored default, overridden per session
	Saved     bool   // Authored default, overridden per session
}

// CoverImage returns the image the feed renders, or "" for an image-less post.
func (p Post) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
