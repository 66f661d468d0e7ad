package domain

// User is an account shown in the feed. Posts and stories hold a shared
// pointer to it.
type User struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	FullName   string   `json:"fullName"`
	Avatar     string   `json:"avatar"`
	Bio        string   `json:"bio,omitempty"`
	Website    string   `json:"website,omitempty"`
	Verified   bool     `json:"verified"`
	Followers  int      `json:"followers"`
	Following  int      `json:"following"`
	Posts      int      `json:"posts"`
	FollowedBy []string `json:"followedBy,omitempty"`
}

// ProfilePath is the in-app path of the user's profile.
func (u *User) ProfilePath() string {
	return "/" + u.Username
}
