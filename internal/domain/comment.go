package domain

import "time"

type Comment struct {
	ID        string
	Author    *User
	Text      string
	Likes     int
	Timestamp time.Time
}
