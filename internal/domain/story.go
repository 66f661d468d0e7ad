package domain

import "time"

type Story struct {
	ID               string
	Author           *User
	HasUnseenStories bool
	Timestamp        time.Time
}
