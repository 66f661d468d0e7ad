package session

import (
	"context"
	"maps"
	"slices"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/pkg/formatter"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// Durable keys.
const (
	KeyCurrentUser   = "currentUser"
	KeyLikedPosts    = "likedPosts"
	KeySavedPosts    = "savedPosts"
	KeyFollowedUsers = "followedUsers"
)

// Overrides maps an id to a flag that wins over the authored default.
type Overrides map[string]bool

// Lookup returns the override for id and whether one exists.
func (o Overrides) Lookup(id string) (value, ok bool) {
	value, ok = o[id]
	return value, ok
}

// With returns a copy of o with id set to value.
func (o Overrides) With(id string, value bool) Overrides {
	next := maps.Clone(o)
	if next == nil {
		next = Overrides{}
	}
	next[id] = value
	return next
}

// Store owns the session's durable state. One Store exists per application
// instance and is passed to its consumers.
type Store struct {
	CurrentUser *Value[domain.User]
	Liked       *Value[Overrides]
	Saved       *Value[Overrides]
	Followed    *Value[Overrides]

	repo   storage.Repository
	logger logger.Logger
}

func NewStore(repo storage.Repository, log logger.Logger, defaultUser domain.User) *Store {
	log = log.WithComponent("SessionStore")

	cloneOverrides := func(o Overrides) Overrides {
		if o == nil {
			return Overrides{}
		}
		return maps.Clone(o)
	}
	emptyOverrides := func() Overrides { return Overrides{} }

	return &Store{
		CurrentUser: newValue(repo, log, KeyCurrentUser,
			func() domain.User { return cloneUser(defaultUser) }, cloneUser, validUser),
		Liked:    newValue(repo, log, KeyLikedPosts, emptyOverrides, cloneOverrides, nil),
		Saved:    newValue(repo, log, KeySavedPosts, emptyOverrides, cloneOverrides, nil),
		Followed: newValue(repo, log, KeyFollowedUsers, emptyOverrides, cloneOverrides, nil),
		repo:     repo,
		logger:   log,
	}
}

// Load hydrates every key, writing defaults for the missing ones.
func (s *Store) Load(ctx context.Context) {
	s.CurrentUser.Get(ctx)
	s.Liked.Get(ctx)
	s.Saved.Get(ctx)
	s.Followed.Get(ctx)
}

// Reset wipes durable storage and drops the hydrated values. The next Get of
// each key starts again from its default.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.CurrentUser.forget()
	s.Liked.forget()
	s.Saved.forget()
	s.Followed.forget()

	s.logger.Info("Session reset")
	return nil
}

// IsFollowing reports whether the user id is in the followed set.
func (s *Store) IsFollowing(ctx context.Context, userID string) bool {
	return s.Followed.Get(ctx)[userID]
}

// validUser rejects users that decode from null or {}.
func validUser(u domain.User) bool {
	return u.ID != "" && formatter.IsValidUsername(u.Username)
}

func cloneUser(u domain.User) domain.User {
	u.FollowedBy = slices.Clone(u.FollowedBy)
	return u
}
