package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/storage"
	mock_storage "github.com/orgball2608/insta-feed/internal/storage/mocks"
	"github.com/orgball2608/insta-feed/internal/storage/storageimpl"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/mock/gomock"
)

var testUser = domain.User{ID: "user_1", Username: "johndoe", FullName: "John Doe", Verified: true}

func newTestStore(repo storage.Repository) *Store {
	return NewStore(repo, logger.Discard(), testUser)
}

func TestGetWritesDefaultWhenMissing(t *testing.T) {
	ctx := context.Background()
	repo := storageimpl.NewMemory()
	store := newTestStore(repo)

	user := store.CurrentUser.Get(ctx)
	if user.Username != "johndoe" {
		t.Fatalf("CurrentUser = %+v, want default user", user)
	}

	raw, err := repo.Get(ctx, KeyCurrentUser)
	if err != nil {
		t.Fatalf("default was not written: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("default was written empty")
	}

	if _, err := repo.Get(ctx, KeyLikedPosts); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("likedPosts written before first access")
	}
	store.Load(ctx)
	if raw, _ := repo.Get(ctx, KeyLikedPosts); string(raw) != "{}" {
		t.Errorf("likedPosts default = %s, want {}", raw)
	}
}

func TestMalformedEntryFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := storageimpl.NewMemory()
	if err := repo.Set(ctx, KeySavedPosts, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	store := newTestStore(repo)
	saved := store.Saved.Get(ctx)
	if len(saved) != 0 {
		t.Fatalf("Saved = %v, want empty default", saved)
	}

	raw, _ := repo.Get(ctx, KeySavedPosts)
	if string(raw) != "{not json" {
		t.Errorf("malformed entry was rewritten on read: %s", raw)
	}
}

func TestDecodableButInvalidUserFallsBackToDefault(t *testing.T) {
	tests := []string{`null`, `{}`, `{"id":"user_9","username":""}`, `{"id":"","username":"ghost"}`}

	for _, stored := range tests {
		ctx := context.Background()
		repo := storageimpl.NewMemory()
		if err := repo.Set(ctx, KeyCurrentUser, []byte(stored)); err != nil {
			t.Fatal(err)
		}

		got := newTestStore(repo).CurrentUser.Get(ctx)
		if got.ID != testUser.ID || got.Username != testUser.Username {
			t.Errorf("stored %s: CurrentUser = %+v, want default %s", stored, got, testUser.Username)
		}
	}
}

func TestUpdatePersistsEveryWrite(t *testing.T) {
	ctx := context.Background()
	repo := storageimpl.NewMemory()
	store := newTestStore(repo)

	if _, err := store.Liked.Update(ctx, func(prev Overrides) Overrides { return prev.With("post_1", true) }); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Liked.Update(ctx, func(prev Overrides) Overrides { return prev.With("post_2", false) }); err != nil {
		t.Fatal(err)
	}

	raw, err := repo.Get(ctx, KeyLikedPosts)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"post_1":true,"post_2":false}` {
		t.Errorf("stored likedPosts = %s", raw)
	}
}

func TestFreshLoadRestoresOverrides(t *testing.T) {
	ctx := context.Background()
	repo := storageimpl.NewMemory()

	first := newTestStore(repo)
	if _, err := first.Liked.Update(ctx, func(prev Overrides) Overrides { return prev.With("post_1", true) }); err != nil {
		t.Fatal(err)
	}

	restarted := newTestStore(repo)
	liked, ok := restarted.Liked.Get(ctx).Lookup("post_1")
	if !ok || !liked {
		t.Errorf("after restart post_1 liked = %v (present %v), want true", liked, ok)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storageimpl.NewMemory())

	got := store.Followed.Get(ctx)
	got["user_9"] = true

	if store.IsFollowing(ctx, "user_9") {
		t.Error("mutating a returned map changed the store")
	}
}

func TestConcurrentUpdatesKeepEveryWrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storageimpl.NewMemory())

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = store.Followed.Update(ctx, func(prev Overrides) Overrides { return prev.With(id, true) })
		}(id)
	}
	wg.Wait()

	followed := store.Followed.Get(ctx)
	for _, id := range ids {
		if !followed[id] {
			t.Errorf("lost concurrent write for %s", id)
		}
	}
}

func TestWriteFailureKeepsInMemoryValue(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock_storage.NewMockRepository(ctrl)

	repo.EXPECT().Get(gomock.Any(), KeyLikedPosts).Return([]byte(`{}`), nil)
	repo.EXPECT().Set(gomock.Any(), KeyLikedPosts, gomock.Any()).Return(errors.New("disk full"))

	store := newTestStore(repo)
	liked, err := store.Liked.Update(ctx, func(prev Overrides) Overrides { return prev.With("post_4", true) })
	if err == nil {
		t.Fatal("Update swallowed the storage error")
	}
	if !liked["post_4"] {
		t.Error("in-memory value not updated after failed write")
	}
	if !store.Liked.Get(ctx)["post_4"] {
		t.Error("Get lost the in-memory value")
	}
}

func TestResetClearsStorage(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock_storage.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), KeySavedPosts).Return([]byte(`{"post_3":true}`), nil),
		repo.EXPECT().Clear(gomock.Any()).Return(nil),
		repo.EXPECT().Get(gomock.Any(), KeySavedPosts).Return(nil, storage.ErrNotFound),
		repo.EXPECT().Set(gomock.Any(), KeySavedPosts, []byte(`{}`)).Return(nil),
	)

	store := newTestStore(repo)
	if !store.Saved.Get(ctx)["post_3"] {
		t.Fatal("expected hydrated saved override")
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if len(store.Saved.Get(ctx)) != 0 {
		t.Error("Reset kept the hydrated value")
	}
}
