package service_test

import (
	"context"
	"errors"
	"testing"

	"blogql/internal/app/service"
	"blogql/internal/common"
	"blogql/internal/common/security"
)

func TestMe_Unauthenticated(t *testing.T) {
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo(userRepo)
	users := service.NewUserService(userRepo, postRepo)

	_, err := users.Me(context.Background(), security.AuthContext{})
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMe_PopulatesOwnedPosts(t *testing.T) {
	f := newPostFixture(t)
	userRepo := f.postRepo.users
	users := service.NewUserService(userRepo, f.postRepo)
	ctx := context.Background()

	if _, err := f.posts.Create(ctx, f.authA, validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	me, err := users.Me(ctx, f.authA)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != f.authA.UserID {
		t.Fatalf("expected acting user, got %q", me.ID)
	}
	if len(me.Posts) != 1 {
		t.Fatalf("expected owned posts populated, got %v", me.Posts)
	}
	if me.HashedPassword != "" {
		t.Fatal("password hash must never be returned")
	}
}

// A post always has its creator; posts returned through Me carry the acting
// user even though the owned-posts query does not join them in.
func TestMe_OwnedPostsCarryCreator(t *testing.T) {
	f := newPostFixture(t)
	userRepo := f.postRepo.users
	users := service.NewUserService(userRepo, f.postRepo)
	ctx := context.Background()

	if _, err := f.posts.Create(ctx, f.authA, validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	me, err := users.Me(ctx, f.authA)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if len(me.Posts) != 1 {
		t.Fatalf("expected one owned post, got %v", me.Posts)
	}
	creator := me.Posts[0].Creator
	if creator == nil || creator.ID != f.authA.UserID {
		t.Fatalf("expected owned post's creator to be the acting user, got %+v", creator)
	}
	if creator.HashedPassword != "" {
		t.Fatal("password hash must never be returned")
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newPostFixture(t)
	userRepo := f.postRepo.users
	users := service.NewUserService(userRepo, f.postRepo)
	ctx := context.Background()

	me, err := users.UpdateStatus(ctx, f.authA, "shipping")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if me.Status != "shipping" {
		t.Fatalf("unexpected status: %q", me.Status)
	}

	reloaded, err := users.Me(ctx, f.authA)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if reloaded.Status != "shipping" {
		t.Fatalf("status not persisted: %q", reloaded.Status)
	}
}

func TestUpdateStatus_Unauthenticated(t *testing.T) {
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo(userRepo)
	users := service.NewUserService(userRepo, postRepo)

	_, err := users.UpdateStatus(context.Background(), security.AuthContext{}, "hi")
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
