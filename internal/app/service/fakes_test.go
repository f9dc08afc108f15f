package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"blogql/internal/common"
	"blogql/internal/domain/model"
)

// In-memory repositories for service tests. They mirror the contracts of
// the pg implementations: ErrNotFound on misses, ErrConflict on duplicate
// emails, pages sorted by creation time descending.

type fakeUserRepo struct {
	users map[string]*model.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

type fakePostRepo struct {
	users *fakeUserRepo
	posts []*model.Post
	seq   int
	base  time.Time
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{users: users, base: time.Now()}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	r.seq++
	created := r.base.Add(time.Duration(r.seq) * time.Second)
	post.CreatedAt = created
	post.UpdatedAt = created
	stored := *post
	stored.Creator = nil
	r.posts = append(r.posts, &stored)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id string, populateCreator bool) (*model.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			copied := *p
			if populateCreator {
				if u, ok := r.users.users[p.CreatorID]; ok {
					creator := *u
					creator.HashedPassword = ""
					copied.Creator = &creator
				}
			}
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakePostRepo) List(_ context.Context, limit, offset int) ([]model.Post, int, error) {
	sorted := make([]*model.Post, len(r.posts))
	copy(sorted, r.posts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	total := len(sorted)
	page := []model.Post{}
	for i := offset; i < total && len(page) < limit; i++ {
		page = append(page, *sorted[i])
	}
	return page, total, nil
}

func (r *fakePostRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Post, error) {
	owned := []model.Post{}
	for _, p := range r.posts {
		if p.CreatorID == creatorID {
			owned = append(owned, *p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	for _, p := range r.posts {
		if p.ID == post.ID {
			p.Title = post.Title
			p.Slug = post.Slug
			p.Content = post.Content
			p.ImageURL = post.ImageURL
			p.UpdatedAt = time.Now()
			post.UpdatedAt = p.UpdatedAt
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeCleanup struct {
	enqueued []string
	err      error
}

func (c *fakeCleanup) Enqueue(_ context.Context, imagePath string) error {
	if c.err != nil {
		return c.err
	}
	c.enqueued = append(c.enqueued, imagePath)
	return nil
}
