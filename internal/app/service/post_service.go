package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogql/internal/common"
	"blogql/internal/common/security"
	"blogql/internal/common/validate"
	"blogql/internal/domain/model"
	"blogql/internal/domain/repository"
	"blogql/internal/platform/queue"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PageSize is the fixed posts page size.
const PageSize = 2

// imagePlaceholder is what clients send for "keep the current image".
const imagePlaceholder = "undefined"

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cleanup  queue.ImageCleanup
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	cleanup queue.ImageCleanup,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		cleanup:  cleanup,
	}
}

type PostInput struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageURL string `json:"imageUrl"`
}

type PostsPage struct {
	Posts      []model.Post `json:"posts"`
	TotalItems int          `json:"totalItems"`
}

func (s *PostService) Create(ctx context.Context, auth security.AuthContext, input PostInput) (*model.Post, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}
	if err := common.NewValidationError(validate.Struct(input)); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid user: %w", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Slug:      slug.Make(input.Title),
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: creator.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	creator.HashedPassword = ""
	post.Creator = creator
	return post, nil
}

func (s *PostService) Get(ctx context.Context, auth security.AuthContext, postID string) (*model.Post, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}
	post, err := s.postRepo.FindByID(ctx, postID, true)
	if err != nil {
		return nil, err // common.ErrNotFound or a wrapped store error
	}
	return post, nil
}

// List returns the requested 1-based page plus the total post count.
// Page 0 (omitted) means page 1; pages past the end are empty, not errors.
func (s *PostService) List(ctx context.Context, auth security.AuthContext, page int) (*PostsPage, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	posts, total, err := s.postRepo.List(ctx, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return &PostsPage{Posts: posts, TotalItems: total}, nil
}

func (s *PostService) Update(ctx context.Context, auth security.AuthContext, postID string, input PostInput) (*model.Post, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}

	post, err := s.postRepo.FindByID(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != auth.UserID {
		return nil, fmt.Errorf("not the creator of this post: %w", common.ErrForbidden)
	}

	if err := common.NewValidationError(validate.Struct(input)); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Slug = slug.Make(input.Title)
	post.Content = input.Content
	if input.ImageURL != "" && input.ImageURL != imagePlaceholder {
		post.ImageURL = input.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes an owned post. The uploaded image is cleaned up
// best-effort; a failed enqueue never fails the delete.
func (s *PostService) Delete(ctx context.Context, auth security.AuthContext, postID string) (bool, error) {
	if !auth.IsAuth {
		return false, common.ErrUnauthenticated
	}

	post, err := s.postRepo.FindByID(ctx, postID, false)
	if err != nil {
		return false, err
	}
	if post.CreatorID != auth.UserID {
		return false, fmt.Errorf("not the creator of this post: %w", common.ErrForbidden)
	}

	if post.ImageURL != "" {
		if err := s.cleanup.Enqueue(ctx, post.ImageURL); err != nil {
			log.Printf("WARN: Failed to enqueue image cleanup for post %s: %v", post.ID, err)
		}
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return true, nil
}
