package service

import (
	"context"
	"fmt"
	"log"

	"blogql/internal/common"
	"blogql/internal/common/security"
	"blogql/internal/domain/model"
	"blogql/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

// Me returns the acting user with their owned posts populated.
func (s *UserService) Me(ctx context.Context, auth security.AuthContext) (*model.User, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByCreator(ctx, user.ID)
	if err != nil {
		log.Printf("WARN: Failed to fetch posts for user %s: %v", user.ID, err)
		// Continue, but posts will be missing
	}

	// Every owned post's creator is, by definition, this user; the repo
	// does not join it in, so attach it here. A stripped copy avoids a
	// user -> posts -> user cycle.
	user.HashedPassword = ""
	creator := *user
	for i := range posts {
		posts[i].Creator = &creator
	}
	user.Posts = posts
	return user, nil
}

// UpdateStatus sets the acting user's status line and returns the user.
func (s *UserService) UpdateStatus(ctx context.Context, auth security.AuthContext, status string) (*model.User, error) {
	if !auth.IsAuth {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, user.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	user.Status = status
	user.HashedPassword = ""
	return user, nil
}
