package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/repositories"
)

// FollowService manages the directed follow graph.
type FollowService struct {
	followRepo *repositories.FollowRepository
	userRepo   *repositories.UserRepository
}

func NewFollowService(followRepo *repositories.FollowRepository, userRepo *repositories.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes userID follow the author with the given username.
// Following yourself and following twice are both no-ops.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if author.ID == userID {
		return nil
	}
	return s.followRepo.Create(ctx, userID, author.ID)
}

// Unfollow removes the follow edge; absent edges are a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.followRepo.Delete(ctx, userID, author.ID)
}
