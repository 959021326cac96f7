package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/repositories"
)

type CommentService struct {
	commentRepo *repositories.CommentRepository
	postRepo    *repositories.PostRepository
}

func NewCommentService(commentRepo *repositories.CommentRepository, postRepo *repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add attaches a comment to a post. The post must exist and the text
// must not be empty.
func (s *CommentService) Add(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
