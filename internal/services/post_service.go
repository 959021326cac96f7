package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/media"
	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/repositories"
)

// PostService covers authoring: create, edit (author only) and the
// detail view with comments.
type PostService struct {
	postRepo    *repositories.PostRepository
	groupRepo   *repositories.GroupRepository
	commentRepo *repositories.CommentRepository
	mediaStore  *media.Store
}

func NewPostService(
	postRepo *repositories.PostRepository,
	groupRepo *repositories.GroupRepository,
	commentRepo *repositories.CommentRepository,
	mediaStore *media.Store,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		mediaStore:  mediaStore,
	}
}

type CreatePostRequest struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

type EditPostRequest struct {
	Text    string
	GroupID *uint
}

// PostDetail is the post page payload: the post plus its comments,
// oldest first.
type PostDetail struct {
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

// FormInfo describes the authoring form: the groups a post may join and,
// when editing, the current field values.
type FormInfo struct {
	Groups []GroupView `json:"groups"`
	Post   *PostView   `json:"post,omitempty"`
}

func (s *PostService) Create(ctx context.Context, authorID uint, req *CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrTextRequired
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}

	if req.Image != nil {
		path, err := s.mediaStore.Save(req.Image)
		if err != nil {
			return nil, err
		}
		post.Image = path
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit updates a post's text and group. Only the author may edit; the
// post is left untouched for anyone else.
func (s *PostService) Edit(ctx context.Context, postID, requesterID uint, req *EditPostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != requesterID {
		return nil, ErrNotPostAuthor
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrTextRequired
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
	}

	post.Text = req.Text
	post.GroupID = req.GroupID

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:     toPostView(post),
		Comments: toCommentViews(comments),
	}, nil
}

// CreateForm returns the form descriptor for the creation page.
func (s *PostService) CreateForm(ctx context.Context) (*FormInfo, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	info := &FormInfo{Groups: make([]GroupView, len(groups))}
	for i := range groups {
		info.Groups[i] = toGroupView(&groups[i])
	}
	return info, nil
}

// EditForm returns the form descriptor prefilled with the post's current
// values. Authorization matches Edit.
func (s *PostService) EditForm(ctx context.Context, postID, requesterID uint) (*FormInfo, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, ErrNotPostAuthor
	}

	info, err := s.CreateForm(ctx)
	if err != nil {
		return nil, err
	}
	view := toPostView(post)
	info.Post = &view
	return info, nil
}
