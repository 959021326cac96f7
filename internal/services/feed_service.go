package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/pagination"
	"github.com/yatube-app/yatube/internal/repositories"
)

// FeedService assembles the four paginated post feeds: global, group,
// profile and follow-based.
type FeedService struct {
	postRepo   *repositories.PostRepository
	groupRepo  *repositories.GroupRepository
	userRepo   *repositories.UserRepository
	followRepo *repositories.FollowRepository
}

func NewFeedService(
	postRepo *repositories.PostRepository,
	groupRepo *repositories.GroupRepository,
	userRepo *repositories.UserRepository,
	followRepo *repositories.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GroupFeed couples a group with one page of its posts.
type GroupFeed struct {
	Group GroupView `json:"group"`
	FeedPage
}

// ProfileFeed couples an author with one page of their posts. Following
// reports whether the requesting viewer follows the author; false for
// anonymous viewers.
type ProfileFeed struct {
	Author    AuthorView `json:"author"`
	Following bool       `json:"following"`
	FeedPage
}

type listFunc func(limit, offset int) ([]PostView, int64, error)

// HomePage returns one page of the global feed.
func (s *FeedService) HomePage(ctx context.Context, number int) (*FeedPage, error) {
	return s.page(number, func(limit, offset int) ([]PostView, int64, error) {
		posts, total, err := s.postRepo.ListAll(ctx, limit, offset)
		return toPostViews(posts), total, err
	})
}

// GroupPage returns one page of a group's feed, or ErrGroupNotFound for
// an unknown slug.
func (s *FeedService) GroupPage(ctx context.Context, slug string, number int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	page, err := s.page(number, func(limit, offset int) ([]PostView, int64, error) {
		posts, total, err := s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		return toPostViews(posts), total, err
	})
	if err != nil {
		return nil, err
	}

	return &GroupFeed{Group: toGroupView(group), FeedPage: *page}, nil
}

// ProfilePage returns one page of an author's feed. viewerID is zero for
// anonymous requests.
func (s *FeedService) ProfilePage(ctx context.Context, username string, viewerID uint, number int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	page, err := s.page(number, func(limit, offset int) ([]PostView, int64, error) {
		posts, total, err := s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		return toPostViews(posts), total, err
	})
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{
		Author:    AuthorView{ID: author.ID, Username: author.Username},
		Following: following,
		FeedPage:  *page,
	}, nil
}

// FollowPage returns one page of posts by authors the user follows.
// A user with no follows gets an empty page.
func (s *FeedService) FollowPage(ctx context.Context, userID uint, number int) (*FeedPage, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.page(number, func(limit, offset int) ([]PostView, int64, error) {
		posts, total, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
		return toPostViews(posts), total, err
	})
}

// page fetches one feed page, refetching when the requested number was
// clamped into range.
func (s *FeedService) page(number int, list listFunc) (*FeedPage, error) {
	if number < 1 {
		number = 1
	}
	size := pagination.DefaultPageSize

	posts, total, err := list(size, (number-1)*size)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, number, size)
	if page.Number != number {
		posts, _, err = list(page.Limit(), page.Offset())
		if err != nil {
			return nil, err
		}
	}

	if posts == nil {
		posts = []PostView{}
	}
	return &FeedPage{Posts: posts, Page: page}, nil
}
