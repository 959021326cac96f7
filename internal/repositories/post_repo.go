package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/models"
)

// feedOrder is shared by every feed query: newest first, id as tiebreak
// for posts created in the same instant.
const feedOrder = "created_at DESC, id DESC"

// PostRepository persists posts and serves the feed queries.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// ListAll returns one page of the global feed plus the total count.
func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), limit, offset)
}

// ListByGroup returns one page of a group feed plus the total count.
func (r *PostRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.list(ctx, query, limit, offset)
}

// ListByAuthor returns one page of a profile feed plus the total count.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.list(ctx, query, limit, offset)
}

// ListByAuthors returns one page of posts by any of the given authors.
// An empty author set yields an empty page.
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN ?", authorIDs)
	return r.list(ctx, query, limit, offset)
}

func (r *PostRepository) list(ctx context.Context, query *gorm.DB, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, total, err
}
