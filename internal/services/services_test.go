package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/media"
	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/repositories"
	"github.com/yatube-app/yatube/internal/storage"
)

type testEnv struct {
	db       *gorm.DB
	feeds    *FeedService
	posts    *PostService
	comments *CommentService
	follows  *FollowService

	followRepo  *repositories.FollowRepository
	commentRepo *repositories.CommentRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := storage.InitSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mediaStore, err := media.NewStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	followRepo := repositories.NewFollowRepository(db)

	return &testEnv{
		db:          db,
		feeds:       NewFeedService(postRepo, groupRepo, userRepo, followRepo),
		posts:       NewPostService(postRepo, groupRepo, commentRepo, mediaStore),
		comments:    NewCommentService(commentRepo, postRepo),
		follows:     NewFollowService(followRepo, userRepo),
		followRepo:  followRepo,
		commentRepo: commentRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()

	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, e.db.Create(group).Error)
	return group
}

func (e *testEnv) createPost(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func testContext() context.Context {
	return context.Background()
}
