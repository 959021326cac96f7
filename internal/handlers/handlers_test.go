package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yatube-app/yatube/internal/cache"
	"github.com/yatube-app/yatube/internal/handlers"
	"github.com/yatube-app/yatube/internal/media"
	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/repositories"
	"github.com/yatube-app/yatube/internal/routers"
	"github.com/yatube-app/yatube/internal/services"
	"github.com/yatube-app/yatube/internal/storage"
	"github.com/yatube-app/yatube/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	cache  *cache.PageCache
	tokens *jwt.TokenManager
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := storage.InitSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	mediaStore, err := media.NewStore(t.TempDir())
	require.NoError(t, err)

	tokenManager := jwt.NewTokenManager("test-secret", 24)
	pageCache := cache.NewPageCache(redisClient, zap.NewNop(), 20*time.Second)

	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	followRepo := repositories.NewFollowRepository(db)

	router := routers.SetupRouter(
		zap.NewNop(),
		tokenManager,
		pageCache,
		mediaStore.Root(),
		handlers.NewAuthHandler(services.NewAuthService(userRepo, tokenManager)),
		handlers.NewFeedHandler(services.NewFeedService(postRepo, groupRepo, userRepo, followRepo)),
		handlers.NewPostHandler(services.NewPostService(postRepo, groupRepo, commentRepo, mediaStore)),
		handlers.NewCommentHandler(services.NewCommentService(commentRepo, postRepo)),
		handlers.NewFollowHandler(services.NewFollowService(followRepo, userRepo)),
	)

	return &testServer{
		db:     db,
		router: router,
		cache:  pageCache,
		tokens: tokenManager,
	}
}

func (s *testServer) createUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, s.db.Create(user).Error)

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()

	group := &models.Group{Title: "Group " + slug, Slug: slug, Description: "test group"}
	require.NoError(t, s.db.Create(group).Error)
	return group
}

func (s *testServer) createPost(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, s.db.Create(post).Error)
	return post
}

// get performs a GET with an optional bearer token.
func (s *testServer) get(t *testing.T, target, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST with an optional bearer token.
func (s *testServer) postForm(t *testing.T, target, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postJSON(t *testing.T, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, s.db.Model(model).Count(&count).Error)
	return count
}

func multipartForm(t *testing.T, fields map[string]string, fileField, filename string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
