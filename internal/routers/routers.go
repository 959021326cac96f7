package routers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yatube-app/yatube/internal/cache"
	"github.com/yatube-app/yatube/internal/handlers"
	"github.com/yatube-app/yatube/internal/middlewares"
	"github.com/yatube-app/yatube/pkg/jwt"
)

// SetupRouter wires every route of the blog. The homepage is the only
// route behind the page cache.
func SetupRouter(
	logger *zap.Logger,
	tokenManager *jwt.TokenManager,
	pageCache *cache.PageCache,
	mediaRoot string,
	authHandler *handlers.AuthHandler,
	feedHandler *handlers.FeedHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	followHandler *handlers.FollowHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Recovery(logger))
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.Default())
	r.Use(middlewares.Authenticate(tokenManager))

	// Identity
	auth := r.Group("/auth")
	{
		auth.POST("/signup/", authHandler.Signup)
		auth.POST("/login/", authHandler.Login)
		auth.GET("/login/", authHandler.LoginPage)
	}

	// Public feeds and content
	r.GET("/", pageCache.Middleware(), feedHandler.Index)
	r.GET("/group/:slug/", feedHandler.GroupPosts)
	r.GET("/profile/:username/", feedHandler.Profile)
	r.GET("/posts/:id/", postHandler.Detail)

	// Uploaded post images
	r.Static("/media", mediaRoot)

	// Authenticated writes and the personalized feed
	authorized := r.Group("/")
	authorized.Use(middlewares.LoginRequired())
	{
		authorized.GET("/create/", postHandler.CreateForm)
		authorized.POST("/create/", postHandler.Create)
		authorized.GET("/posts/:id/edit/", postHandler.EditForm)
		authorized.POST("/posts/:id/edit/", postHandler.Edit)
		authorized.POST("/posts/:id/comment/", commentHandler.Add)
		authorized.GET("/follow/", feedHandler.FollowIndex)
		authorized.GET("/profile/:username/follow/", followHandler.Follow)
		authorized.GET("/profile/:username/unfollow/", followHandler.Unfollow)
	}

	// Custom not-found page for unknown routes
	r.NoRoute(handlers.NotFound)

	return r
}
