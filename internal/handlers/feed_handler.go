package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yatube-app/yatube/internal/middlewares"
	"github.com/yatube-app/yatube/internal/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func pageNumber(c *gin.Context) int {
	number, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return number
}

// Index is the homepage feed. The page cache middleware sits in front
// of it, so the body here is rendered at most once per cache window.
func (h *FeedHandler) Index(c *gin.Context) {
	feed, err := h.feedService.HomePage(c.Request.Context(), pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) GroupPosts(c *gin.Context) {
	feed, err := h.feedService.GroupPage(c.Request.Context(), c.Param("slug"), pageNumber(c))
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			NotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) Profile(c *gin.Context) {
	viewerID := middlewares.CurrentUserID(c)
	feed, err := h.feedService.ProfilePage(c.Request.Context(), c.Param("username"), viewerID, pageNumber(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			NotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) FollowIndex(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	feed, err := h.feedService.FollowPage(c.Request.Context(), userID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}
