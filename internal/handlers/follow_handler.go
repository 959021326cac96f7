package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatube-app/yatube/internal/middlewares"
	"github.com/yatube-app/yatube/internal/services"
)

type FollowHandler struct {
	followService *services.FollowService
}

func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow subscribes the requester to an author and returns to the
// author's profile.
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")

	err := h.followService.Follow(c.Request.Context(), middlewares.CurrentUserID(c), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			NotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// Unfollow removes the subscription and returns to the profile.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")

	err := h.followService.Unfollow(c.Request.Context(), middlewares.CurrentUserID(c), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			NotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
