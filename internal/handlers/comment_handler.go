package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatube-app/yatube/internal/middlewares"
	"github.com/yatube-app/yatube/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add attaches a comment and sends the commenter back to the post page.
func (h *CommentHandler) Add(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	_, err := h.commentService.Add(c.Request.Context(), id, middlewares.CurrentUserID(c), c.PostForm("text"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			NotFound(c)
		case errors.Is(err, services.ErrTextRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", id))
}
