package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yatube-app/yatube/internal/middlewares"
	"github.com/yatube-app/yatube/internal/services"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c)
		return 0, false
	}
	return uint(id), true
}

// groupIDField reads the optional group form field.
func groupIDField(c *gin.Context) (*uint, error) {
	raw := c.PostForm("group")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q", raw)
	}
	groupID := uint(id)
	return &groupID, nil
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	detail, err := h.postService.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			NotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateForm serves the creation form descriptor.
func (h *PostHandler) CreateForm(c *gin.Context) {
	form, err := h.postService.CreateForm(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, form)
}

// Create accepts the submitted post form: text, optional group id and
// optional image file. On success the author lands on their profile.
func (h *PostHandler) Create(c *gin.Context) {
	groupID, err := groupIDField(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &services.CreatePostRequest{
		Text:    c.PostForm("text"),
		GroupID: groupID,
	}
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	_, err = h.postService.Create(c.Request.Context(), middlewares.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, services.ErrTextRequired) || errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+middlewares.CurrentUsername(c)+"/")
}

// EditForm serves the edit form prefilled with the post's values.
// Only the author gets it.
func (h *PostHandler) EditForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	form, err := h.postService.EditForm(c.Request.Context(), id, middlewares.CurrentUserID(c))
	if err != nil {
		h.editError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Edit accepts the submitted edit form. On success the author lands on
// the post detail page.
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	groupID, err := groupIDField(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &services.EditPostRequest{
		Text:    c.PostForm("text"),
		GroupID: groupID,
	}

	post, err := h.postService.Edit(c.Request.Context(), id, middlewares.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, services.ErrTextRequired) || errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.editError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

func (h *PostHandler) editError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		NotFound(c)
	case errors.Is(err, services.ErrNotPostAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author can edit this post"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
