package services

import (
	"time"

	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/pagination"
)

// PostView is the owned snapshot of a post handed to handlers: foreign
// keys are resolved eagerly, nothing loads lazily after this point.
type PostView struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Group     string    `json:"group,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// FeedPage is one page of an ordered post feed.
type FeedPage struct {
	Posts []PostView      `json:"posts"`
	Page  pagination.Page `json:"page"`
}

func toPostView(post *models.Post) PostView {
	view := PostView{
		ID:        post.ID,
		Text:      post.Text,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		view.Author = post.Author.Username
	}
	if post.Group != nil {
		view.Group = post.Group.Slug
	}
	return view
}

func toPostViews(posts []models.Post) []PostView {
	views := make([]PostView, len(posts))
	for i := range posts {
		views[i] = toPostView(&posts[i])
	}
	return views
}

func toCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{
			ID:        c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if c.Author != nil {
			views[i].Author = c.Author.Username
		}
	}
	return views
}

func toGroupView(group *models.Group) GroupView {
	return GroupView{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}
