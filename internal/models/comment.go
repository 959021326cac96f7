package models

import "time"

// Comment is attached to exactly one post.
type Comment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PostID   uint   `gorm:"not null;index:idx_comment_post" json:"post_id"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Text     string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`

	Post   *Post `gorm:"foreignKey:PostID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
