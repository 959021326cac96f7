package models

import "time"

// Post is the content unit of the blog. Group and Image are optional,
// the author is required.
type Post struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index:idx_post_author" json:"author_id"`
	GroupID  *uint  `gorm:"index:idx_post_group" json:"group_id,omitempty"`
	Image    string `json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Group    *Group    `gorm:"foreignKey:GroupID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// Preview returns the first 15 runes of the text, the short form shown
// in admin-style listings.
func (p Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) <= 15 {
		return p.Text
	}
	return string(runes[:15])
}

func (p Post) String() string {
	return p.Preview()
}
