package models

import "time"

// Follow is a directed edge: User receives Author's posts in their feed.
// The pair is unique so repeated follows collapse into one row.
type Follow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   uint `gorm:"not null;index:idx_follow_user;uniqueIndex:idx_follow_pair" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`

	CreatedAt time.Time `json:"created_at"`

	User   *User `gorm:"foreignKey:UserID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
