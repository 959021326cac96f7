package models

// Group is a topic category a post may belong to.
// The slug is the URL key for the group feed.
type Group struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`

	Posts []Post `gorm:"foreignKey:GroupID" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}
