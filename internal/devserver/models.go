// Package devserver is a local stand-in for the AI CMS origin. It serves the
// chat and content endpoints so the client can be exercised without network.
package devserver

import (
	"time"

	"github.com/diogo/aicms/internal/models"
)

// Content is a stored content item
type Content struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Content) TableName() string { return "contents" }

// Card returns the wire shape of the item
func (c Content) Card() models.ContentCard {
	return models.ContentCard{ID: c.ID, Title: c.Title, Text: c.Text}
}
