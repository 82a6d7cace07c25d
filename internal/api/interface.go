package api

import (
	"context"

	"github.com/diogo/aicms/internal/models"
)

// ClientInterface is the set of calls the views make against the origin
type ClientInterface interface {
	SendChat(ctx context.Context, text string) (string, error)
	ListContent(ctx context.Context) ([]models.ContentCard, error)
	CreateContent(ctx context.Context, in models.ContentInput) (models.ContentCard, error)
	UpdateContent(ctx context.Context, id int64, in models.ContentInput) (models.ContentCard, error)
	DeleteContent(ctx context.Context, id int64) error
	Close()
	IsClosed() bool
}

var _ ClientInterface = (*Client)(nil)
