package devserver

import (
	"context"
	"fmt"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens the sqlite database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Content{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// ContentPatch holds the fields of a partial update; nil fields are left alone
type ContentPatch struct {
	Title *string
	Text  *string
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// List returns every item in id order
func (r *Repo) List(ctx context.Context) ([]Content, error) {
	var items []Content
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) Create(ctx context.Context, c *Content) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Get returns one item. A missing item yields gorm.ErrRecordNotFound.
func (r *Repo) Get(ctx context.Context, id int64) (*Content, error) {
	var c Content
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies patch to the item and returns it. A missing item yields gorm.ErrRecordNotFound.
func (r *Repo) Update(ctx context.Context, id int64, patch ContentPatch) (*Content, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Text != nil {
		fields["text"] = *patch.Text
	}

	var out *Content
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &Repo{db: tx}
		if _, err := txRepo.Get(ctx, id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&Content{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		c, err := txRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the item. A missing item yields gorm.ErrRecordNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Content{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
