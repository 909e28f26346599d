// Package store is the persistence gateway: a thin CRUD facade over
// the videos table.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelsmaxx/reelview/pkg/reelview/models"
)

// ErrNotFound is returned by UpdateFields and Delete when no row
// matched the given id.
var ErrNotFound = errors.New("video not found")

// Order controls retrieval ordering by creation time.
type Order string

const (
	OrderOldestFirst Order = "created_at ASC"
	OrderNewestFirst Order = "created_at DESC"
)

// Filter narrows a List call. Zero values mean "no constraint".
// DateKey filters by exact group match; Status by equality, or by
// inequality when StatusExclude is set.
type Filter struct {
	DateKey       string
	Status        string
	StatusExclude bool
}

// Page is an offset+limit window. Limit <= 0 means no limit.
type Page struct {
	Offset int
	Limit  int
}

// Store is the gateway contract. All four operations return errors;
// callers that want the read-failure-as-empty behavior handle it
// themselves.
type Store interface {
	List(ctx context.Context, f Filter, order Order, page Page) ([]models.Video, error)
	Create(ctx context.Context, v *models.Video) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// GormStore implements Store against a gorm handle.
type GormStore struct {
	db *gorm.DB
}

// New creates a gateway over the given database handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context, f Filter, order Order, page Page) ([]models.Video, error) {
	query := s.db.WithContext(ctx).Model(&models.Video{})

	if f.DateKey != "" {
		query = query.Where("date_key = ?", f.DateKey)
	}
	if f.Status != "" {
		if f.StatusExclude {
			query = query.Where("status <> ?", f.Status)
		} else {
			query = query.Where("status = ?", f.Status)
		}
	}
	if order == "" {
		order = OrderOldestFirst
	}
	query = query.Order(string(order))

	if page.Limit > 0 {
		query = query.Offset(page.Offset).Limit(page.Limit)
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (s *GormStore) Create(ctx context.Context, v *models.Video) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create video %s: %w", v.ID, err)
	}
	return nil
}

// UpdateFields writes only the supplied columns.
func (s *GormStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update video %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update video %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Video{})
	if res.Error != nil {
		return fmt.Errorf("delete video %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete video %s: %w", id, ErrNotFound)
	}
	return nil
}
