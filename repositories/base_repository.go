package repositories

import (
	"context"

	"gorm.io/gorm"
)

// IBaseRepository tablolar için ortak işlemler.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindOne(ctx context.Context, query string, args ...any) (*T, error)
	FindAll(ctx context.Context, order string, query string, args ...any) ([]T, error)
	Count(ctx context.Context, query string, args ...any) (int64, error)
}

// BaseRepository IBaseRepository'nin gorm ile generik uygulaması.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository yeni bir BaseRepository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.conn(ctx).Create(entity).Error)
}

func (r *BaseRepository[T]) FindOne(ctx context.Context, query string, args ...any) (*T, error) {
	var entity T
	if err := r.conn(ctx).Where(query, args...).First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) FindAll(ctx context.Context, order string, query string, args ...any) ([]T, error) {
	results := make([]T, 0)
	q := r.conn(ctx).Where(query, args...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	var model T
	if err := r.conn(ctx).Model(&model).Where(query, args...).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
