package repositories

import (
	"context"

	"vcard.link/models"

	"gorm.io/gorm"
)

// IFeedbackRepository geri bildirim kayıtları.
type IFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	CountByOwner(ctx context.Context, ownerEmail string) (int64, error)
}

type FeedbackRepository struct {
	base *BaseRepository[models.Feedback]
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{base: NewBaseRepository[models.Feedback](db)}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.base.Create(ctx, feedback)
}

func (r *FeedbackRepository) CountByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	return r.base.Count(ctx, "owner_email = ?", ownerEmail)
}

var _ IFeedbackRepository = (*FeedbackRepository)(nil)
