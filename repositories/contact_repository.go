package repositories

import (
	"context"
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IContactRepository kişi referansları için arayüz.
type IContactRepository interface {
	FindAllByOwner(ctx context.Context, ownerEmail string) ([]models.Contact, error)
	// CreateIfAbsent kaydı yalnızca (owner, donorCardID) çifti ve ID boştaysa ekler.
	// Çakışmada ErrDuplicate döner; işlem tek ifadede atomiktir.
	CreateIfAbsent(ctx context.Context, contact *models.Contact) error
}

// ContactRepository IContactRepository arayüzünü uygular.
type ContactRepository struct {
	base *BaseRepository[models.Contact]
	db   *gorm.DB
}

// NewContactRepository yeni bir ContactRepository örneği oluşturur.
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{base: NewBaseRepository[models.Contact](db), db: db}
}

func (r *ContactRepository) FindAllByOwner(ctx context.Context, ownerEmail string) ([]models.Contact, error) {
	contacts, err := r.base.FindAll(ctx, "created_at asc", "owner_email = ?", ownerEmail)
	if err != nil {
		configslog.Log.Error("ContactRepository.FindAllByOwner: DB error", zap.String("owner", ownerEmail), zap.Error(err))
	}
	return contacts, err
}

func (r *ContactRepository) CreateIfAbsent(ctx context.Context, contact *models.Contact) error {
	if contact == nil || contact.ID == "" {
		return errors.New("kişi kaydı için deterministik ID zorunludur")
	}
	// ON CONFLICT DO NOTHING: hem birincil anahtar hem de benzersiz indeks çakışmasını kapsar
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(contact)
	if result.Error != nil {
		err := translateError(result.Error)
		if !errors.Is(err, ErrDuplicate) {
			configslog.Log.Error("ContactRepository.CreateIfAbsent: DB error",
				zap.String("owner", contact.OwnerEmail), zap.String("donor_card_id", contact.DonorCardID), zap.Error(result.Error))
		}
		return err
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

var _ IContactRepository = (*ContactRepository)(nil)
