// repositories/card_repository.go
package repositories

import (
	"context"
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IBusinessCardRepository kartvizit veritabanı işlemleri için arayüz.
// Tüm sorgular sahip e-postası ile isim alanına (namespace) ayrılmıştır.
type IBusinessCardRepository interface {
	Create(ctx context.Context, card *models.BusinessCard) error
	FindByOwnerAndID(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error)
	FindAllByOwner(ctx context.Context, ownerEmail string) ([]models.BusinessCard, error)
	FindAllByOwnerPaginated(ctx context.Context, ownerEmail string, params queryparams.ListParams) ([]models.BusinessCard, int64, error)
	Update(ctx context.Context, card *models.BusinessCard) error
	// UpdateStatus durum from ise to yapar; değişiklik olduysa true döner.
	UpdateStatus(ctx context.Context, ownerEmail, id string, from, to models.CardStatus) (bool, error)
}

// BusinessCardRepository IBusinessCardRepository arayüzünü uygular.
type BusinessCardRepository struct {
	base *BaseRepository[models.BusinessCard]
	db   *gorm.DB
}

// NewBusinessCardRepository yeni bir BusinessCardRepository örneği oluşturur.
func NewBusinessCardRepository(db *gorm.DB) *BusinessCardRepository {
	return &BusinessCardRepository{base: NewBaseRepository[models.BusinessCard](db), db: db}
}

// Kartvizit listelerinde izin verilen sıralama sütunları
var cardSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
	"company":    "company",
}

func (r *BusinessCardRepository) Create(ctx context.Context, card *models.BusinessCard) error {
	if card == nil {
		return errors.New("oluşturulacak kartvizit nil olamaz")
	}
	return r.base.Create(ctx, card)
}

// FindByOwnerAndID sahibine ait kartı ID ile bulur.
func (r *BusinessCardRepository) FindByOwnerAndID(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	card, err := r.base.FindOne(ctx, "owner_email = ? AND id = ?", ownerEmail, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		configslog.Log.Error("BusinessCardRepository.FindByOwnerAndID: DB error",
			zap.String("owner", ownerEmail), zap.String("id", id), zap.Error(err))
	}
	return card, err
}

// FindAllByOwner sahibin tüm kartlarını (her iki durumda) döndürür.
func (r *BusinessCardRepository) FindAllByOwner(ctx context.Context, ownerEmail string) ([]models.BusinessCard, error) {
	return r.base.FindAll(ctx, "created_at asc", "owner_email = ?", ownerEmail)
}

// FindAllByOwnerPaginated kullanıcının kartlarını durum filtresi ve sayfalama ile listeler.
func (r *BusinessCardRepository) FindAllByOwnerPaginated(ctx context.Context, ownerEmail string, params queryparams.ListParams) ([]models.BusinessCard, int64, error) {
	params.Validate()
	results := make([]models.BusinessCard, 0)
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.BusinessCard{}).Where("owner_email = ?", ownerEmail)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BusinessCardRepository.FindAllByOwnerPaginated: count error", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, 0, translateError(err)
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	orderColumn, ok := cardSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	err := query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	if err != nil {
		configslog.Log.Error("BusinessCardRepository.FindAllByOwnerPaginated: DB error", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, 0, translateError(err)
	}
	return results, totalCount, nil
}

// Update kartın düzenlenebilir alanlarını günceller. Sahip ve durum değişmez.
func (r *BusinessCardRepository) Update(ctx context.Context, card *models.BusinessCard) error {
	if card == nil || card.ID == "" {
		return errors.New("güncellenecek kartvizit geçersiz")
	}
	result := r.db.WithContext(ctx).Model(&models.BusinessCard{}).
		Where("owner_email = ? AND id = ?", card.OwnerEmail, card.ID).
		Select("name", "company", "role", "email", "mobile", "office_address", "company_website",
			"whatsapp", "profile_url", "linkedin_url", "twitter_url", "facebook_url", "instagram_url", "updated_at").
		Updates(card)
	if result.Error != nil {
		configslog.Log.Error("BusinessCardRepository.Update: DB error", zap.String("id", card.ID), zap.Error(result.Error))
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus tek satırlık koşullu güncelleme; kart zaten hedef durumdaysa yazma olmaz.
func (r *BusinessCardRepository) UpdateStatus(ctx context.Context, ownerEmail, id string, from, to models.CardStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.BusinessCard{}).
		Where("owner_email = ? AND id = ? AND status = ?", ownerEmail, id, from).
		Update("status", to)
	if result.Error != nil {
		configslog.Log.Error("BusinessCardRepository.UpdateStatus: DB error",
			zap.String("id", id), zap.String("to", string(to)), zap.Error(result.Error))
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Arayüz uyumluluğu kontrolü
var _ IBusinessCardRepository = (*BusinessCardRepository)(nil)
