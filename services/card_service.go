// services/card_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcodec"
	"vcard.link/pkg/metrics"
	"vcard.link/pkg/qrimage"
	"vcard.link/pkg/queryparams"
	"vcard.link/repositories"

	"go.uber.org/zap"
)

// BusinessCardServiceError özel servis hataları
type BusinessCardServiceError string

func (e BusinessCardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound      BusinessCardServiceError = "card not found"
	ErrCardInvalidInput  BusinessCardServiceError = "invalid card data"
	ErrCardArchived      BusinessCardServiceError = "card is archived"
	ErrCardOwnerRequired BusinessCardServiceError = "owner email is required"
)

// IBusinessCardService kartvizit işlemleri için arayüz.
type IBusinessCardService interface {
	CreateCard(ctx context.Context, ownerEmail string, input models.BusinessCardInput) (*models.BusinessCard, error)
	UpdateCard(ctx context.Context, ownerEmail, id string, input models.BusinessCardInput) (*models.BusinessCard, error)
	GetCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error)
	GetPublicCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) // Sadece aktif kartlar
	ListCards(ctx context.Context, ownerEmail string, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ArchiveCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error)
	RestoreCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error)
	SharePayload(ctx context.Context, ownerEmail, id string) (string, error)
	ShareQR(ctx context.Context, ownerEmail, id string, size int) ([]byte, error)
	SubscribeCards(ctx context.Context, ownerEmail string, fn func([]models.BusinessCard)) (unsubscribe func(), err error)
}

// BusinessCardService IBusinessCardService arayüzünü uygular.
type BusinessCardService struct {
	repo repositories.IBusinessCardRepository
	hub  *Hub[[]models.BusinessCard]

	// notifyMu snapshot yükleme ve yayınlamayı sıralar; son yayın her zaman son durumu taşır.
	notifyMu sync.Mutex
}

// NewBusinessCardService yeni bir BusinessCardService örneği oluşturur.
func NewBusinessCardService(repo repositories.IBusinessCardRepository) *BusinessCardService {
	return &BusinessCardService{
		repo: repo,
		hub:  NewHub[[]models.BusinessCard]("cards"),
	}
}

// --- Yardımcı Metodlar ---

// ValidateCardInput form verisini trim edip doğrular.
func ValidateCardInput(input models.BusinessCardInput) error {
	var card models.BusinessCard
	input.Apply(&card)
	if err := cardcodec.ValidateCard(card.CodecCard()); err != nil {
		return fmt.Errorf("%w: %w", ErrCardInvalidInput, err)
	}
	return nil
}

func (s *BusinessCardService) findCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	if ownerEmail == "" {
		return nil, ErrCardOwnerRequired
	}
	if id == "" {
		return nil, ErrCardNotFound
	}
	card, err := s.repo.FindByOwnerAndID(ctx, ownerEmail, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// notify abonelere yeni snapshot'ı isteği başlatan context'ten bağımsız gönderir.
func (s *BusinessCardService) notify(ownerEmail string) {
	if !s.hub.HasSubscribers(ownerEmail) {
		return
	}
	go func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()

		cards, err := s.repo.FindAllByOwner(context.Background(), ownerEmail)
		if err != nil {
			configslog.Log.Warn("Kart snapshot'ı yüklenemedi, abonelere gönderilmedi", zap.String("owner", ownerEmail), zap.Error(err))
			return
		}
		s.hub.Publish(ownerEmail, cards)
	}()
}

// --- Servis Metodları ---

// CreateCard yeni bir kartvizit oluşturur. Başlangıç durumu her zaman valid'dir.
func (s *BusinessCardService) CreateCard(ctx context.Context, ownerEmail string, input models.BusinessCardInput) (*models.BusinessCard, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrCardOwnerRequired
	}
	if err := ValidateCardInput(input); err != nil {
		return nil, err
	}

	card := models.BusinessCard{OwnerEmail: ownerEmail, Status: models.CardStatusValid}
	input.Apply(&card)

	if err := s.repo.Create(ctx, &card); err != nil {
		configslog.Log.Error("Kartvizit oluşturulamadı", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: ID %s, Owner: %s", card.ID, ownerEmail)
	s.notify(ownerEmail)
	return &card, nil
}

// UpdateCard kartın alanlarını günceller; durum değişmez.
func (s *BusinessCardService) UpdateCard(ctx context.Context, ownerEmail, id string, input models.BusinessCardInput) (*models.BusinessCard, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if err := ValidateCardInput(input); err != nil {
		return nil, err
	}

	card, err := s.findCard(ctx, ownerEmail, id)
	if err != nil {
		return nil, err
	}
	input.Apply(card)

	if err := s.repo.Update(ctx, card); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("Kartvizit güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Kartvizit güncellendi: ID %s", id)
	s.notify(ownerEmail)
	return card, nil
}

func (s *BusinessCardService) GetCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	return s.findCard(ctx, models.NormalizeEmail(ownerEmail), id)
}

// GetPublicCard public sayfa için kartı döndürür; arşivli kartlar bulunamadı sayılır.
func (s *BusinessCardService) GetPublicCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	card, err := s.findCard(ctx, models.NormalizeEmail(ownerEmail), id)
	if err != nil {
		return nil, err
	}
	if card.Status != models.CardStatusValid {
		configslog.Log.Info("Arşivli kartvizite public erişim denemesi", zap.String("id", id))
		return nil, ErrCardNotFound
	}
	return card, nil
}

// ListCards kullanıcının kartlarını sayfalayarak getirir.
func (s *BusinessCardService) ListCards(ctx context.Context, ownerEmail string, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrCardOwnerRequired
	}
	params.Validate()
	if params.Status != "" && !models.CardStatus(params.Status).IsKnown() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrCardInvalidInput, params.Status)
	}

	cards, totalCount, err := s.repo.FindAllByOwnerPaginated(ctx, ownerEmail, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizitleri alınırken hata", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: cards,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// ArchiveCard valid -> invalid. Kart zaten arşivliyse işlem yapılmaz.
func (s *BusinessCardService) ArchiveCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	return s.transition(ctx, ownerEmail, id, "archive", models.CardStatusValid, models.CardStatusInvalid)
}

// RestoreCard invalid -> valid. Kart zaten aktifse işlem yapılmaz.
func (s *BusinessCardService) RestoreCard(ctx context.Context, ownerEmail, id string) (*models.BusinessCard, error) {
	return s.transition(ctx, ownerEmail, id, "restore", models.CardStatusInvalid, models.CardStatusValid)
}

func (s *BusinessCardService) transition(ctx context.Context, ownerEmail, id, name string, from, to models.CardStatus) (*models.BusinessCard, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrCardOwnerRequired
	}

	changed, err := s.repo.UpdateStatus(ctx, ownerEmail, id, from, to)
	if err != nil {
		metrics.CardTransitions.WithLabelValues(name, "error").Inc()
		return nil, err
	}

	card, err := s.findCard(ctx, ownerEmail, id)
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.CardTransitions.WithLabelValues(name, "changed").Inc()
		configslog.SLog.Infof("Kartvizit durumu değişti: ID %s, %s -> %s", id, from, to)
		s.notify(ownerEmail)
	} else {
		metrics.CardTransitions.WithLabelValues(name, "noop").Inc()
		configslog.SLog.Debugf("Kartvizit zaten %s durumunda: ID %s", card.Status, id)
	}
	return card, nil
}

// SharePayload aktif kartın QR içeriğini üretir.
func (s *BusinessCardService) SharePayload(ctx context.Context, ownerEmail, id string) (string, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	card, err := s.findCard(ctx, ownerEmail, id)
	if err != nil {
		return "", err
	}
	if card.Status != models.CardStatusValid {
		return "", ErrCardArchived
	}
	metrics.PayloadsEncoded.Inc()
	return cardcodec.Encode(card.CodecCard(), ownerEmail), nil
}

// ShareQR paylaşım içeriğini PNG olarak döndürür.
func (s *BusinessCardService) ShareQR(ctx context.Context, ownerEmail, id string, size int) ([]byte, error) {
	payload, err := s.SharePayload(ctx, ownerEmail, id)
	if err != nil {
		return nil, err
	}
	png, err := qrimage.PNG(payload, size)
	if err != nil {
		configslog.Log.Error("QR görseli üretilemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return png, nil
}

// SubscribeCards ilk snapshot'ı hemen gönderir, sonra her değişiklikte yenisini.
func (s *BusinessCardService) SubscribeCards(ctx context.Context, ownerEmail string, fn func([]models.BusinessCard)) (func(), error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrCardOwnerRequired
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	cards, err := s.repo.FindAllByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	unsubscribe := s.hub.Subscribe(ownerEmail, fn)
	fn(cards)
	return unsubscribe, nil
}

var _ IBusinessCardService = (*BusinessCardService)(nil)
