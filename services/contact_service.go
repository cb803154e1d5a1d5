package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcodec"
	"vcard.link/pkg/metrics"
	"vcard.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ContactServiceError kişi ekleme hataları
type ContactServiceError string

func (e ContactServiceError) Error() string { return string(e) }

const (
	ErrContactDuplicate     ContactServiceError = "card is already in your contacts"
	ErrContactSelfReference ContactServiceError = "cannot add your own card as a contact"
	ErrContactOwnerRequired ContactServiceError = "owner email is required"
)

// contactNamespace deterministik kişi ID'leri için UUIDv5 isim alanı.
var contactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vcard.link/contacts"))

// ContactID (owner, donorCardID) çiftinden her zaman aynı ID'yi üretir.
// Aynı kartı iki kez ekleme girişimi store'da aynı anahtara çarpar.
func ContactID(ownerEmail, donorCardID string) string {
	return uuid.NewSHA1(contactNamespace, []byte(ownerEmail+"|"+donorCardID)).String()
}

// ScanResult başarılı taramanın sonucu.
type ScanResult struct {
	Contact *models.Contact
	Payload cardcodec.Payload
}

// IContactService kişi ekleme ve listeleme işlemleri için arayüz.
type IContactService interface {
	AddContact(ctx context.Context, ownerEmail string, payload cardcodec.Payload) (*models.Contact, error)
	Scan(ctx context.Context, ownerEmail, raw string) (*ScanResult, error)
	ListContacts(ctx context.Context, ownerEmail string) ([]models.Contact, error)
	ResolveContacts(ctx context.Context, ownerEmail string) ([]models.ContactCard, error)
	SubscribeContacts(ctx context.Context, ownerEmail string, fn func([]models.ContactCard)) (unsubscribe func(), err error)
}

// ContactServiceOptions servis ayarları.
type ContactServiceOptions struct {
	// ResolveConcurrency kişi kartlarını çözerken aynı anda yapılacak en fazla okuma.
	ResolveConcurrency int
}

// ContactService IContactService arayüzünü uygular.
type ContactService struct {
	repo     repositories.IContactRepository
	cardRepo repositories.IBusinessCardRepository
	gate     *ownerGate
	hub      *Hub[[]models.ContactCard]
	opts     ContactServiceOptions

	notifyMu sync.Mutex
}

// NewContactService yeni bir ContactService örneği oluşturur.
func NewContactService(repo repositories.IContactRepository, cardRepo repositories.IBusinessCardRepository, opts ContactServiceOptions) *ContactService {
	if opts.ResolveConcurrency <= 0 {
		opts.ResolveConcurrency = 8
	}
	return &ContactService{
		repo:     repo,
		cardRepo: cardRepo,
		gate:     newOwnerGate(),
		hub:      NewHub[[]models.ContactCard]("contacts"),
		opts:     opts,
	}
}

// Scan taranan metni çözer ve kişi olarak ekler.
// Çözme hatası store'a hiç gidilmeden döner. Çözme başarılıysa ekleme işlemi
// isteğin iptalinden bağımsız çalışır; tarayıcının kapanması yarım kalmış bir ekleme bırakmaz.
func (s *ContactService) Scan(ctx context.Context, ownerEmail, raw string) (*ScanResult, error) {
	payload, err := cardcodec.Decode(raw)
	if err != nil {
		var ipe *cardcodec.InvalidPayloadError
		if errors.As(err, &ipe) {
			metrics.PayloadDecodeFailures.WithLabelValues(ipe.Reason).Inc()
		}
		configslog.Log.Info("Geçersiz QR içeriği reddedildi", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}

	contact, err := s.AddContact(context.WithoutCancel(ctx), ownerEmail, payload)
	if err != nil {
		return nil, err
	}
	return &ScanResult{Contact: contact, Payload: payload}, nil
}

// AddContact çözülmüş payload'dan kişi referansı oluşturur; aynı kart iki kez eklenmez.
func (s *ContactService) AddContact(ctx context.Context, ownerEmail string, payload cardcodec.Payload) (*models.Contact, error) {
	start := time.Now()
	defer func() { metrics.IngestionLatency.Observe(time.Since(start).Seconds()) }()

	ownerEmail = models.NormalizeEmail(ownerEmail)
	donorEmail := models.NormalizeEmail(payload.OwnerEmail)
	donorCardID := payload.ID

	if ownerEmail == "" {
		return nil, ErrContactOwnerRequired
	}
	// Payload dışarıdan gelir; kolonlara sığmayan ya da e-posta olmayan değerler store'a gitmez
	if donorEmail == "" || donorCardID == "" ||
		len(donorEmail) > cardcodec.MaxEmailLen || len(donorCardID) > cardcodec.MaxCardIDLen ||
		!cardcodec.IsEmail(donorEmail) {
		metrics.PayloadDecodeFailures.WithLabelValues(cardcodec.ReasonMalformed).Inc()
		return nil, &cardcodec.InvalidPayloadError{Reason: cardcodec.ReasonMalformed}
	}

	// 1. Kendi kartını ekleyemez
	if donorEmail == ownerEmail {
		metrics.IngestionResults.WithLabelValues(metrics.ResultSelfReference).Inc()
		return nil, ErrContactSelfReference
	}

	// 2. Aynı sahip için kontrol+yazma sırası tek seferde bir çağrı
	unlock := s.gate.Lock(ownerEmail)
	defer unlock()

	// 3. Mevcut kişiler arasında aynı kart var mı?
	existing, err := s.repo.FindAllByOwner(ctx, ownerEmail)
	if err != nil {
		metrics.IngestionResults.WithLabelValues(metrics.ResultStoreError).Inc()
		return nil, err
	}
	for _, c := range existing {
		if c.DonorCardID == donorCardID {
			metrics.IngestionResults.WithLabelValues(metrics.ResultDuplicate).Inc()
			configslog.Log.Info("Kart zaten kişilerde", zap.String("owner", ownerEmail), zap.String("donor_card_id", donorCardID))
			return nil, ErrContactDuplicate
		}
	}

	// 4. Koşullu oluşturma: başka bir süreç araya girdiyse store çakışma bildirir
	contact := &models.Contact{
		ID:          ContactID(ownerEmail, donorCardID),
		OwnerEmail:  ownerEmail,
		DonorEmail:  donorEmail,
		DonorCardID: donorCardID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateIfAbsent(ctx, contact); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			metrics.IngestionResults.WithLabelValues(metrics.ResultDuplicate).Inc()
			configslog.Log.Warn("Kişi ekleme store seviyesinde çakıştı", zap.String("owner", ownerEmail), zap.String("donor_card_id", donorCardID))
			return nil, ErrContactDuplicate
		}
		metrics.IngestionResults.WithLabelValues(metrics.ResultStoreError).Inc()
		return nil, err
	}

	metrics.IngestionResults.WithLabelValues(metrics.ResultCreated).Inc()
	configslog.SLog.Infof("Kişi eklendi: Owner %s, Donor %s, Card %s", ownerEmail, donorEmail, donorCardID)
	s.notify(ownerEmail)
	return contact, nil
}

// ListContacts sahibin ham kişi referanslarını döndürür.
func (s *ContactService) ListContacts(ctx context.Context, ownerEmail string) ([]models.Contact, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrContactOwnerRequired
	}
	return s.repo.FindAllByOwner(ctx, ownerEmail)
}

// ResolveContacts her referansın kartını paralel okur.
// Kartı artık bulunmayan referanslar listeden çıkarılır; diğer store hataları döner.
func (s *ContactService) ResolveContacts(ctx context.Context, ownerEmail string) ([]models.ContactCard, error) {
	contacts, err := s.ListContacts(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	resolved := make([]*models.ContactCard, len(contacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ResolveConcurrency)

	for i, contact := range contacts {
		g.Go(func() error {
			card, err := s.cardRepo.FindByOwnerAndID(gctx, contact.DonorEmail, contact.DonorCardID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					configslog.Log.Debug("Kişinin kartı bulunamadı, atlanıyor",
						zap.String("donor", contact.DonorEmail), zap.String("card_id", contact.DonorCardID))
					return nil
				}
				return err
			}
			resolved[i] = &models.ContactCard{Contact: contact, Card: *card}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		configslog.Log.Error("Kişi kartları çözülemedi", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}

	result := make([]models.ContactCard, 0, len(resolved))
	for _, cc := range resolved {
		if cc != nil {
			result = append(result, *cc)
		}
	}
	return result, nil
}

func (s *ContactService) notify(ownerEmail string) {
	if !s.hub.HasSubscribers(ownerEmail) {
		return
	}
	go func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()

		snapshot, err := s.ResolveContacts(context.Background(), ownerEmail)
		if err != nil {
			configslog.Log.Warn("Kişi snapshot'ı yüklenemedi, abonelere gönderilmedi", zap.String("owner", ownerEmail), zap.Error(err))
			return
		}
		s.hub.Publish(ownerEmail, snapshot)
	}()
}

// SubscribeContacts ilk snapshot'ı hemen, sonra her yeni kişide günceli gönderir.
func (s *ContactService) SubscribeContacts(ctx context.Context, ownerEmail string, fn func([]models.ContactCard)) (func(), error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrContactOwnerRequired
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	snapshot, err := s.ResolveContacts(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	unsubscribe := s.hub.Subscribe(ownerEmail, fn)
	fn(snapshot)
	return unsubscribe, nil
}

var _ IContactService = (*ContactService)(nil)
