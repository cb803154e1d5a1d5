package seeders

import (
	"errors"
	"fmt"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcodec"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoCards verilen hesap için örnek kartvizitler oluşturur.
// Aynı isimde kart zaten varsa atlanır; tekrar çalıştırmak güvenlidir.
func SeedDemoCards(db *gorm.DB, ownerEmail string) error {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	if !cardcodec.IsEmail(ownerEmail) {
		return fmt.Errorf("demo kart sahibi geçersiz: %q", ownerEmail)
	}

	cardsToSeed := []models.BusinessCard{
		{
			OwnerEmail: ownerEmail, Name: "Demo Kullanıcı", Company: "vcard.link", Role: "Ürün Yöneticisi",
			Email: ownerEmail, Mobile: "+905551112233", OfficeAddress: "Levent Mah. No 1 İstanbul",
			CompanyWebsite: "https://vcard.link", LinkedinURL: "https://www.linkedin.com/in/demo-user",
			Status: models.CardStatusValid,
		},
		{
			OwnerEmail: ownerEmail, Name: "Demo Kullanıcı (Eski)", Company: "Eski Şirket", Role: "Danışman",
			Email: ownerEmail, Mobile: "+905551112233", OfficeAddress: "Kızılay Ankara",
			CompanyWebsite: "https://example.com",
			Status:         models.CardStatusInvalid,
		},
	}

	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Demo kartvizit seed işlemi başlıyor...")

	for _, card := range cardsToSeed {
		if err := cardcodec.ValidateCard(card.CodecCard()); err != nil {
			configslog.Log.Error("Demo kartvizit geçersiz", zap.String("name", card.Name), zap.Error(err))
			errorOccurred = true
			continue
		}

		var existing models.BusinessCard
		result := db.Where("owner_email = ? AND name = ?", ownerEmail, card.Name).First(&existing)
		if result.Error == nil {
			configslog.SLog.Debugf("Demo kart '%s' zaten mevcut, oluşturma atlanıyor.", card.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Demo kart kontrol edilirken veritabanı hatası", zap.String("name", card.Name), zap.Error(result.Error))
			errorOccurred = true
			continue
		}

		if err := db.Create(&card).Error; err != nil {
			configslog.Log.Error("Demo kart oluşturulamadı", zap.String("name", card.Name), zap.Error(err))
			errorOccurred = true
			continue
		}
		configslog.SLog.Infof("Demo kart '%s' oluşturuldu (ID: %s).", card.Name, card.ID)
		createdCount++
	}

	if errorOccurred {
		return errors.New("demo kartlar seed edilirken en az bir hata oluştu")
	}
	if createdCount == 0 {
		configslog.SLog.Info("Tüm demo kartlar zaten mevcut, yeni ekleme yapılmadı.")
	}
	return nil
}
