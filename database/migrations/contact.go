package migrations

import (
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateContactsTable (owner_email, donor_card_id) benzersiz indeksini de oluşturur.
// Kişi ekleme tekilliği bu indekse dayanır.
func MigrateContactsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating contacts table...")
	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		configslog.Log.Error("Failed to migrate contacts table", zap.Error(err))
		return err
	}
	if !db.Migrator().HasIndex(&models.Contact{}, "idx_contact_owner_card") {
		configslog.Log.Error("contacts tablosunda benzersiz indeks eksik", zap.String("index", "idx_contact_owner_card"))
		return gorm.ErrInvalidField
	}
	configslog.SLog.Info("Contacts table migrated successfully")
	return nil
}
