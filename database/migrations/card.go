package migrations

import (
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateBusinessCardsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating business_cards table...")
	if err := db.AutoMigrate(&models.BusinessCard{}); err != nil {
		configslog.Log.Error("Failed to migrate business_cards table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Business_cards table migrated successfully")
	return nil
}
