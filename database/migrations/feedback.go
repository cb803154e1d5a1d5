package migrations

import (
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFeedbacksTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating feedbacks table...")
	if err := db.AutoMigrate(&models.Feedback{}); err != nil {
		configslog.Log.Error("Failed to migrate feedbacks table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Feedbacks table migrated successfully")
	return nil
}
