package database

import (
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/database/migrations"
	"vcard.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options Initialize'ın hangi adımları çalıştıracağını belirler.
type Options struct {
	Migrate bool
	Seed    bool
	// SeedOwner demo kartların sahibi. Boşsa seed adımı atlanır.
	SeedOwner string
}

// Initialize migrasyon ve seed adımlarını tek transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tüm değişiklikler geri alınır.
func Initialize(db *gorm.DB, opts Options) (err error) {
	if !opts.Migrate && !opts.Seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Error("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Error("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
			err = errors.New("veritabanı başlatma sırasında panic")
			return
		}
		if err != nil {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.")
			if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if opts.Migrate {
		if err = RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			return err
		}
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if opts.Seed {
		if err = CheckAndRunSeeders(tx, opts.SeedOwner); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			return err
		}
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	if err = tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"BusinessCard", migrations.MigrateBusinessCardsTable},
		{"Contact", migrations.MigrateContactsTable},
		{"Feedback", migrations.MigrateFeedbacksTable},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migrasyon adımı başarısız oldu", zap.String("step", step.name), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB, seedOwner string) error {
	if seedOwner == "" {
		configslog.SLog.Info("SEED_DEMO_OWNER belirtilmedi, demo kartlar atlanıyor.")
		return nil
	}

	configslog.SLog.Info(" -> Demo kart seeder çalıştırılıyor...")
	if err := seeders.SeedDemoCards(db, seedOwner); err != nil {
		configslog.Log.Error("Demo kartlar seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
