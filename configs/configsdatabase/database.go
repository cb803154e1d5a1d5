package configsdatabase

import (
	"fmt"
	"time"

	"vcard.link/configs"
	"vcard.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// DSN ortam değişkenlerinden PostgreSQL bağlantı cümlesini üretir.
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_USER", "postgres"),
		configs.GetEnv("DB_PASSWORD", ""),
		configs.GetEnv("DB_NAME", "vcard"),
		configs.GetEnv("DB_SSLMODE", "disable"),
		configs.GetEnv("DB_TIMEZONE", "UTC"),
	)
}

// InitDB veritabanı bağlantısını açar ve havuz ayarlarını yapar.
// Bağlantı kurulamazsa uygulama durdurulur.
func InitDB() {
	configs.LoadEnv()

	logLevel := logger.Warn
	if configs.GetEnv("APP_ENV", "development") != "production" {
		logLevel = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true, // unique ihlali gorm.ErrDuplicatedKey olarak döner
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		configslog.Log.Fatal("Veritabanı ping başarısız", zap.Error(err))
	}

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu: %s", configs.GetEnv("DB_NAME", "vcard"))
}

// GetDB aktif bağlantıyı döndürür. InitDB çağrılmadan kullanılırsa panic olur.
func GetDB() *gorm.DB {
	if db == nil {
		panic("veritabanı başlatılmadı, önce InitDB çağrılmalı")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("sql.DB alınamadı, bağlantı kapatılamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılırken hata", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı")
}
