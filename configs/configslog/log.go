package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış (structured) loglama için kullanılır.
	Log *zap.Logger = zap.NewNop()
	// SLog printf tarzı loglama için kullanılır.
	SLog *zap.SugaredLogger = Log.Sugar()
)

// InitLogger APP_ENV ve LOG_LEVEL değişkenlerine göre global logger'ı kurar.
func InitLogger() {
	var cfg zap.Config
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa uygulama kör çalışmasın
		panic("logger oluşturulamadı: " + err.Error())
	}
	SetLogger(logger)
	SLog.Debugw("Logger başlatıldı", "env", os.Getenv("APP_ENV"), "level", cfg.Level.String())
}

// SetLogger global logger'ı değiştirir (testlerde zaptest logger'ı vermek için).
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları boşaltır.
func SyncLogger() {
	_ = Log.Sync()
}
