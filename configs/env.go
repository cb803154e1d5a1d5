package configs

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"vcard.link/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var loadEnvOnce sync.Once

// LoadEnv proje kökündeki .env dosyasını (varsa) bir kez yükler.
// Ortamda zaten tanımlı değişkenler ezilmez.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				configslog.SLog.Debug(".env dosyası bulunamadı, sadece ortam değişkenleri kullanılacak")
				return
			}
			configslog.Log.Warn(".env dosyası okunamadı", zap.Error(err))
		}
	})
}

// GetEnv değişkeni döndürür, boşsa varsayılanı kullanır.
func GetEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return defaultValue
}

// GetEnvInt tamsayı değişkeni döndürür. Parse edilemezse varsayılan kullanılır.
func GetEnvInt(key string, defaultValue int) int {
	raw := GetEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz tamsayı ortam değişkeni, varsayılan kullanılıyor",
			zap.String("key", key), zap.String("value", raw), zap.Int("default", defaultValue))
		return defaultValue
	}
	return v
}
