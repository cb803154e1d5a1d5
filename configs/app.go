package configs

import "strings"

// AppConfig uygulamanın çalışma zamanı ayarlarını tutar.
type AppConfig struct {
	Env  string
	Port string

	// Kimlik bilgisi üst katmandaki gateway tarafından header ile iletilir.
	IdentityHeader    string
	IdentityTokenHash string

	ScanRatePerMinute         int
	ScanBurst                 int
	ContactResolveConcurrency int
	QRDefaultSize             int

	SeedDemoOwner string
}

// LoadAppConfig ortam değişkenlerinden AppConfig oluşturur.
func LoadAppConfig() AppConfig {
	LoadEnv()
	cfg := AppConfig{
		Env:                       GetEnv("APP_ENV", "development"),
		Port:                      GetEnv("APP_PORT", "3000"),
		IdentityHeader:            GetEnv("IDENTITY_HEADER", "X-Owner-Email"),
		IdentityTokenHash:         GetEnv("IDENTITY_TOKEN_HASH", ""),
		ScanRatePerMinute:         GetEnvInt("SCAN_RATE_PER_MINUTE", 30),
		ScanBurst:                 GetEnvInt("SCAN_BURST", 5),
		ContactResolveConcurrency: GetEnvInt("CONTACT_RESOLVE_CONCURRENCY", 8),
		QRDefaultSize:             GetEnvInt("QR_DEFAULT_SIZE", 256),
		SeedDemoOwner:             strings.ToLower(GetEnv("SEED_DEMO_OWNER", "")),
	}
	if cfg.ScanRatePerMinute <= 0 {
		cfg.ScanRatePerMinute = 30
	}
	if cfg.ScanBurst <= 0 {
		cfg.ScanBurst = 1
	}
	if cfg.ContactResolveConcurrency <= 0 {
		cfg.ContactResolveConcurrency = 1
	}
	return cfg
}

// IsProduction üretim ortamında mıyız?
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
