package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vcard.link/configs"
	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configslog"
	"vcard.link/middlewares"
	"vcard.link/repositories"
	"vcard.link/routes"
	"vcard.link/services"
	"vcard.link/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadAppConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB alınamadı", zap.Error(err))
	}

	// Repository'ler
	cardRepo := repositories.NewBusinessCardRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	// Servisler
	cardService := services.NewBusinessCardService(cardRepo)
	contactService := services.NewContactService(contactRepo, cardRepo, services.ContactServiceOptions{
		ResolveConcurrency: cfg.ContactResolveConcurrency,
	})
	feedbackService := services.NewFeedbackService(feedbackRepo)

	scanLimiter := middlewares.NewOwnerRateLimiter("scan", cfg.ScanRatePerMinute, cfg.ScanBurst)
	defer scanLimiter.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "vcard.link",
		Views:        views.NewEngine(),
		ErrorHandler: routes.ErrorHandler,
		// Parametre ve header değerleri istekten sonra da kullanılıyor
		Immutable:   true,
		ReadTimeout: 15 * time.Second,
		// SSE bağlantıları uzun yaşar; yazma zaman aşımı yok
		IdleTimeout: 60 * time.Second,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Cards:    cardService,
		Contacts: contactService,
		Feedback: feedbackService,
		Owner: middlewares.OwnerConfig{
			Header:    cfg.IdentityHeader,
			TokenHash: cfg.IdentityTokenHash,
		},
		ScanLimiter:   scanLimiter,
		QRDefaultSize: cfg.QRDefaultSize,
		HealthCheck:   sqlDB.PingContext,
	})

	if cfg.IdentityTokenHash == "" && cfg.IsProduction() {
		configslog.Log.Warn("IDENTITY_TOKEN_HASH boş; kimlik header'ı doğrulanmadan kabul edilecek")
	}

	go func() {
		addr := ":" + cfg.Port
		configslog.SLog.Infof("Sunucu başlatılıyor: %s (env: %s)", addr, cfg.Env)
		if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Sunucu kapatılıyor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu kapatıldı")
}
