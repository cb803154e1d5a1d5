package routes

import (
	"context"
	"time"

	apihandlers "vcard.link/handlers/api"
	"vcard.link/middlewares"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies rotaların ihtiyaç duyduğu servisler ve ayarlar.
type Dependencies struct {
	Cards    services.IBusinessCardService
	Contacts services.IContactService
	Feedback services.IFeedbackService

	Owner       middlewares.OwnerConfig
	ScanLimiter *middlewares.OwnerRateLimiter

	QRDefaultSize int
	// HealthCheck store erişimini kontrol eder. nil ise her zaman sağlıklı sayılır.
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	// --- Operasyon ---
	app.Get("/healthz", healthHandler(deps.HealthCheck))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- Rota Grupları ---
	registerAPIRoutes(app, deps)
	registerPublicLinkRoutes(app, deps)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// notFoundHandler eşleşmeyen tüm rotaları yakalar.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "text/html":
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	}
}

// ErrorHandler fiber.Config için JSON hata zarfı.
var ErrorHandler = apihandlers.ErrorHandler
