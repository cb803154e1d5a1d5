package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcodec"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// OwnerEmailKey doğrulanmış sahip e-postasının Locals anahtarı.
	OwnerEmailKey = "ownerEmail"
	// GatewayTokenHeader gateway'in paylaşılan gizli anahtarını taşıyan header.
	GatewayTokenHeader = "X-Gateway-Token"
)

// OwnerConfig kimlik middleware ayarları.
type OwnerConfig struct {
	// Header sahip e-postasını taşıyan header adı.
	Header string
	// TokenHash gateway anahtarının bcrypt hash'i. Boşsa anahtar kontrolü yapılmaz.
	TokenHash string
}

// OwnerMiddleware isteği yapan hesabı gateway header'ından çıkarır.
// Oturum yönetimi bu serviste değil, önündeki gateway'dedir.
func OwnerMiddleware(cfg OwnerConfig) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = "X-Owner-Email"
	}
	hash := []byte(cfg.TokenHash)

	// Doğrulanmış anahtarların sha256 özeti; bcrypt her istekte tekrarlanmaz
	var verified sync.Map

	return func(c *fiber.Ctx) error {
		if len(hash) > 0 {
			token := c.Get(GatewayTokenHeader)
			if token == "" {
				configslog.Log.Warn("Gateway anahtarı eksik", zap.String("ip", c.IP()), zap.String("path", c.Path()))
				return unauthorized(c)
			}
			sum := sha256.Sum256([]byte(token))
			key := hex.EncodeToString(sum[:])
			if _, ok := verified.Load(key); !ok {
				if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
					configslog.Log.Warn("Geçersiz gateway anahtarı", zap.String("ip", c.IP()), zap.String("path", c.Path()))
					return unauthorized(c)
				}
				verified.Store(key, struct{}{})
			}
		}

		// c.Get fasthttp tamponunu paylaşır; değer limiter, hub ve notify
		// goroutine'lerinde istekten uzun yaşadığı için kopyalanır
		email := models.NormalizeEmail(utils.CopyString(c.Get(header)))
		if email == "" || len(email) > cardcodec.MaxEmailLen || !cardcodec.IsEmail(email) || strings.Contains(email, cardcodec.Delimiter) {
			configslog.SLog.Debugf("Kimlik header'ı geçersiz: %q", email)
			return unauthorized(c)
		}

		c.Locals(OwnerEmailKey, email)
		return c.Next()
	}
}

// OwnerEmail OwnerMiddleware tarafından ayarlanan e-postayı döndürür.
func OwnerEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(OwnerEmailKey).(string)
	return email
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kimlik doğrulanamadı"})
}
