package handlers

import (
	"errors"
	"net/url"

	"vcard.link/configs/configslog"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LinkHandler public kartvizit sayfalarını yönetir. Kimlik gerektirmez.
type LinkHandler struct {
	cardService   services.IBusinessCardService
	qrDefaultSize int
}

// NewLinkHandler yeni bir LinkHandler örneği oluşturur.
func NewLinkHandler(cardService services.IBusinessCardService, qrDefaultSize int) *LinkHandler {
	return &LinkHandler{cardService: cardService, qrDefaultSize: qrDefaultSize}
}

func ownerParam(c *fiber.Ctx) string {
	owner, err := url.PathUnescape(c.Params("owner"))
	if err != nil {
		return ""
	}
	return owner
}

// HandleCard GET /c/:owner/:id: aktif kartın public sayfası.
func (h *LinkHandler) HandleCard(c *fiber.Ctx) error {
	owner, id := ownerParam(c), c.Params("id")
	if owner == "" || id == "" {
		return h.renderNotFound(c, "Geçersiz Link")
	}

	ctx := c.UserContext()
	card, err := h.cardService.GetPublicCard(ctx, owner, id)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("HandleCard: GetPublicCard error", zap.String("owner", owner), zap.String("id", id), zap.Error(err))
		return h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}

	payload, err := h.cardService.SharePayload(ctx, owner, id)
	if err != nil {
		configslog.Log.Error("HandleCard: SharePayload error", zap.String("id", id), zap.Error(err))
		return h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}

	return c.Render("public/card_view", fiber.Map{
		"Title":   card.Name,
		"Card":    card,
		"Payload": payload,
		"QRPath":  c.Path() + "/qr.png",
	}, "layouts/public_layout")
}

// HandleQR GET /c/:owner/:id/qr.png: aktif kartın QR görseli.
func (h *LinkHandler) HandleQR(c *fiber.Ctx) error {
	owner, id := ownerParam(c), c.Params("id")
	png, err := h.cardService.ShareQR(c.UserContext(), owner, id, c.QueryInt("size", h.qrDefaultSize))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) || errors.Is(err, services.ErrCardArchived) || errors.Is(err, services.ErrCardOwnerRequired) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		configslog.Log.Error("HandleQR: ShareQR error", zap.String("owner", owner), zap.String("id", id), zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	c.Type("png")
	return c.Send(png)
}

// renderNotFound standart 404 sayfasını render eder.
func (h *LinkHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/error_layout")
}

// renderError standart 500 hata sayfasını render eder.
func (h *LinkHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/error_layout")
}
