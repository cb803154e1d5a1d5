package handlers

import (
	"vcard.link/middlewares"
	"vcard.link/models"
	"vcard.link/pkg/queryparams"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
)

// CardHandler kartvizit API'si.
type CardHandler struct {
	service       services.IBusinessCardService
	qrDefaultSize int
}

// NewCardHandler yeni bir CardHandler örneği oluşturur.
func NewCardHandler(service services.IBusinessCardService, qrDefaultSize int) *CardHandler {
	return &CardHandler{service: service, qrDefaultSize: qrDefaultSize}
}

// ListCards GET /cards?status=&page=&per_page=
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid query parameters", nil)
	}

	result, err := h.service.ListCards(c.UserContext(), middlewares.OwnerEmail(c), params)
	if err != nil {
		return respondServiceError(c, "ListCards", err)
	}
	return c.JSON(result)
}

// CreateCard POST /cards
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var input models.BusinessCardInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	card, err := h.service.CreateCard(c.UserContext(), middlewares.OwnerEmail(c), input)
	if err != nil {
		return respondServiceError(c, "CreateCard", err)
	}
	return respondData(c, fiber.StatusCreated, card)
}

// GetCard GET /cards/:id
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	card, err := h.service.GetCard(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, "GetCard", err)
	}
	return respondData(c, fiber.StatusOK, card)
}

// UpdateCard PUT /cards/:id
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	var input models.BusinessCardInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	card, err := h.service.UpdateCard(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"), input)
	if err != nil {
		return respondServiceError(c, "UpdateCard", err)
	}
	return respondData(c, fiber.StatusOK, card)
}

// ArchiveCard POST /cards/:id/archive
func (h *CardHandler) ArchiveCard(c *fiber.Ctx) error {
	card, err := h.service.ArchiveCard(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, "ArchiveCard", err)
	}
	return respondData(c, fiber.StatusOK, card)
}

// RestoreCard POST /cards/:id/restore
func (h *CardHandler) RestoreCard(c *fiber.Ctx) error {
	card, err := h.service.RestoreCard(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, "RestoreCard", err)
	}
	return respondData(c, fiber.StatusOK, card)
}

// SharePayload GET /cards/:id/share
func (h *CardHandler) SharePayload(c *fiber.Ctx) error {
	payload, err := h.service.SharePayload(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, "SharePayload", err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"payload": payload})
}

// ShareQR GET /cards/:id/qr.png?size=
func (h *CardHandler) ShareQR(c *fiber.Ctx) error {
	size := c.QueryInt("size", h.qrDefaultSize)
	png, err := h.service.ShareQR(c.UserContext(), middlewares.OwnerEmail(c), c.Params("id"), size)
	if err != nil {
		return respondServiceError(c, "ShareQR", err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Send(png)
}

// StreamCards GET /cards/stream (Server-Sent Events)
func (h *CardHandler) StreamCards(c *fiber.Ctx) error {
	updates := newLatest[[]models.BusinessCard]()
	unsubscribe, err := h.service.SubscribeCards(c.UserContext(), middlewares.OwnerEmail(c), updates.put)
	if err != nil {
		return respondServiceError(c, "StreamCards", err)
	}
	return streamSnapshots(c, "cards", updates, unsubscribe)
}
