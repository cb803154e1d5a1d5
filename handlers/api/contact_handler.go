package handlers

import (
	"vcard.link/middlewares"
	"vcard.link/models"
	"vcard.link/pkg/cardcodec"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler kişi API'si.
type ContactHandler struct {
	service services.IContactService
}

// NewContactHandler yeni bir ContactHandler örneği oluşturur.
func NewContactHandler(service services.IContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type addContactRequest struct {
	OwnerEmail string `json:"owner_email"`
	CardID     string `json:"card_id"`
}

type scanRequest struct {
	Payload string `json:"payload"`
}

type scanResponse struct {
	Contact *models.Contact   `json:"contact"`
	Card    cardcodec.Payload `json:"card"`
}

// ListContacts GET /contacts: referansları kartlarıyla birlikte döndürür.
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.service.ResolveContacts(c.UserContext(), middlewares.OwnerEmail(c))
	if err != nil {
		return respondServiceError(c, "ListContacts", err)
	}
	return respondData(c, fiber.StatusOK, contacts)
}

// AddContact POST /contacts: istemcinin zaten çözdüğü alanlarla ekleme.
func (h *ContactHandler) AddContact(c *fiber.Ctx) error {
	var req addContactRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	payload := cardcodec.Payload{OwnerEmail: req.OwnerEmail, Card: cardcodec.Card{ID: req.CardID}}
	contact, err := h.service.AddContact(c.UserContext(), middlewares.OwnerEmail(c), payload)
	if err != nil {
		return respondServiceError(c, "AddContact", err)
	}
	return respondData(c, fiber.StatusCreated, contact)
}

// Scan POST /contacts/scan: ham QR metnini çözer ve ekler.
func (h *ContactHandler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	result, err := h.service.Scan(c.UserContext(), middlewares.OwnerEmail(c), req.Payload)
	if err != nil {
		return respondServiceError(c, "Scan", err)
	}
	return respondData(c, fiber.StatusCreated, scanResponse{Contact: result.Contact, Card: result.Payload})
}

// StreamContacts GET /contacts/stream (Server-Sent Events)
func (h *ContactHandler) StreamContacts(c *fiber.Ctx) error {
	updates := newLatest[[]models.ContactCard]()
	unsubscribe, err := h.service.SubscribeContacts(c.UserContext(), middlewares.OwnerEmail(c), updates.put)
	if err != nil {
		return respondServiceError(c, "StreamContacts", err)
	}
	return streamSnapshots(c, "contacts", updates, unsubscribe)
}
