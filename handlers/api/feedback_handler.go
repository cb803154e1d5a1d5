package handlers

import (
	"vcard.link/middlewares"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	service services.IFeedbackService
}

func NewFeedbackHandler(service services.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	Message string `json:"message" form:"message"`
}

// Submit POST /feedback
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	fb, err := h.service.Submit(c.UserContext(), middlewares.OwnerEmail(c), req.Message)
	if err != nil {
		return respondServiceError(c, "SubmitFeedback", err)
	}
	return respondData(c, fiber.StatusCreated, fb)
}
