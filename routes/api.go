package routes

import (
	apihandlers "vcard.link/handlers/api"
	"vcard.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api/v1 altındaki kimlik gerektiren rotaları tanımlar.
func registerAPIRoutes(app *fiber.App, deps Dependencies) {
	cardHandler := apihandlers.NewCardHandler(deps.Cards, deps.QRDefaultSize)
	contactHandler := apihandlers.NewContactHandler(deps.Contacts)
	feedbackHandler := apihandlers.NewFeedbackHandler(deps.Feedback)

	api := app.Group("/api/v1")
	api.Use(middlewares.OwnerMiddleware(deps.Owner))

	cards := api.Group("/cards")
	cards.Get("/", cardHandler.ListCards)
	cards.Post("/", cardHandler.CreateCard)
	cards.Get("/stream", cardHandler.StreamCards) // :id'den önce tanımlanmalı
	cards.Get("/:id", cardHandler.GetCard)
	cards.Put("/:id", cardHandler.UpdateCard)
	cards.Post("/:id/archive", cardHandler.ArchiveCard)
	cards.Post("/:id/restore", cardHandler.RestoreCard)
	cards.Get("/:id/share", cardHandler.SharePayload)
	cards.Get("/:id/qr.png", cardHandler.ShareQR)

	contacts := api.Group("/contacts")
	contacts.Get("/", contactHandler.ListContacts)
	contacts.Post("/", contactHandler.AddContact)
	contacts.Get("/stream", contactHandler.StreamContacts)
	if deps.ScanLimiter != nil {
		contacts.Post("/scan", deps.ScanLimiter.Handler(), contactHandler.Scan)
	} else {
		contacts.Post("/scan", contactHandler.Scan)
	}

	api.Post("/feedback", feedbackHandler.Submit)
}
