package routes

import (
	linkhandlers "vcard.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes paylaşılan kartvizit sayfalarını tanımlar. Kimlik gerektirmez.
func registerPublicLinkRoutes(app *fiber.App, deps Dependencies) {
	publicHandler := linkhandlers.NewLinkHandler(deps.Cards, deps.QRDefaultSize)

	app.Get("/c/:owner/:id", publicHandler.HandleCard)
	app.Get("/c/:owner/:id/qr.png", publicHandler.HandleQR)
}
