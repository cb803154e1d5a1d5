package handlers

import (
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/pkg/cardcodec"
	"vcard.link/repositories"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Tüm JSON cevapları {"data": ...} veya {"error": ..., "details": ...} zarfı ile döner.

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

func respondError(c *fiber.Ctx, status int, message string, details any) error {
	body := fiber.Map{"error": message}
	if details != nil {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}

// respondServiceError servis hatasını HTTP durum koduna çevirir.
func respondServiceError(c *fiber.Ctx, op string, err error) error {
	var fieldErrs cardcodec.FieldErrors
	var payloadErr *cardcodec.InvalidPayloadError

	switch {
	case errors.As(err, &fieldErrs):
		return respondError(c, fiber.StatusUnprocessableEntity, services.ErrCardInvalidInput.Error(), fieldErrs)
	case errors.As(err, &payloadErr):
		return respondError(c, fiber.StatusUnprocessableEntity, cardcodec.ErrInvalidPayload.Error(), fiber.Map{"reason": payloadErr.Reason})
	case errors.Is(err, services.ErrCardInvalidInput),
		errors.Is(err, services.ErrFeedbackEmpty),
		errors.Is(err, services.ErrFeedbackTooLong):
		return respondError(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, services.ErrContactDuplicate),
		errors.Is(err, services.ErrContactSelfReference),
		errors.Is(err, services.ErrCardArchived):
		return respondError(c, fiber.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, repositories.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, services.ErrCardNotFound.Error(), nil)
	case errors.Is(err, services.ErrCardOwnerRequired),
		errors.Is(err, services.ErrContactOwnerRequired),
		errors.Is(err, services.ErrFeedbackOwnerRequired):
		return respondError(c, fiber.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, repositories.ErrStoreUnavailable):
		configslog.Log.Error(op+": store erişilemez", zap.String("path", c.Path()), zap.Error(err))
		return respondError(c, fiber.StatusServiceUnavailable, "storage temporarily unavailable", nil)
	default:
		configslog.Log.Error(op+": beklenmeyen hata", zap.String("path", c.Path()), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "internal error", nil)
	}
}

// ErrorHandler fiber'ın kendi hatalarını (404 rota, body limit vb.) aynı zarfa çevirir.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İstek işlenemedi", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		return respondError(c, code, "internal error", nil)
	}
	return respondError(c, code, err.Error(), nil)
}
