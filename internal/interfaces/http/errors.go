package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// writeError traduce un error de dominio a status y código HTTP. Los errores no
// tipados se registran y se responden como 500.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInvalidDestination):
		status, code = fiber.StatusBadRequest, "INVALID_DESTINATION"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrItemNotFound):
		status, code = fiber.StatusNotFound, "ITEM_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrTransactionConflict):
		status, code = fiber.StatusConflict, "TRANSACTION_CONFLICT"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		status, code = fiber.StatusConflict, "INVALID_STATUS_TRANSITION"
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("user_id", GetUserID(c)).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
