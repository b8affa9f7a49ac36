package presenters

import (
	"Resto-POS-Backend/domain"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	if status >= fiber.StatusInternalServerError {
		// internal detail is logged, never exposed
		log.Printf("internal error: %v", err)
		detail = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   detail,
	})
}

// StatusFromError maps domain errors onto HTTP status codes so handlers do
// not repeat the taxonomy. Unknown errors surface as 500.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrAccountInactive):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUnitNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrIngredientInUse),
		errors.Is(err, domain.ErrUnitInUse),
		errors.Is(err, domain.ErrTransactionNoItems),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrTableHasActiveOrders),
		errors.Is(err, domain.ErrOrderNoItems),
		errors.Is(err, domain.ErrOrderAlreadyPaid),
		errors.Is(err, domain.ErrOrderCancelled),
		errors.Is(err, domain.ErrInvalidStatusChange),
		errors.Is(err, domain.ErrInvalidPaymentAmount),
		errors.Is(err, domain.ErrPaymentExceedsBalance),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidDateRange):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
