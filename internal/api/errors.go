package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/database"
)

// storeErrorResponse maps store-layer sentinels onto the response
// taxonomy: not-found entities, validation failures, conflicts.
// Everything else is a transaction or infrastructure failure, logged
// server-side and surfaced as a generic error with no partial state.
func storeErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, database.ErrPackageNotFound),
		errors.Is(err, database.ErrContainerNotFound),
		errors.Is(err, database.ErrBatchNotFound),
		errors.Is(err, database.ErrEmployeeNotFound),
		errors.Is(err, database.ErrModuleNotFound),
		errors.Is(err, database.ErrMessageNotFound),
		errors.Is(err, database.ErrPaymentNotFound):
		return notFoundResponse(c, err.Error())

	case errors.Is(err, database.ErrStatusNotFound):
		return badRequestResponse(c, "unknown status code", map[string]interface{}{
			"field": "status_id",
		})

	case errors.Is(err, database.ErrInvalidUnlockCode):
		return badRequestResponse(c, "unlock code does not match", map[string]interface{}{
			"field": "unlock_code",
		})

	case errors.Is(err, database.ErrInvalidRole):
		return badRequestResponse(c, "unknown role", map[string]interface{}{
			"field": "role",
		})

	case errors.Is(err, database.ErrDuplicateTracking):
		return conflictResponse(c, err.Error())

	default:
		log.Printf("store error: %v", err)
		return internalErrorResponse(c)
	}
}
