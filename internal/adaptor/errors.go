package adaptor

import (
	"errors"
	"net/http"

	"servilink/pkg/apperr"
	"servilink/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the error taxonomy to HTTP. Anything outside the
// taxonomy is an internal fault: logged in full, surfaced as a bare 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *apperr.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, apperr.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperr.ErrForbidden):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, apperr.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, apperr.ErrInvalidState):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrConflict):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
