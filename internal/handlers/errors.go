// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/i18n"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

// respondServiceError maps the service layer's terminal errors onto HTTP
// status codes and localized messages. Anything unrecognized is a 500 with
// the raw error hidden from the client.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		utils.ErrorResponse(c, http.StatusForbidden, "NOT_AUTHORIZED",
			i18n.T(lang, i18n.KeyNotAuthorized), nil)
	case errors.Is(err, services.ErrTokenNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "TOKEN_NOT_FOUND",
			i18n.T(lang, i18n.KeyTokenNotFound), nil)
	case errors.Is(err, services.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, "NOT_OWNER",
			i18n.T(lang, i18n.KeyTokenNotOwner), nil)
	case errors.Is(err, services.ErrSameOwner):
		utils.ErrorResponse(c, http.StatusConflict, "SAME_OWNER",
			i18n.T(lang, i18n.KeyTokenSameOwner), nil)
	case errors.Is(err, services.ErrInvalidRoyalty):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ROYALTY",
			i18n.T(lang, i18n.KeyInvalidRoyalty), nil)
	case errors.Is(err, services.ErrInvalidPrice):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_PRICE",
			i18n.T(lang, i18n.KeyMarketInvalidPrice), nil)
	case errors.Is(err, services.ErrInvalidPaymentToken):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_PAYMENT_TOKEN",
			i18n.T(lang, i18n.KeyMarketInvalidPaymentToken), nil)
	case errors.Is(err, services.ErrOverflow):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "OVERFLOW",
			i18n.T(lang, i18n.KeyMarketOverflow), nil)
	case errors.Is(err, services.ErrPaymentFailed):
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_FAILED",
			i18n.T(lang, i18n.KeyMarketPaymentFailed), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// currentUserID reads the authenticated principal set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
