// internal/handlers/market.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/i18n"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type MarketHandler struct {
	marketService *services.MarketService
}

func NewMarketHandler(marketService *services.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

type buyRequest struct {
	Price          int64      `json:"price" validate:"required"`
	PaymentTokenID *uuid.UUID `json:"payment_token_id,omitempty"`
}

// POST /tokens/:token_id/buy
//
// The authenticated caller is always the buyer. An explicit payment token
// overrides the market default for this purchase only.
func (h *MarketHandler) Buy(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid token ID", nil)
		return
	}

	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	sale, err := h.marketService.Buy(buyerID, tokenID, buyerID, req.Price, req.PaymentTokenID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMarketPurchased),
		"sale":    sale,
	})
}

// GET /market/payment-token
func (h *MarketHandler) GetDefaultPaymentToken(c *gin.Context) {
	token, err := h.marketService.GetDefaultPaymentToken()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"default_payment_token": token,
	})
}
