// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/i18n"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type AdminHandler struct {
	marketService  *services.MarketService
	paymentService *services.PaymentService
}

func NewAdminHandler(marketService *services.MarketService, paymentService *services.PaymentService) *AdminHandler {
	return &AdminHandler{
		marketService:  marketService,
		paymentService: paymentService,
	}
}

type setDefaultPaymentTokenRequest struct {
	PaymentTokenID uuid.UUID `json:"payment_token_id" validate:"required"`
}

type depositRequest struct {
	PaymentTokenID uuid.UUID `json:"payment_token_id" validate:"required"`
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	Amount         int64     `json:"amount" validate:"required"`
}

// PUT /admin/market/payment-token
func (h *AdminHandler) SetDefaultPaymentToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req setDefaultPaymentTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.marketService.SetDefaultPaymentToken(req.PaymentTokenID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMarketDefaultTokenSet),
	})
}

// POST /admin/payment-tokens
func (h *AdminHandler) RegisterPaymentToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterPaymentTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	token, err := h.marketService.RegisterPaymentToken(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyPaymentTokenRegistered),
		"payment_token": token,
	})
}

// GET /admin/sales
func (h *AdminHandler) ListSales(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	sales, total, err := h.marketService.ListSales(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(sales, total, params))
}

// POST /admin/wallets/deposit
//
// Funds a ledger wallet. An operational fixture: the settlement path itself
// never creates value.
func (h *AdminHandler) Deposit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.paymentService.Deposit(req.PaymentTokenID, req.UserID, req.Amount); err != nil {
		respondServiceError(c, err)
		return
	}

	balance, err := h.paymentService.GetWalletBalance(req.PaymentTokenID, req.UserID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"payment_token_id": req.PaymentTokenID,
		"user_id":          req.UserID,
		"balance":          balance,
	})
}
