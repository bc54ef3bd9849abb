// internal/handlers/token.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/i18n"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type TokenHandler struct {
	tokenService   *services.TokenService
	storageService *services.StorageService
}

func NewTokenHandler(tokenService *services.TokenService, storageService *services.StorageService) *TokenHandler {
	return &TokenHandler{
		tokenService:   tokenService,
		storageService: storageService,
	}
}

type mintRequest struct {
	CreatorID      uuid.UUID `json:"creator_id" validate:"required"`
	InitialOwnerID uuid.UUID `json:"initial_owner_id" validate:"required"`
	RoyaltyBps     uint32    `json:"royalty_bps"`
	URI            string    `json:"uri"`
}

type transferRequest struct {
	FromID uuid.UUID `json:"from_id" validate:"required"`
	ToID   uuid.UUID `json:"to_id" validate:"required"`
}

// POST /tokens
func (h *TokenHandler) Mint(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := h.tokenService.Mint(actorID, &services.MintRequest{
		CreatorID:      req.CreatorID,
		InitialOwnerID: req.InitialOwnerID,
		RoyaltyBps:     req.RoyaltyBps,
		URI:            []byte(req.URI),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTokenMinted),
		"token":   token,
	})
}

// GET /tokens/:token_id
func (h *TokenHandler) GetInfo(c *gin.Context) {
	tokenID, err := parseTokenID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid token ID", nil)
		return
	}

	token, err := h.tokenService.GetInfo(tokenID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, token)
}

// POST /tokens/:token_id/transfer
func (h *TokenHandler) Transfer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid token ID", nil)
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.tokenService.Transfer(actorID, tokenID, req.FromID, req.ToID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTokenTransferred),
	})
}

// POST /tokens/metadata
//
// Uploads a metadata document and returns the URI to pass to mint. The token
// record itself only ever stores the URI, never the document.
func (h *TokenHandler) UploadMetadata(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read request body", nil)
		return
	}

	result, err := h.storageService.UploadMetadata(data, c.ContentType())
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}

func parseTokenID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("token_id"), 10, 64)
}
