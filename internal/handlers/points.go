// internal/handlers/points.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/i18n"
	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type PointsHandler struct {
	pointsService *services.PointsService
}

func NewPointsHandler(pointsService *services.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

type awardPointsRequest struct {
	GranterID uuid.UUID `json:"granter_id" validate:"required"`
	FanID     uuid.UUID `json:"fan_id" validate:"required"`
	Points    string    `json:"points" validate:"required"`
}

// GET /fans/:fan_id/points
func (h *PointsHandler) GetFanPoints(c *gin.Context) {
	fanID, err := uuid.Parse(c.Param("fan_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fan ID", nil)
		return
	}

	balance, err := h.pointsService.GetPoints(fanID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fan_id": fanID,
		"points": balance,
	})
}

// POST /points/award
//
// Points are carried as decimal strings on the wire; they can exceed what an
// int64 holds.
func (h *PointsHandler) AwardFanPoints(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req awardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	points, err := models.ParseU128(req.Points)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid points amount", err.Error())
		return
	}

	if err := h.pointsService.AwardPoints(actorID, req.GranterID, req.FanID, points); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPointsAwarded),
	})
}
