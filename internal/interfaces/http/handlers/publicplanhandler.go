package handlers

import (
	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/catalog/usecases"
	"coachdesk/internal/shared/utils"
)

// PublicPlanHandler serves the unauthenticated landing-page plan listing.
type PublicPlanHandler struct {
	getPublicPlansUC *usecases.GetPublicPlansUseCase
}

func NewPublicPlanHandler(getPublicPlansUC *usecases.GetPublicPlansUseCase) *PublicPlanHandler {
	return &PublicPlanHandler{getPublicPlansUC: getPublicPlansUC}
}

// GetPublicPlans lists the plans shown on the landing page
// @Summary Public plan listing
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.PublicPlanDTO}
// @Router /plans/public [get]
func (h *PublicPlanHandler) GetPublicPlans(c *gin.Context) {
	result, err := h.getPublicPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
