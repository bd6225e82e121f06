package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/subscription/usecases"
	"coachdesk/internal/interfaces/http/middleware"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

// SubscriptionHandler exposes trainer subscription management endpoints.
type SubscriptionHandler struct {
	assignPlanUC  *usecases.AssignPlanUseCase
	cancelUC      *usecases.CancelSubscriptionUseCase
	getUC         *usecases.GetSubscriptionUseCase
	listHistoryUC *usecases.ListHistoryUseCase
	logger        logger.Interface
}

func NewSubscriptionHandler(
	assignPlanUC *usecases.AssignPlanUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	listHistoryUC *usecases.ListHistoryUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		assignPlanUC:  assignPlanUC,
		cancelUC:      cancelUC,
		getUC:         getUC,
		listHistoryUC: listHistoryUC,
		logger:        logger.NewLogger(),
	}
}

type AssignPlanRequest struct {
	PlanSID         string     `json:"plan_sid" binding:"required"`
	Period          string     `json:"period" binding:"required"`
	DiscountPercent uint8      `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date"`
}

type CancelSubscriptionRequest struct {
	Reason    *string `json:"reason"`
	Immediate bool    `json:"immediate"`
}

// AssignPlan puts a trainer on a plan
// @Summary Assign plan to trainer
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param trainer_id path string true "Trainer SID"
// @Param request body AssignPlanRequest true "Assignment data"
// @Success 200 {object} utils.APIResponse{data=dto.SubscriptionDTO}
// @Failure 409 {object} utils.APIResponse
// @Router /admin/trainers/{trainer_id}/subscription [put]
func (h *SubscriptionHandler) AssignPlan(c *gin.Context) {
	trainerSID, err := utils.ParseSIDParam(c, "trainer_id", id.PrefixTrainer, "trainer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign plan", "trainer_sid", trainerSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.AssignPlanCommand{
		TrainerSID:      trainerSID,
		PlanSID:         req.PlanSID,
		Period:          req.Period,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		ActorID:         c.GetUint(middleware.ContextKeyUserID),
		ActorEmail:      c.GetString(middleware.ContextKeyUserEmail),
	}

	result, err := h.assignPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Plan assigned successfully")
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	trainerSID, err := utils.ParseSIDParam(c, "trainer_id", id.PrefixTrainer, "trainer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cancel subscription", "trainer_sid", trainerSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.CancelSubscriptionCommand{
		TrainerSID: trainerSID,
		Reason:     req.Reason,
		Immediate:  req.Immediate,
		ActorID:    c.GetUint(middleware.ContextKeyUserID),
		ActorEmail: c.GetString(middleware.ContextKeyUserEmail),
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Subscription canceled successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	trainerSID, err := utils.ParseSIDParam(c, "trainer_id", id.PrefixTrainer, "trainer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), trainerSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *SubscriptionHandler) ListHistory(c *gin.Context) {
	trainerSID, err := utils.ParseSIDParam(c, "trainer_id", id.PrefixTrainer, "trainer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListHistoryQuery{
		TrainerSID: trainerSID,
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "page_size"),
	}

	result, err := h.listHistoryUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
