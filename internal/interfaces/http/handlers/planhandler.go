package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/catalog/usecases"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

// PlanHandler exposes the admin plan catalog endpoints.
type PlanHandler struct {
	createPlanUC        *usecases.CreatePlanUseCase
	updatePlanUC        *usecases.UpdatePlanUseCase
	deletePlanUC        *usecases.DeletePlanUseCase
	duplicatePlanUC     *usecases.DuplicatePlanUseCase
	getPlanUC           *usecases.GetPlanUseCase
	listPlansUC         *usecases.ListPlansUseCase
	setPlanStatusUC     *usecases.SetPlanStatusUseCase
	reorderPlansUC      *usecases.ReorderPlansUseCase
	countPlanTrainersUC *usecases.CountPlanTrainersUseCase
	logger              logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
	duplicatePlanUC *usecases.DuplicatePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	setPlanStatusUC *usecases.SetPlanStatusUseCase,
	reorderPlansUC *usecases.ReorderPlansUseCase,
	countPlanTrainersUC *usecases.CountPlanTrainersUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:        createPlanUC,
		updatePlanUC:        updatePlanUC,
		deletePlanUC:        deletePlanUC,
		duplicatePlanUC:     duplicatePlanUC,
		getPlanUC:           getPlanUC,
		listPlansUC:         listPlansUC,
		setPlanStatusUC:     setPlanStatusUC,
		reorderPlansUC:      reorderPlansUC,
		countPlanTrainersUC: countPlanTrainersUC,
		logger:              logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PlanType         string   `json:"plan_type" binding:"required,oneof=public lifetime"`
	MonthlyPrice     uint64   `json:"monthly_price"`
	AnnualPrice      *uint64  `json:"annual_price"`
	MaxStudents      uint     `json:"max_students"`
	Features         []string `json:"features"`
	VisibleOnLanding bool     `json:"visible_on_landing"`
}

type UpdatePlanRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PlanType         string   `json:"plan_type" binding:"required,oneof=public lifetime"`
	MonthlyPrice     uint64   `json:"monthly_price"`
	AnnualPrice      *uint64  `json:"annual_price"`
	MaxStudents      uint     `json:"max_students"`
	Features         []string `json:"features"`
	VisibleOnLanding bool     `json:"visible_on_landing"`
}

// UpdatePlanStatusRequest is a unified request for plan status changes.
type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ReorderPlanRequest struct {
	NewOrder int `json:"new_order" binding:"required,min=1"`
}

// CreatePlan creates a new catalog plan
// @Summary Create plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body CreatePlanRequest true "Plan data"
// @Success 201 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.CreatePlanCommand{
		Name:             req.Name,
		Description:      req.Description,
		PlanType:         req.PlanType,
		MonthlyPrice:     req.MonthlyPrice,
		AnnualPrice:      req.AnnualPrice,
		MaxStudents:      req.MaxStudents,
		Features:         req.Features,
		VisibleOnLanding: req.VisibleOnLanding,
		ActorID:          actorID,
		ActorEmail:       actorEmail,
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_sid", planSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.UpdatePlanCommand{
		PlanSID:          planSID,
		Name:             req.Name,
		Description:      req.Description,
		PlanType:         req.PlanType,
		MonthlyPrice:     req.MonthlyPrice,
		AnnualPrice:      req.AnnualPrice,
		MaxStudents:      req.MaxStudents,
		Features:         req.Features,
		VisibleOnLanding: req.VisibleOnLanding,
		ActorID:          actorID,
		ActorEmail:       actorEmail,
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Plan updated successfully")
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.DeletePlanCommand{
		PlanSID:    planSID,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Plan deleted successfully")
}

// DuplicatePlan clones a plan into a new inactive draft.
func (h *PlanHandler) DuplicatePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.DuplicatePlanCommand{
		PlanSID:    planSID,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	}

	result, err := h.duplicatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan duplicated successfully")
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), planSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ListPlans lists catalog plans with optional status and type filters
// @Summary List plans
// @Tags Plans
// @Produce json
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Param plan_type query string false "Filter by type" Enums(public, lifetime)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=dto.PlanListDTO}
// @Router /admin/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	query := usecases.ListPlansQuery{
		Status:   c.Query("status"),
		PlanType: c.Query("plan_type"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *PlanHandler) UpdatePlanStatus(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for plan status change", "plan_sid", planSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.SetPlanStatusCommand{
		PlanSID:    planSID,
		Status:     req.Status,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	}

	result, err := h.setPlanStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Plan status updated successfully")
}

// ReorderPlan moves a plan to a new catalog position, shifting neighbors.
func (h *PlanHandler) ReorderPlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReorderPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reorder plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, actorEmail := actorFromContext(c)
	cmd := usecases.ReorderPlansCommand{
		PlanSID:    planSID,
		NewOrder:   req.NewOrder,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	}

	if err := h.reorderPlansUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Plan reordered successfully")
}

func (h *PlanHandler) GetPlanTrainerCount(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.countPlanTrainersUC.Execute(c.Request.Context(), planSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
