package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/admin/usecases"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

type AuthHandler struct {
	loginUC *usecases.LoginUseCase
	logger  logger.Interface
}

func NewAuthHandler(loginUC *usecases.LoginUseCase) *AuthHandler {
	return &AuthHandler{
		loginUC: loginUC,
		logger:  logger.NewLogger(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff user and returns an access token
// @Summary Staff login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=usecases.LoginResult}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
