package handlers

import (
	"net/http"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Registration successful", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Request.Context(), AuthUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), AuthUserID(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// Logout is stateless: tokens are not tracked server side, so this endpoint
// exists for clients that expect it and simply acknowledges.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
