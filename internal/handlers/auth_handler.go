package handlers

import (
	"net/http"

	"gamemate_backend/internal/logger"
	"gamemate_backend/internal/services"
	"gamemate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует все маршруты для аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/change-password", h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	sess := h.GetSession(c)

	result, err := h.authService.Register(db, sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Ошибки полей - часть успешного ответа, UI подсвечивает поле
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	sess := h.GetSession(c)

	result, err := h.authService.Login(db, sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := h.GetSession(c)

	ok := h.authService.Logout(c.Request.Context(), sess)
	c.JSON(http.StatusOK, ok)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	// Незнакомый email дает тот же true, что и знакомый - существование
	// адреса не раскрывается. false возвращается только при настоящем
	// сбое (база недоступна и т.п.).
	if err := h.authService.ForgotPassword(db, req.Email); err != nil {
		logger.CtxWithError(c.Request.Context(), "Password reset request failed", err,
			"email", req.Email,
		)
		c.JSON(http.StatusOK, false)
		return
	}

	c.JSON(http.StatusOK, true)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	sess := h.GetSession(c)

	result, err := h.authService.ChangePassword(db, sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
