package handlers

import (
	"net/http"

	"gamemate_backend/internal/middleware"
	"gamemate_backend/internal/services"
	"gamemate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes регистрирует маршруты пользователей и профиля
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.GetAll)
		users.GET("/me", h.Me)

		// updateMe защищен: без сессии запрос отсекается до операции
		users.PUT("/me", middleware.AuthMiddleware(), h.UpdateMe)
	}
}

func (h *UserHandler) GetAll(c *gin.Context) {
	db := h.GetDB(c)

	users, err := h.userService.GetAll(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Me отдает залогиненного пользователя или null для гостя
func (h *UserHandler) Me(c *gin.Context) {
	db := h.GetDB(c)
	sess := h.GetSession(c)

	user, err := h.userService.Me(db, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.UpdateMe(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
