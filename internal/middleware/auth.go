package middleware

import (
	"strconv"

	"gamemate_backend/internal/logger"
	"gamemate_backend/internal/sessions"
	"gamemate_backend/pkg/apperrors"
	"gamemate_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionMiddleware восстанавливает сессию запроса из cookie и кладет
// ее в контекст для хендлеров. Должен стоять после DBMiddleware.
func SessionMiddleware(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, _ := c.Get(string(contextkeys.DBContextKey))
		db, ok := val.(*gorm.DB)
		if !ok {
			panic("critical error: SessionMiddleware requires DBMiddleware before it")
		}

		sess := manager.Bind(c, db)
		c.Set(string(contextkeys.SessionContextKey), sess)

		if userID := sess.UserID(); userID != 0 {
			c.Set("userID", userID)
			ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(userID), 10))
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// AuthMiddleware - гейт для операций, требующих залогиненного
// пользователя. Без действующей сессии запрос не доходит до операции.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("userID")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			c.Abort()
			return
		}

		if userID, ok := userIDVal.(uint); !ok || userID == 0 {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			c.Abort()
			return
		}

		c.Next()
	}
}
