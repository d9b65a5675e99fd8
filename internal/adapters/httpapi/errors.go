package httpapi

import (
	"errors"
	"net/http"

	"blog/internal/adapters/httpapi/middleware"
	postEntity "blog/internal/core/post"
	userEntity "blog/internal/core/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError تبدیل خطاهای دامنه به پاسخ HTTP
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var valErr *postEntity.ValidationError

	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": valErr.Fields})
	case errors.Is(err, postEntity.ErrNotFound), errors.Is(err, userEntity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, postEntity.ErrUnauthenticated):
		middleware.RedirectToLogin(c)
	case errors.Is(err, postEntity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, userEntity.ErrUsernameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": gin.H{"username": "This field is required."}})
	case errors.Is(err, userEntity.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
	case errors.Is(err, userEntity.ErrInvalidCredentials), errors.Is(err, userEntity.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
