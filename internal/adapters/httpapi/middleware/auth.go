package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"blog/internal/core/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userKey  = "user"
	tokenKey = "token"

	// LoginPath مقصد ریدایرکت برای درخواست‌های بدون احراز هویت
	LoginPath = "/login"
)

// Authenticator تبدیل توکن به کاربر
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Authenticate هویت را اگر توکن معتبر باشد در context می‌گذارد.
// توکن نامعتبر درخواست را رد نمی‌کند؛ کاربر ناشناس فرض می‌شود.
// خطای زیرساخت (مثلاً Redis) ناشناس حساب نمی‌شود و 500 برمی‌گردد.
func Authenticate(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, user.ErrInvalidToken) {
			logger.Debug("Ignoring unusable token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}
		if err != nil {
			// همان بدنه‌ی writeError؛ این پکیج نمی‌تواند httpapi را import کند
			logger.Error("Authentication failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(userKey, u)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireLogin گیت احراز هویت؛ کاربر ناشناس به صفحه‌ی ورود ریدایرکت می‌شود
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectToLogin مسیر فعلی در next نگه داشته می‌شود
func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
}

// CurrentUser کاربر فعلی یا nil
func CurrentUser(c *gin.Context) *user.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return strings.TrimSpace(token)
}
