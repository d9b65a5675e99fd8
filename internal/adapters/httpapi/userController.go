package httpapi

import (
	"net/http"

	"blog/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc     UserUseCase
	logger *zap.Logger
}

func NewUserController(uc UserUseCase, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, logger: logger}
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Login",
		"fields": []string{"username", "password"},
		"next":   c.Query("next"),
	})
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required,max=150"`
		Email    string `form:"email" json:"email" binding:"omitempty,email"`
		Password string `form:"password" json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) LogoutUser(c *gin.Context) {
	if err := ctl.uc.LogoutUser(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
