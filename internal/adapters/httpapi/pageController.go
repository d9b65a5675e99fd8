package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": "About"})
}
