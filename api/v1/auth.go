package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kubealloc/dto"
	"github.com/kubealloc/services"
)

// IssueToken exchanges the static API key for a short-lived bearer token
func IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apiKey is required"})
		return
	}

	resp, err := services.IssueToken(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
