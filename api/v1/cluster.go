package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kubealloc/services"
)

// GetClusterInfo returns general information about the cluster
func GetClusterInfo(c *gin.Context) {
	infoService := services.NewClusterInfoService()

	data, err := infoService.GetClusterInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cluster info: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
