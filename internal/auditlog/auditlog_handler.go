package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type Handler struct {
	Repository *Repository
}

func NewHandler(r *Repository) *Handler {
	return &Handler{Repository: r}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", security.Authorize(roles.Admin), h.GetLogs)
}

// GetLogs lists the audit trail for one resource, newest first.
func (h *Handler) GetLogs(c *gin.Context) {
	resourceType := c.Query("resource_type")
	if resourceType == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "resource_type is required"})
		return
	}

	resourceID, err := strconv.Atoi(c.Query("resource_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	logs, err := h.Repository.GetLogs(resourceType, resourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
