package pricing

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type PricingHandler struct {
	Estimator *Estimator
}

func NewPricingHandler(estimator *Estimator) *PricingHandler {
	return &PricingHandler{Estimator: estimator}
}

func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/components/:id/quotes", security.Authorize(roles.Viewer), h.GetComponentQuotes)
	router.POST("/machines/:id/estimate", security.Authorize(roles.Viewer), h.EstimateMachine)
}

func (h *PricingHandler) GetComponentQuotes(c *gin.Context) {
	componentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}

	quotes, err := h.Estimator.QuoteComponent(c.Request.Context(), componentID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch quotes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (h *PricingHandler) EstimateMachine(c *gin.Context) {
	machineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	estimate, err := h.Estimator.EstimateMachine(c.Request.Context(), machineID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to build estimate", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimate)
}
