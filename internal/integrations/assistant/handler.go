package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/internal/catalog"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type AssistantHandler struct {
	Service             *AssistantService
	ComponentRepository *catalog.ComponentRepository
}

func NewAssistantHandler(service *AssistantService, cr *catalog.ComponentRepository) *AssistantHandler {
	return &AssistantHandler{
		Service:             service,
		ComponentRepository: cr,
	}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assistant/components", security.Authorize(roles.Member), h.SuggestComponents)
	router.POST("/assistant/chat", security.Authorize(roles.Member), h.Chat)
}

func (h *AssistantHandler) SuggestComponents(c *gin.Context) {
	var request SuggestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	response, err := h.Service.SuggestComponents(request)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant request failed", "details": err.Error()})
		return
	}

	catalogNames, err := h.ComponentRepository.GetComponentNames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	existing := append(catalogNames, request.ExistingComponents...)

	accepted, rejected := ValidateSuggestions(response.Components, existing)

	c.JSON(http.StatusOK, gin.H{
		"components":  accepted,
		"explanation": response.Explanation,
		"rejected":    rejected,
	})
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var request ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	response, err := h.Service.Chat(request)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
