package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/internal/organizations"
	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/pkg/auditlog"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type ComponentHandler struct {
	Repository          *repository.Repository
	ComponentRepository *ComponentRepository
	Guard               *organizations.MembershipGuard
	AuditLog            *auditlog.Auditlog
}

func NewComponentHandler(r *repository.Repository, cr *ComponentRepository, guard *organizations.MembershipGuard, a *auditlog.Auditlog) *ComponentHandler {
	return &ComponentHandler{
		Repository:          r,
		ComponentRepository: cr,
		Guard:               guard,
		AuditLog:            a,
	}
}

func (h *ComponentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/components", security.Authorize(roles.Member), h.CreateComponent)
	router.GET("/components", security.Authorize(roles.Viewer), h.GetComponents)
	router.GET("/components/:id", security.Authorize(roles.Viewer), h.GetComponent)
	router.PATCH("/components/:id", security.Authorize(roles.Member), h.UpdateComponent)
	router.DELETE("/components/:id", security.Authorize(roles.Admin), h.DeleteComponent)
	router.POST("/components/:id/risk-factors", security.Authorize(roles.Member), h.AddRiskFactor)
	router.PUT("/components/:id/risk-factors/:factorID", security.Authorize(roles.Member), h.ReplaceRiskFactor)
	router.DELETE("/components/:id/risk-factors/:factorID", security.Authorize(roles.Member), h.DeleteRiskFactor)
}

func (h *ComponentHandler) CreateComponent(c *gin.Context) {
	var req ComponentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	category, err := metadata.NewCategory(req.Category)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid component category",
			"details": err.Error(),
		})
		return
	}
	req.Category = category.String()

	if !h.Guard.Require(c, req.OrganizationID, roles.Member) {
		return
	}

	component, err := h.ComponentRepository.PersistComponent(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Component with same name already registered"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create component"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"organization_id": component.OrganizationID,
			"category":        component.Category.String(),
			"msg":             "Register component in catalog",
		},
		component,
	)

	c.JSON(http.StatusCreated, component)
}

func (h *ComponentHandler) GetComponents(c *gin.Context) {
	var query struct {
		OrganizationID *int   `form:"organization_id"`
		Category       string `form:"category"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()

	if query.OrganizationID != nil {
		conditions.AddCondition("organization_id", *query.OrganizationID)
	}
	if query.Category != "" {
		conditions.AddCondition("category", query.Category)
	}

	components, err := h.ComponentRepository.GetComponentsBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch components"})
		return
	}

	c.JSON(http.StatusOK, components)
}

func (h *ComponentHandler) GetComponent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}

	component, err := h.ComponentRepository.GetComponent(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Component not found"})
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) UpdateComponent(c *gin.Context) {
	var req PatchComponentRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.Category != nil {
		category, err := metadata.NewCategory(*req.Category)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid component category",
				"details": err.Error(),
			})
			return
		}
		categoryString := category.String()
		req.Category = &categoryString
	}

	if !h.requireComponentRole(c, req.ID, roles.Member) {
		return
	}

	component, err := h.ComponentRepository.UpdateComponent(&req)
	if err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update component", "details": err.Error()})
			return
		}
	}

	go h.AuditLog.Log("update", map[string]interface{}{"msg": "Update catalog component"}, component)

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) DeleteComponent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}

	if !h.requireComponentRole(c, id, roles.Admin) {
		return
	}

	if err := h.ComponentRepository.RemoveComponent(id); err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete component", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Component deleted successfully"})
}

// requireComponentRole resolves the component's organization and checks the
// caller's membership role there.
func (h *ComponentHandler) requireComponentRole(c *gin.Context, componentID int, required roles.Role) bool {
	component, err := h.ComponentRepository.GetComponent(componentID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Component not found"})
		return false
	}

	return h.Guard.Require(c, component.OrganizationID, required)
}

func (h *ComponentHandler) AddRiskFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}

	var req RiskFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.requireComponentRole(c, id, roles.Member) {
		return
	}

	factor, err := h.ComponentRepository.AddRiskFactor(id, req)
	if err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to add risk factor", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, factor)
}

func (h *ComponentHandler) ReplaceRiskFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	factorID, err := strconv.Atoi(c.Param("factorID"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid risk factor ID"})
		return
	}

	var req RiskFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.requireComponentRole(c, id, roles.Member) {
		return
	}

	factor, err := h.ComponentRepository.ReplaceRiskFactor(id, factorID, req)
	if err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace risk factor", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, factor)
}

func (h *ComponentHandler) DeleteRiskFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid component ID"})
		return
	}
	factorID, err := strconv.Atoi(c.Param("factorID"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid risk factor ID"})
		return
	}

	if !h.requireComponentRole(c, id, roles.Member) {
		return
	}

	if err := h.ComponentRepository.DeleteRiskFactor(id, factorID); err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete risk factor", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Risk factor deleted successfully"})
}
