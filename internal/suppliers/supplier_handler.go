package suppliers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/internal/organizations"
	"github.com/blazinaj/roboconfig-sub000/pkg/auditlog"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type SupplierHandler struct {
	SupplierRepository *SupplierRepository
	Guard              *organizations.MembershipGuard
	AuditLog           *auditlog.Auditlog
}

func NewSupplierHandler(sr *SupplierRepository, guard *organizations.MembershipGuard, a *auditlog.Auditlog) *SupplierHandler {
	return &SupplierHandler{
		SupplierRepository: sr,
		Guard:              guard,
		AuditLog:           a,
	}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suppliers", security.Authorize(roles.Member), h.CreateSupplier)
	router.GET("/suppliers", security.Authorize(roles.Viewer), h.GetSuppliers)
	router.GET("/suppliers/:id", security.Authorize(roles.Viewer), h.GetSupplier)
	router.DELETE("/suppliers/:id", security.Authorize(roles.Admin), h.DeleteSupplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.Guard.Require(c, req.OrganizationID, roles.Member) {
		return
	}

	supplier, err := h.SupplierRepository.PersistSupplier(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Supplier with same name already registered"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"organization_id": supplier.OrganizationID,
			"name":            supplier.Name,
			"msg":             "Register supplier",
		},
		supplier,
	)

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	organizationID, err := strconv.Atoi(c.Query("organization_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}

	suppliersList, err := h.SupplierRepository.GetSuppliersByOrganization(organizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
		return
	}

	c.JSON(http.StatusOK, suppliersList)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	supplier, err := h.SupplierRepository.GetSupplier(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	supplier, err := h.SupplierRepository.GetSupplier(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	if !h.Guard.Require(c, supplier.OrganizationID, roles.Admin) {
		return
	}

	if err := h.SupplierRepository.DeleteSupplier(id); err != nil {
		switch err.(type) {
		case *custom_error.ForeignKeyViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Supplier is referenced by purchase orders"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
			return
		}
	}

	go h.AuditLog.Log("delete", map[string]interface{}{"msg": "Remove supplier"}, supplier)

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
