package orders

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

type OrderHandler struct {
	Repository      *repository.Repository
	OrderRepository *OrderRepository
	Receiving       *ReceivingService
	Guard           *organizations.MembershipGuard
	AuditLog        *auditlog.Auditlog
}

func NewOrderHandler(r *repository.Repository, or *OrderRepository, receiving *ReceivingService, guard *organizations.MembershipGuard, a *auditlog.Auditlog) *OrderHandler {
	return &OrderHandler{
		Repository:      r,
		OrderRepository: or,
		Receiving:       receiving,
		Guard:           guard,
		AuditLog:        a,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/orders", security.Authorize(roles.Member), h.CreateOrder)
	router.GET("/orders", security.Authorize(roles.Viewer), h.GetOrders)
	router.GET("/orders/:id", security.Authorize(roles.Viewer), h.GetOrder)
	router.POST("/orders/:id/receive", security.Authorize(roles.Member), h.ReceiveItems)
	router.PATCH("/orders/:id/status", security.Authorize(roles.Member), h.UpdateStatus)
	router.DELETE("/orders/:id", security.Authorize(roles.Admin), h.DeleteOrder)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req OrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.Guard.Require(c, req.OrganizationID, roles.Member) {
		return
	}

	order, err := h.OrderRepository.PersistOrder(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Order number already in use"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"order_number": order.OrderNumber,
			"supplier_id":  order.SupplierID,
			"lines":        len(order.Items),
			"msg":          "Create purchase order",
		},
		order,
	)

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	var query struct {
		OrganizationID *int   `form:"organization_id"`
		SupplierID     *int   `form:"supplier_id"`
		Status         string `form:"status"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()

	if query.OrganizationID != nil {
		conditions.AddCondition("organization_id", *query.OrganizationID)
	}
	if query.SupplierID != nil {
		conditions.AddCondition("supplier_id", *query.SupplierID)
	}
	if query.Status != "" {
		conditions.AddCondition("status", query.Status)
	}

	ordersList, err := h.OrderRepository.GetOrdersBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}

	c.JSON(http.StatusOK, ordersList)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.OrderRepository.GetOrder(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// requireOrderRole resolves the order's organization and checks the
// caller's membership role there.
func (h *OrderHandler) requireOrderRole(c *gin.Context, orderID int, required roles.Role) bool {
	order, err := h.OrderRepository.GetOrder(orderID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return false
	}

	return h.Guard.Require(c, order.OrganizationID, required)
}

func (h *OrderHandler) ReceiveItems(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.requireOrderRole(c, id, roles.Member) {
		return
	}

	order, err := h.Receiving.ReceiveItems(id, req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to receive items", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"receive",
		map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       string(order.Status),
			"msg":          "Receive purchase order items",
		},
		order,
	)

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	status, err := metadata.NewOrderStatus(req.Status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order status", "details": err.Error()})
		return
	}

	if !h.requireOrderRole(c, id, roles.Member) {
		return
	}

	if err := h.OrderRepository.UpdateStatus(id, status); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update order status", "details": err.Error()})
		return
	}

	order, err := h.OrderRepository.GetOrder(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch updated order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if !h.requireOrderRole(c, id, roles.Admin) {
		return
	}

	if err := h.OrderRepository.DeleteOrder(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order deleted successfully"})
}
