package inventory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/internal/organizations"
	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/pkg/auditlog"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type InventoryHandler struct {
	Repository     *repository.Repository
	ItemRepository *ItemRepository
	Ledger         *LedgerService
	Guard          *organizations.MembershipGuard
	AuditLog       *auditlog.Auditlog
}

func NewInventoryHandler(r *repository.Repository, ir *ItemRepository, ledger *LedgerService, guard *organizations.MembershipGuard, a *auditlog.Auditlog) *InventoryHandler {
	return &InventoryHandler{
		Repository:     r,
		ItemRepository: ir,
		Ledger:         ledger,
		Guard:          guard,
		AuditLog:       a,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/inventory", security.Authorize(roles.Member), h.CreateItem)
	router.GET("/inventory", security.Authorize(roles.Viewer), h.GetItems)
	router.GET("/inventory/low-stock", security.Authorize(roles.Viewer), h.GetLowStock)
	router.GET("/inventory/:id", security.Authorize(roles.Viewer), h.GetItem)
	router.PATCH("/inventory/:id", security.Authorize(roles.Member), h.UpdateItem)
	router.DELETE("/inventory/:id", security.Authorize(roles.Admin), h.DeleteItem)
	router.POST("/inventory/transactions", security.Authorize(roles.Member), h.CreateTransaction)
	router.GET("/inventory/:id/transactions", security.Authorize(roles.Viewer), h.GetTransactions)
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req InventoryItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.Guard.Require(c, req.OrganizationID, roles.Member) {
		return
	}

	item, err := h.ItemRepository.PersistInventoryItem(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Component is already tracked in inventory"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"component_id": item.ComponentID,
			"quantity":     item.Quantity,
			"msg":          "Track component in inventory",
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	var query struct {
		OrganizationID *int `form:"organization_id"`
		ComponentID    *int `form:"component_id"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()

	if query.OrganizationID != nil {
		conditions.AddCondition("organization_id", *query.OrganizationID)
	}
	if query.ComponentID != nil {
		conditions.AddCondition("component_id", *query.ComponentID)
	}

	items, err := h.ItemRepository.GetInventoryItemsBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	organizationID, err := strconv.Atoi(c.Query("organization_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}

	items, err := h.ItemRepository.GetLowStockItems(organizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	item, err := h.ItemRepository.GetInventoryItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req PatchInventoryItemRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !h.requireItemRole(c, req.ID, roles.Member) {
		return
	}

	item, err := h.ItemRepository.UpdateInventoryItem(&req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	if !h.requireItemRole(c, id, roles.Admin) {
		return
	}

	if err := h.ItemRepository.DeleteInventoryItem(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

// requireItemRole resolves the item's organization and checks the caller's
// membership role there.
func (h *InventoryHandler) requireItemRole(c *gin.Context, itemID int, required roles.Role) bool {
	item, err := h.ItemRepository.GetInventoryItem(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return false
	}

	return h.Guard.Require(c, item.OrganizationID, required)
}

func (h *InventoryHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.requireItemRole(c, req.InventoryItemID, roles.Member) {
		return
	}

	transaction, err := h.Ledger.ApplyTransaction(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.InsufficientInventoryError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to apply transaction", "details": err.Error()})
			return
		}
	}

	go h.AuditLog.Log(
		string(transaction.Type),
		map[string]interface{}{
			"inventory_item_id": transaction.InventoryItemID,
			"quantity":          transaction.Quantity,
			"msg":               "Apply inventory transaction",
		},
		transaction,
	)

	c.JSON(http.StatusCreated, transaction)
}

func (h *InventoryHandler) GetTransactions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	transactions, err := h.ItemRepository.GetTransactions(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
