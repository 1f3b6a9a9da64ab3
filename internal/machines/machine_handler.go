package machines

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

type MachineHandler struct {
	Repository        *repository.Repository
	MachineRepository *MachineRepository
	Service           *MachineService
	Guard             *organizations.MembershipGuard
	AuditLog          *auditlog.Auditlog
}

func NewMachineHandler(r *repository.Repository, mr *MachineRepository, service *MachineService, guard *organizations.MembershipGuard, a *auditlog.Auditlog) *MachineHandler {
	return &MachineHandler{
		Repository:        r,
		MachineRepository: mr,
		Service:           service,
		Guard:             guard,
		AuditLog:          a,
	}
}

func (h *MachineHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/machines", security.Authorize(roles.Member), h.CreateMachine)
	router.GET("/machines", security.Authorize(roles.Viewer), h.GetMachines)
	router.GET("/machines/:id", security.Authorize(roles.Viewer), h.GetMachine)
	router.PATCH("/machines/:id", security.Authorize(roles.Member), h.UpdateMachine)
	router.DELETE("/machines/:id", security.Authorize(roles.Admin), h.DeleteMachine)
	router.POST("/machines/:id/allocate", security.Authorize(roles.Member), h.AllocateComponents)
	router.PATCH("/machines/:id/tasks/:taskID", security.Authorize(roles.Member), h.CompleteTask)
}

func (h *MachineHandler) CreateMachine(c *gin.Context) {
	var req MachineRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !h.Guard.Require(c, req.OrganizationID, roles.Member) {
		return
	}

	machine, err := h.MachineRepository.PersistMachine(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Machine with same name already registered"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create machine", "details": err.Error()})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"organization_id": machine.OrganizationID,
			"components":      len(machine.Components),
			"msg":             "Assemble machine from catalog components",
		},
		machine,
	)

	c.JSON(http.StatusCreated, machine)
}

func (h *MachineHandler) GetMachines(c *gin.Context) {
	var query struct {
		OrganizationID *int   `form:"organization_id"`
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
	if query.Status != "" {
		conditions.AddCondition("status", query.Status)
	}

	machines, err := h.MachineRepository.GetMachinesBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machines"})
		return
	}

	c.JSON(http.StatusOK, machines)
}

func (h *MachineHandler) GetMachine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	machine, err := h.MachineRepository.GetMachine(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	c.JSON(http.StatusOK, machine)
}

func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	var req PatchMachineRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !h.requireMachineRole(c, req.ID, roles.Member) {
		return
	}

	machine, err := h.MachineRepository.UpdateMachine(&req)
	if err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update machine", "details": err.Error()})
			return
		}
	}

	go h.AuditLog.Log("update", map[string]interface{}{"msg": "Update machine"}, machine)

	c.JSON(http.StatusOK, machine)
}

func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	if !h.requireMachineRole(c, id, roles.Admin) {
		return
	}

	if err := h.MachineRepository.RemoveMachine(id); err != nil {
		switch err.(type) {
		case *custom_error.SampleDataError:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete machine", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted successfully"})
}

// requireMachineRole resolves the machine's organization and checks the
// caller's membership role there.
func (h *MachineHandler) requireMachineRole(c *gin.Context, machineID int, required roles.Role) bool {
	machine, err := h.MachineRepository.GetMachine(machineID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return false
	}

	return h.Guard.Require(c, machine.OrganizationID, required)
}

func (h *MachineHandler) AllocateComponents(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	if !h.requireMachineRole(c, id, roles.Member) {
		return
	}

	transactions, err := h.Service.AllocateComponents(id)
	if err != nil {
		switch err.(type) {
		case *custom_error.InsufficientInventoryError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to allocate components", "details": err.Error()})
			return
		}
	}

	go func() {
		machine, err := h.MachineRepository.GetMachine(id)
		if err != nil {
			return
		}
		h.AuditLog.Log(
			"allocate",
			map[string]interface{}{
				"transactions": len(transactions),
				"msg":          "Allocate machine components from inventory",
			},
			machine,
		)
	}()

	c.JSON(http.StatusCreated, gin.H{"transactions": transactions})
}

func (h *MachineHandler) CompleteTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}
	taskID, err := strconv.Atoi(c.Param("taskID"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !h.requireMachineRole(c, id, roles.Member) {
		return
	}

	schedule, err := h.Service.CompleteTask(id, taskID, *req.Completed)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to update maintenance task", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, schedule)
}
