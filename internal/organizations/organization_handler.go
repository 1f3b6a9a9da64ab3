package organizations

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/pkg/auditlog"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type OrganizationHandler struct {
	Repository *OrganizationRepository
	Guard      *MembershipGuard
	AuditLog   *auditlog.Auditlog
}

func NewOrganizationHandler(repository *OrganizationRepository, guard *MembershipGuard, a *auditlog.Auditlog) *OrganizationHandler {
	return &OrganizationHandler{
		Repository: repository,
		Guard:      guard,
		AuditLog:   a,
	}
}

func (h *OrganizationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/organizations", security.Authorize(roles.Member), h.CreateOrganizationHandler)
	router.GET("/organizations", security.Authorize(roles.Viewer), h.GetMyOrganizationsHandler)
	router.GET("/organizations/:id", security.Authorize(roles.Viewer), h.GetOrganizationHandler)
	router.GET("/organizations/:id/members", security.Authorize(roles.Viewer), h.GetMembersHandler)
	router.POST("/organizations/:id/members", security.Authorize(roles.Admin), h.AddMemberHandler)
	router.DELETE("/organizations/:id/members/:userID", security.Authorize(roles.Admin), h.RemoveMemberHandler)
}

func (h *OrganizationHandler) GetOrganizationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}

	organization, err := h.Repository.GetOrganization(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, organization)
}

func (h *OrganizationHandler) GetMyOrganizationsHandler(c *gin.Context) {
	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	organizations, err := h.Repository.GetOrganizationsByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, organizations)
}

func (h *OrganizationHandler) CreateOrganizationHandler(c *gin.Context) {
	var request OrganizationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	organization, err := h.Repository.PersistOrganization(request)
	if err != nil {
		switch e := err.(type) {
		case *custom_error.UniqueViolationError:
			c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name":     organization.Name,
			"owner_id": organization.OwnerID,
			"msg":      "Create organization",
		},
		organization,
	)

	c.JSON(http.StatusCreated, organization)
}

func (h *OrganizationHandler) GetMembersHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}

	members, err := h.Repository.GetMembers(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *OrganizationHandler) AddMemberHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}

	var request MemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if !h.Guard.Require(c, id, roles.Admin) {
		return
	}

	if err := h.Repository.AddMember(id, request); err != nil {
		switch e := err.(type) {
		case *custom_error.UniqueViolationError:
			c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
		case *custom_error.ForeignKeyViolationError:
			c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
		default:
			if strings.Contains(err.Error(), "invalid role") {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

func (h *OrganizationHandler) RemoveMemberHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
		return
	}
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if !h.Guard.Require(c, id, roles.Admin) {
		return
	}

	if err := h.Repository.RemoveMember(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
