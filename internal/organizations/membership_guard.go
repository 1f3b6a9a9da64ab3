package organizations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type membershipChecker interface {
	HasRole(organizationID, userID int, required roles.Role) (bool, error)
}

// MembershipGuard enforces per-organization roles on mutating calls. The
// JWT role gates the route; the guard gates the target organization's rows,
// so a member of one organization cannot mutate another's data.
type MembershipGuard struct {
	checker membershipChecker
}

func NewMembershipGuard(repository *OrganizationRepository) *MembershipGuard {
	return &MembershipGuard{checker: repository}
}

// Require aborts the request unless the caller holds at least the required
// role in the organization. Returns false when the request was aborted.
func (g *MembershipGuard) Require(c *gin.Context, organizationID int, required roles.Role) bool {
	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return false
	}

	allowed, err := g.checker.HasRole(organizationID, userID, required)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify organization membership"})
		return false
	}
	if !allowed {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role in organization"})
		return false
	}

	return true
}
