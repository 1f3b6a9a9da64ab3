package roles

// Role represents a member's permission level inside an organization.
type Role string

const (
	Viewer Role = "viewer"
	Member Role = "member"
	Admin  Role = "admin"
)

type HierarchyLevel int

const (
	ViewerLevel HierarchyLevel = 1
	MemberLevel HierarchyLevel = 2
	AdminLevel  HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Viewer:
		return ViewerLevel
	case Member:
		return MemberLevel
	case Admin:
		return AdminLevel
	default:
		return ViewerLevel
	}
}

// HasPermission reports whether the role covers the required role.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Viewer, Member, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
