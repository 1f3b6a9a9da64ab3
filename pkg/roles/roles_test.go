package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, Admin.HasPermission(Viewer))
	assert.True(t, Admin.HasPermission(Admin))
	assert.True(t, Member.HasPermission(Viewer))
	assert.False(t, Member.HasPermission(Admin))
	assert.False(t, Viewer.HasPermission(Member))
	assert.True(t, Viewer.HasPermission(Viewer))
}

func TestIsValid(t *testing.T) {
	assert.True(t, Role("admin").IsValid())
	assert.True(t, Role("member").IsValid())
	assert.True(t, Role("viewer").IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestUnknownRoleFallsBackToViewerLevel(t *testing.T) {
	assert.Equal(t, ViewerLevel, Role("something").GetHierarchyLevel())
}
