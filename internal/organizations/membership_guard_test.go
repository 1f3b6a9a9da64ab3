package organizations

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type MockMembershipChecker struct {
	mock.Mock
}

func (m *MockMembershipChecker) HasRole(organizationID, userID int, required roles.Role) (bool, error) {
	args := m.Called(organizationID, userID, required)
	return args.Bool(0), args.Error(1)
}

func performGuardedRequest(guard *MembershipGuard, organizationID int, token string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/resources", func(c *gin.Context) {
		if !guard.Require(c, organizationID, roles.Member) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/resources", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestRequireAllowsOrganizationMember(t *testing.T) {
	token, err := security.GenerateJWT("7", "member", "kasia")
	assert.NoError(t, err)

	checker := new(MockMembershipChecker)
	checker.On("HasRole", 3, 7, roles.Member).Return(true, nil)

	recorder := performGuardedRequest(&MembershipGuard{checker: checker}, 3, token)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	checker.AssertExpectations(t)
}

func TestRequireRejectsNonMemberOfTargetOrganization(t *testing.T) {
	token, err := security.GenerateJWT("7", "member", "kasia")
	assert.NoError(t, err)

	checker := new(MockMembershipChecker)
	checker.On("HasRole", 9, 7, roles.Member).Return(false, nil)

	recorder := performGuardedRequest(&MembershipGuard{checker: checker}, 9, token)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Insufficient role in organization")
	checker.AssertExpectations(t)
}

func TestRequireWithoutToken(t *testing.T) {
	checker := new(MockMembershipChecker)

	recorder := performGuardedRequest(&MembershipGuard{checker: checker}, 3, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	checker.AssertNotCalled(t, "HasRole")
}

func TestRequireCheckerFailure(t *testing.T) {
	token, err := security.GenerateJWT("7", "member", "kasia")
	assert.NoError(t, err)

	checker := new(MockMembershipChecker)
	checker.On("HasRole", 3, 7, roles.Member).Return(false, errors.New("connection refused"))

	recorder := performGuardedRequest(&MembershipGuard{checker: checker}, 3, token)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
