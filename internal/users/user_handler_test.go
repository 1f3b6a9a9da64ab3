package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserRole(id int, role string) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegisterUser(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	repo.On("PersistUser", mock.AnythingOfType("models.CreateUserRequest"), mock.Anything).
		Run(func(args mock.Arguments) {
			hashed := args.Get(1).([]byte)
			assert.NoError(t, bcrypt.CompareHashAndPassword(hashed, []byte("hunter2secure")))
		}).
		Return(nil)

	router := setupTestRouter()
	router.POST("/users", handler.RegisterUser)

	payload, _ := json.Marshal(map[string]string{
		"username": "kasia",
		"email":    "kasia@example.com",
		"password": "hunter2secure",
		"role":     "member",
	})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	repo.AssertExpectations(t)
}

func TestRegisterUserRejectsInvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	router := setupTestRouter()
	router.POST("/users", handler.RegisterUser)

	payload, _ := json.Marshal(map[string]string{
		"username": "kasia",
		"email":    "kasia@example.com",
		"password": "hunter2secure",
		"role":     "superuser",
	})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	repo.AssertNotCalled(t, "PersistUser")
}

func TestRegisterUserRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	router := setupTestRouter()
	router.POST("/users", handler.RegisterUser)

	payload, _ := json.Marshal(map[string]string{
		"username": "kasia",
		"email":    "kasia@example.com",
		"password": "short",
	})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetUserList(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	repo.On("GetUsers").Return([]models.User{
		{ID: 1, Username: "kasia", Email: "kasia@example.com", Role: "admin"},
		{ID: 2, Username: "tomek", Email: "tomek@example.com", Role: "viewer"},
	}, nil)

	router := setupTestRouter()
	router.GET("/users", handler.GetUserList)

	req, _ := http.NewRequest("GET", "/users", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var users []models.User
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	assert.Equal(t, "kasia", users[0].Username)
}

func TestUpdateUserRole(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	repo.On("UpdateUserRole", 7, "admin").Return(nil)

	router := setupTestRouter()
	router.PATCH("/users/:id/role", handler.UpdateUserRole)

	payload, _ := json.Marshal(map[string]string{"role": "admin"})
	req, _ := http.NewRequest("PATCH", "/users/7/role", bytes.NewBuffer(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	repo.AssertExpectations(t)
}

func TestUpdateUserRoleNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	repo.On("UpdateUserRole", 99, "viewer").Return(fmt.Errorf("user 99 not found"))

	router := setupTestRouter()
	router.PATCH("/users/:id/role", handler.UpdateUserRole)

	payload, _ := json.Marshal(map[string]string{"role": "viewer"})
	req, _ := http.NewRequest("PATCH", "/users/99/role", bytes.NewBuffer(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
