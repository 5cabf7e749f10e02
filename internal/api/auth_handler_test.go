package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athlos/gym-app/internal/domain"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/service"
	"athlos/gym-app/internal/testutil"
)

func newRegisterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	users := gormrepo.NewUserRepository(db)
	trainers := gormrepo.NewTrainerRepository(db)
	students := gormrepo.NewStudentRepository(db)
	auth := service.NewAuthService(
		users,
		service.NewProvisioner(trainers, students),
		gormrepo.NewTxManager(db),
		"test-secret",
		0,
	)

	router := gin.New()
	router.POST("/api/v1/auth/register", NewAuthHandler(auth).Register)
	return router
}

func postRegister(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectsPrivilegedRoles(t *testing.T) {
	router := newRegisterRouter(t)

	for _, role := range []string{"system_admin", "gym_admin"} {
		w := postRegister(t, router, map[string]any{
			"firstName": "Eve",
			"email":     "eve." + role + "@example.com",
			"password":  "supersecret",
			"role":      role,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "role %s", role)
	}
}

func TestRegisterAcceptsNonPrivilegedRoles(t *testing.T) {
	router := newRegisterRouter(t)

	w := postRegister(t, router, map[string]any{
		"firstName": "Ana",
		"email":     "ana@example.com",
		"password":  "supersecret",
		"role":      "student",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.RoleStudent, resp.Role)
	assert.Equal(t, "ana@example.com", resp.Email)
}
