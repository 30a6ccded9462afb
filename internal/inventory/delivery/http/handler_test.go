package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/repository"
	"github.com/tansu/stockroom/pkg/auth"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormItemRepository(db)
	require.NoError(t, repo.AutoMigrate())

	router := mux.NewRouter()
	NewItemHandler(repo).RegisterRoutes(router)
	return router
}

func bearerToken(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := auth.GenerateToken(userID, "test-user", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestItemRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/items", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/items", "Basic abc", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestItemWriteRoutesRequireAdmin(t *testing.T) {
	router := newTestRouter(t)
	employee := bearerToken(t, 7, domain.RoleEmployee)

	rec := doJSON(t, router, http.MethodPost, "/api/items", employee, map[string]interface{}{
		"name": "Whiteboard", "total_quantity": 2,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/items/1/stock", employee, map[string]interface{}{
		"delta": -1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestItemLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	admin := bearerToken(t, 1, domain.RoleAdmin)
	employee := bearerToken(t, 7, domain.RoleEmployee)

	rec := doJSON(t, router, http.MethodPost, "/api/items", admin, map[string]interface{}{
		"name":           "Whiteboard",
		"description":    "Rolling whiteboard",
		"total_quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data domain.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 2, created.Data.AvailableQuantity)

	path := fmt.Sprintf("/api/items/%d", created.Data.ID)

	rec = doJSON(t, router, http.MethodGet, path, employee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/items", employee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, path+"/stock", admin, map[string]interface{}{
		"delta": -1,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Over-adjustment conflicts with the quantity invariant
	rec = doJSON(t, router, http.MethodPatch, path+"/stock", admin, map[string]interface{}{
		"delta": 5,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, path, employee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetItemNotFound(t *testing.T) {
	router := newTestRouter(t)
	admin := bearerToken(t, 1, domain.RoleAdmin)

	rec := doJSON(t, router, http.MethodGet, "/api/items/9999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/items/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
