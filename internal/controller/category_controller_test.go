package controller

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryController(t *testing.T) (*CategoryController, *repository.CategoryRepository) {
	t.Helper()
	repo := repository.NewCategoryRepository(newTestDB(t))
	return NewCategoryController(repo), repo
}

func TestCreateCategory(t *testing.T) {
	c, repo := newCategoryController(t)

	router := newTestRouter()
	router.POST("/categories", withClaims(adminClaims()), c.CreateCategory)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories",
		strings.NewReader(`{"name":"Security"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	cat, err := repo.FindByName("Security")
	require.NoError(t, err)
	assert.Equal(t, "Security", cat.Name)

	// names are unique
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/categories",
		strings.NewReader(`{"name":"Security"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateCategoryRenames(t *testing.T) {
	c, repo := newCategoryController(t)
	require.NoError(t, repo.Create(&model.Category{Name: "Old"}))

	cat, err := repo.FindByName("Old")
	require.NoError(t, err)

	router := newTestRouter()
	router.PUT("/categories/:id", withClaims(adminClaims()), c.UpdateCategory)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/categories/"+itoa(cat.ID), strings.NewReader(`{"name":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data model.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "New", res.Data.Name)

	_, err = repo.FindByName("Old")
	assert.Error(t, err)
}
