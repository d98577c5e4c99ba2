package controller_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/model"
)

func TestCategoryCtl_StoreRedirectsWithFlash(t *testing.T) {
	app := setupTestApp(t)

	w := app.form(http.MethodPost, "/categories", url.Values{"name": {"Shirts"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/categories", w.Header().Get("Location"))

	cookie := flashCookie(w)
	require.NotNil(t, cookie)

	w = app.get("/categories", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.CategoryIndexPage
	decode(t, w.Body, &page)
	assert.Equal(t, "Create New Category: Shirts Success", page.Message)
	assert.Equal(t, "/categories/data", page.FeedURL)
}

func TestCategoryCtl_StoreValidation(t *testing.T) {
	app := setupTestApp(t)

	w := app.form(http.MethodPost, "/categories", url.Values{"name": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.form(http.MethodPost, "/categories", url.Values{"name": {"X"}, "parent_id": {"42"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]any
	decode(t, w.Body, &body)
	assert.EqualValues(t, http.StatusUnprocessableEntity, body["code"])
	assert.Zero(t, app.count(t, "categories"))
}

func TestCategoryCtl_DataShowsParentName(t *testing.T) {
	app := setupTestApp(t)
	root := &model.Category{Name: "Clothing"}
	require.NoError(t, app.db.Create(root).Error)
	require.NoError(t, app.db.Create(&model.Category{Name: "Shirts", ParentID: &root.ID}).Error)

	w := app.get("/categories/data?draw=4&start=0&length=10&order[0][column]=1&order[0][dir]=asc&columns[1][data]=name")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Draw            int              `json:"draw"`
		RecordsTotal    int64            `json:"recordsTotal"`
		RecordsFiltered int64            `json:"recordsFiltered"`
		Data            []map[string]any `json:"data"`
	}
	decode(t, w.Body, &resp)
	assert.Equal(t, 4, resp.Draw)
	assert.Equal(t, int64(2), resp.RecordsTotal)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Clothing", resp.Data[0]["name"])
	assert.Equal(t, "", resp.Data[0]["parent_id"])
	assert.Equal(t, "Clothing", resp.Data[1]["parent_id"])
	assert.Equal(t, fmt.Sprintf("/categories/%d/edit", root.ID), resp.Data[0]["edit"])
}

func TestCategoryCtl_EditAndUpdate(t *testing.T) {
	app := setupTestApp(t)
	root := &model.Category{Name: "Clothing"}
	require.NoError(t, app.db.Create(root).Error)
	child := &model.Category{Name: "Shirts", ParentID: &root.ID}
	require.NoError(t, app.db.Create(child).Error)

	w := app.get(fmt.Sprintf("/categories/%d/edit", root.ID))
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.CategoryEditPage
	decode(t, w.Body, &page)
	assert.Len(t, page.Category.Childrens, 1)
	assert.Empty(t, page.Parents)

	assert.Equal(t, http.StatusNotFound, app.get("/categories/999/edit").Code)
	assert.Equal(t, http.StatusBadRequest, app.get("/categories/abc/edit").Code)

	// 挂到自己的子分类下
	w = app.form(http.MethodPut, fmt.Sprintf("/categories/%d", root.ID),
		url.Values{"name": {"Clothing"}, "parent_id": {fmt.Sprint(child.ID)}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.form(http.MethodPut, fmt.Sprintf("/categories/%d", child.ID), url.Values{"name": {"Tees"}, "parent_id": {""}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := flashCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, strings.Contains(cookie.Value, "Tees"))

	var got model.Category
	require.NoError(t, app.db.First(&got, child.ID).Error)
	assert.Equal(t, "Tees", got.Name)
	assert.Nil(t, got.ParentID)

	w = app.form(http.MethodPut, "/categories/999", url.Values{"name": {"Ghost"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryCtl_Destroy(t *testing.T) {
	app := setupTestApp(t)
	c := &model.Category{Name: "Bags"}
	require.NoError(t, app.db.Create(c).Error)

	for _, id := range []int64{c.ID, 999} {
		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil)
		w := app.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.DeleteResp
		decode(t, w.Body, &resp)
		assert.Equal(t, dto.DeleteResp{Status: true, Message: "Delete successfully"}, resp)
	}
	assert.Zero(t, app.count(t, "categories"))
}

func TestCategoryCtl_CreateForm(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.db.Create(&model.Category{Name: "Root"}).Error)

	w := app.get("/categories/create")
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.CategoryCreatePage
	decode(t, w.Body, &page)
	require.Len(t, page.Parents, 1)
	assert.Equal(t, "Root", page.Parents[0].Name)
}
