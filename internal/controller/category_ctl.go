package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/service"
	"catalog_admin/pkg/datatable"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// Index 分类列表页
// @Summary 分类列表页
// @Description 页面外壳，表格数据从 feed_url 拉取
// @Tags Category (分类管理)
// @Produce json
// @Success 200 {object} dto.CategoryIndexPage
// @Router /categories [get]
func (ctl *CategoryController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoryIndexPage{
		Title:   "Categories",
		FeedURL: "/categories/data",
		Message: popFlash(c),
	})
}

// Data 分类表格数据
// @Summary 分类表格数据
// @Description DataTables 服务端模式，parent_id 列显示父分类名称
// @Tags Category (分类管理)
// @Produce json
// @Param draw query int false "请求序号"
// @Param start query int false "偏移"
// @Param length query int false "条数，-1 为全部" default(10)
// @Param search[value] query string false "搜索关键词"
// @Success 200 {object} datatable.Response
// @Failure 500 {object} map[string]interface{}
// @Router /categories/data [get]
func (ctl *CategoryController) Data(c *gin.Context) {
	resp, err := ctl.categorySvc.Table(c.Request.Context(), datatable.ParseParams(c.Request.URL.Query()))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 新建分类页
// @Summary 新建分类页
// @Tags Category (分类管理)
// @Produce json
// @Success 200 {object} dto.CategoryCreatePage
// @Router /categories/create [get]
func (ctl *CategoryController) Create(c *gin.Context) {
	parents, err := ctl.categorySvc.Parents(c.Request.Context(), 0)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryCreatePage{Parents: parents})
}

// Store 新建分类
// @Summary 新建分类
// @Tags Category (分类管理)
// @Accept x-www-form-urlencoded,json
// @Param name formData string true "名称"
// @Param parent_id formData int false "父分类ID，空或0为根分类"
// @Success 303 "跳转到 /categories"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 422 {object} map[string]interface{} "父分类不存在"
// @Router /categories [post]
func (ctl *CategoryController) Store(c *gin.Context) {
	var req dto.CategoryReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}

	category, err := ctl.categorySvc.Create(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/categories", "Create New Category: "+category.Name+" Success")
}

// Edit 编辑分类页
// @Summary 编辑分类页
// @Description 分类本身、子分类和可选父分类
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.CategoryEditPage
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{id}/edit [get]
func (ctl *CategoryController) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, err := ctl.categorySvc.GetForEdit(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category (分类管理)
// @Accept x-www-form-urlencoded,json
// @Param id path int true "分类ID"
// @Param name formData string true "名称"
// @Param parent_id formData int false "父分类ID"
// @Success 303 "跳转到 /categories"
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{} "父分类不存在或形成环"
// @Router /categories/{id} [put]
func (ctl *CategoryController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CategoryReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}

	category, err := ctl.categorySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/categories", "Update category: "+category.Name+" success")
}

// Destroy 删除分类
// @Summary 删除分类
// @Description 无条件删除，id 不存在时同样返回成功
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.DeleteResp
// @Router /categories/{id} [delete]
func (ctl *CategoryController) Destroy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.categorySvc.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResp{Status: true, Message: "Delete successfully"})
}
