package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/service"
)

type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// ==================== 查询接口 ====================

// Index 商品列表
// @Summary 商品列表
// @Description 最新在前，每页 5 条
// @Tags Product (商品管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} dto.ProductIndexPage
// @Router /products [get]
func (ctl *ProductController) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	resp, err := ctl.productSvc.List(c.Request.Context(), page)
	if err != nil {
		renderError(c, err)
		return
	}
	resp.Message = popFlash(c)
	c.JSON(http.StatusOK, resp)
}

// Create 新建商品页
// @Summary 新建商品页
// @Tags Product (商品管理)
// @Produce json
// @Success 200 {object} dto.ProductFormPage
// @Router /products/create [get]
func (ctl *ProductController) Create(c *gin.Context) {
	options, err := ctl.productSvc.CategoryOptions(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductFormPage{Categories: options})
}

// Show 商品详情
// @Summary 商品详情
// @Tags Product (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductResp
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (ctl *ProductController) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := ctl.productSvc.Show(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Edit 编辑商品页
// @Summary 编辑商品页
// @Tags Product (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductFormPage
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id}/edit [get]
func (ctl *ProductController) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := ctl.productSvc.EditForm(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ==================== 写接口 ====================

// Store 新建商品
// @Summary 新建商品
// @Tags Product (商品管理)
// @Accept multipart/form-data
// @Param name formData string true "名称"
// @Param description formData string false "描述"
// @Param price formData number false "价格，缺省为 0"
// @Param sale formData int false "折扣 0-100"
// @Param category_ids formData []int true "分类ID" collectionFormat(multi)
// @Param sizes formData string false "尺码 JSON: [{\"size\":\"M\",\"quantity\":5}]"
// @Param image formData file false "图片"
// @Param image_url formData string false "远程图片地址"
// @Success 303 "跳转到 /products"
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{} "分类不存在"
// @Router /products [post]
func (ctl *ProductController) Store(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}
	if _, err := ctl.productSvc.Create(c.Request.Context(), &req); err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/products", "create product success")
}

// Update 更新商品
// @Summary 更新商品
// @Description 图片追加新记录，分类同步为提交的集合，尺码整体替换
// @Tags Product (商品管理)
// @Accept multipart/form-data
// @Param id path int true "商品ID"
// @Param name formData string true "名称"
// @Param description formData string false "描述"
// @Param price formData number false "价格，缺省为 0"
// @Param sale formData int false "折扣 0-100"
// @Param category_ids formData []int true "分类ID" collectionFormat(multi)
// @Param sizes formData string false "尺码 JSON"
// @Param image formData file false "图片"
// @Param image_url formData string false "远程图片地址"
// @Success 303 "跳转到 /products"
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [put]
func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}
	if _, err := ctl.productSvc.Update(c.Request.Context(), id, &req); err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/products", "Update product success")
}

// Destroy 删除商品
// @Summary 删除商品
// @Description 删除图片记录、尺码、分类关联和商品本身，最后删除图片文件
// @Tags Product (商品管理)
// @Param id path int true "商品ID"
// @Success 303 "跳转到 /products"
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{} "图片删除失败，已回滚"
// @Router /products/{id} [delete]
func (ctl *ProductController) Destroy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.productSvc.Destroy(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/products", "Delete product success")
}
