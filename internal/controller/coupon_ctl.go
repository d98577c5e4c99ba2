package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/service"
	"catalog_admin/pkg/datatable"
)

type CouponController struct {
	couponSvc *service.CouponService
}

func NewCouponController(couponSvc *service.CouponService) *CouponController {
	return &CouponController{couponSvc: couponSvc}
}

// Index 优惠码列表页
// @Summary 优惠码列表页
// @Tags Coupon (优惠码)
// @Produce json
// @Success 200 {object} dto.CouponIndexPage
// @Router /coupons [get]
func (ctl *CouponController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CouponIndexPage{
		Title:   "Coupons",
		FeedURL: "/coupons/data",
		Message: popFlash(c),
	})
}

// Data 优惠码表格数据
// @Summary 优惠码表格数据
// @Tags Coupon (优惠码)
// @Produce json
// @Param draw query int false "请求序号"
// @Param start query int false "偏移"
// @Param length query int false "条数" default(10)
// @Param search[value] query string false "搜索关键词"
// @Success 200 {object} datatable.Response
// @Router /coupons/data [get]
func (ctl *CouponController) Data(c *gin.Context) {
	resp, err := ctl.couponSvc.Table(c.Request.Context(), datatable.ParseParams(c.Request.URL.Query()))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 新建优惠码页
// @Summary 新建优惠码页
// @Tags Coupon (优惠码)
// @Produce json
// @Success 200 {object} dto.CouponCreatePage
// @Router /coupons/create [get]
func (ctl *CouponController) Create(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CouponCreatePage{Types: service.CouponTypes})
}

// Store 新建优惠码
// @Summary 新建优惠码
// @Tags Coupon (优惠码)
// @Accept x-www-form-urlencoded,json
// @Param name formData string true "名称"
// @Param type formData string true "percent | fixed"
// @Param value formData number true "数值"
// @Param expires_at formData string true "到期日 yyyy-mm-dd"
// @Success 303 "跳转到 /coupons"
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "名称重复"
// @Router /coupons [post]
func (ctl *CouponController) Store(c *gin.Context) {
	var req dto.CouponReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}
	if _, err := ctl.couponSvc.Create(c.Request.Context(), &req); err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/coupons", "create coupon success")
}

// Edit 编辑优惠码页
// @Summary 编辑优惠码页
// @Tags Coupon (优惠码)
// @Produce json
// @Param id path int true "优惠码ID"
// @Success 200 {object} dto.CouponEditPage
// @Failure 404 {object} map[string]interface{}
// @Router /coupons/{id}/edit [get]
func (ctl *CouponController) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	coupon, err := ctl.couponSvc.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CouponEditPage{Coupon: *coupon, Types: service.CouponTypes})
}

// Update 更新优惠码
// @Summary 更新优惠码
// @Tags Coupon (优惠码)
// @Accept x-www-form-urlencoded,json
// @Param id path int true "优惠码ID"
// @Param name formData string true "名称"
// @Param type formData string true "percent | fixed"
// @Param value formData number true "数值"
// @Param expires_at formData string true "到期日 yyyy-mm-dd"
// @Success 303 "跳转到 /coupons"
// @Failure 404 {object} map[string]interface{}
// @Router /coupons/{id} [put]
func (ctl *CouponController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CouponReq
	if err := c.ShouldBind(&req); err != nil {
		renderBindError(c, err)
		return
	}
	if _, err := ctl.couponSvc.Update(c.Request.Context(), id, &req); err != nil {
		renderError(c, err)
		return
	}
	redirectWithFlash(c, "/coupons", "Update coupon success")
}

// Destroy 删除优惠码
// @Summary 删除优惠码
// @Tags Coupon (优惠码)
// @Produce json
// @Param id path int true "优惠码ID"
// @Success 200 {object} dto.DeleteResp
// @Router /coupons/{id} [delete]
func (ctl *CouponController) Destroy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.couponSvc.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResp{Status: true, Message: ""})
}
