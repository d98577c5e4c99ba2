package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"catalog_admin/internal/controller"
	"catalog_admin/internal/middleware"

	_ "catalog_admin/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Category *controller.CategoryController
	Coupon   *controller.CouponController
	Product  *controller.ProductController
	Health   *controller.HealthController
}

// Options 路由选项
type Options struct {
	Logger *zap.Logger
	// UploadsDir 非空时以 /uploads 提供本地图片
	UploadsDir string
}

// SetupRouter 创建引擎并注册所有路由
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger), middleware.Recovery(logger))
	InitRoutes(r, ctls, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// 1. Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 本地图片
	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	if ctls.Health != nil {
		r.GET("/healthz", ctls.Health.Check)
	}

	// 3. 分类
	categories := r.Group("/categories")
	{
		categories.GET("", ctls.Category.Index)
		categories.GET("/data", ctls.Category.Data)
		categories.GET("/create", ctls.Category.Create)
		categories.POST("", ctls.Category.Store)
		categories.GET("/:id/edit", ctls.Category.Edit)
		categories.PUT("/:id", ctls.Category.Update)
		categories.DELETE("/:id", ctls.Category.Destroy)
	}

	// 4. 优惠码
	coupons := r.Group("/coupons")
	{
		coupons.GET("", ctls.Coupon.Index)
		coupons.GET("/data", ctls.Coupon.Data)
		coupons.GET("/create", ctls.Coupon.Create)
		coupons.POST("", ctls.Coupon.Store)
		coupons.GET("/:id/edit", ctls.Coupon.Edit)
		coupons.PUT("/:id", ctls.Coupon.Update)
		coupons.DELETE("/:id", ctls.Coupon.Destroy)
	}

	// 5. 商品
	products := r.Group("/products")
	{
		products.GET("", ctls.Product.Index)
		products.GET("/create", ctls.Product.Create)
		products.POST("", ctls.Product.Store)
		products.GET("/:id", ctls.Product.Show)
		products.GET("/:id/edit", ctls.Product.Edit)
		products.PUT("/:id", ctls.Product.Update)
		products.DELETE("/:id", ctls.Product.Destroy)
	}
}
