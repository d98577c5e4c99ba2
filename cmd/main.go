package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog_admin/internal/config"
	"catalog_admin/internal/controller"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/internal/router"
	"catalog_admin/internal/service"
	"catalog_admin/internal/task"
	"catalog_admin/pkg/database"
	"catalog_admin/pkg/logger"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalog-admin",
		Short:        "商品目录后台：分类、优惠码、商品",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (yaml/json/toml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "启动 HTTP 服务 (默认)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "只执行自动建表/迁移",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "prune-images",
			Short: "立即执行一次旧图片记录清理",
			RunE:  runPruneImages,
		},
	)
	return root
}

// ==================== 子命令 ====================

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 1. 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}

	// 2. 初始化依赖
	deps, err := initDependencies(cfg, db, log)
	if err != nil {
		return err
	}

	// 3. 启动定时任务
	tasks, err := initTasks(cfg, deps, log)
	if err != nil {
		return err
	}

	// 4. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:     log,
		UploadsDir: deps.UploadsDir,
	})

	// 5. 启动服务
	return startServer(cfg, r, tasks, log)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if _, err := initDatabase(cfg); err != nil {
		return err
	}
	log.Info("migration finished", zap.String("driver", cfg.Database.Driver))
	return nil
}

func runPruneImages(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	deps, err := initDependencies(cfg, db, log)
	if err != nil {
		return err
	}

	prune := task.NewImagePruneTask(deps.Services.Product, cfg.Task.ImagePrune.Keep, log)
	deleted, err := prune.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d image rows\n", deleted)
	return nil
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	UploadsDir  string
}

// Repositories 仓库集合
type Repositories struct {
	Category repository.CategoryRepository
	Coupon   repository.CouponRepository
	Product  repository.ProductRepository
}

// Services 服务集合
type Services struct {
	Storage  service.ImageStorage
	Category *service.CategoryService
	Coupon   *service.CouponService
	Product  *service.ProductService
}

// ==================== 初始化函数 ====================

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// initDatabase 初始化数据库并自动迁移
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.InitDB(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}, model.All()...)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Dependencies, error) {
	// -------- Repo 层 --------
	repos := &Repositories{
		Category: repository.NewCategoryRepository(db),
		Coupon:   repository.NewCouponRepository(db),
		Product:  repository.NewProductRepository(db),
	}

	// -------- 存储 --------
	storage, err := service.NewImageStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("存储服务初始化失败: %w", err)
	}
	uploadsDir := ""
	if local, ok := storage.(*service.LocalStorage); ok {
		uploadsDir = local.Root()
	}
	fetcher := service.NewRemoteFetcher(cfg.Storage.FetchTimeout)

	// -------- 业务服务 --------
	services := &Services{
		Storage:  storage,
		Category: service.NewCategoryService(repos.Category, log.Named("category")),
		Coupon:   service.NewCouponService(repos.Coupon, log.Named("coupon")),
		Product:  service.NewProductService(repos.Product, repos.Category, storage, fetcher, log.Named("product")),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Category: controller.NewCategoryController(services.Category),
		Coupon:   controller.NewCouponController(services.Coupon),
		Product:  controller.NewProductController(services.Product),
		Health:   controller.NewHealthController(db),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		UploadsDir:  uploadsDir,
	}, nil
}

// ==================== 定时任务 ====================

// initTasks 注册并启动定时任务
func initTasks(cfg *config.Config, deps *Dependencies, log *zap.Logger) (*task.TaskManager, error) {
	manager := task.NewTaskManager(log.Named("task"))

	prune := cfg.Task.ImagePrune
	if prune.Enabled {
		t := task.NewImagePruneTask(deps.Services.Product, prune.Keep, log.Named("task"))
		if err := manager.Register(prune.Spec, t); err != nil {
			return nil, err
		}
	}

	manager.Start()
	return manager, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(cfg *config.Config, r *gin.Engine, tasks *task.TaskManager, log *zap.Logger) error {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: servertiming.Middleware(r, nil),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := tasks.Stop(ctx); err != nil {
		log.Warn("tasks did not stop in time", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}
	log.Info("server stopped")
	return nil
}
