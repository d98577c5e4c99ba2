package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog_admin/internal/config"
	"catalog_admin/internal/controller"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/internal/router"
	"catalog_admin/internal/service"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type testApp struct {
	db      *gorm.DB
	handler http.Handler
	uploads string
}

func setupCtlTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// setupTestApp 真实的 service/controller/router，sqlite + 临时目录存储
func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)
	db := setupCtlTestDB(t)
	log := zap.NewNop()
	uploads := t.TempDir()

	storage := service.NewLocalStorage(config.StorageConfig{BasePath: uploads, BaseURL: "/uploads"})
	categoryRepo := repository.NewCategoryRepository(db)

	ctls := &router.Controllers{
		Category: controller.NewCategoryController(service.NewCategoryService(categoryRepo, log)),
		Coupon:   controller.NewCouponController(service.NewCouponService(repository.NewCouponRepository(db), log)),
		Product: controller.NewProductController(service.NewProductService(
			repository.NewProductRepository(db), categoryRepo, storage, nil, log,
		)),
		Health: controller.NewHealthController(db),
	}
	r := router.SetupRouter(ctls, router.Options{Logger: log, UploadsDir: uploads})
	return &testApp{db: db, handler: r, uploads: uploads}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) form(method, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) json(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *testApp) multipart(t *testing.T, method, path string, values url.Values, image []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req)
}

func (a *testApp) count(t *testing.T, table string) int64 {
	var n int64
	require.NoError(t, a.db.Table(table).Count(&n).Error)
	return n
}

func decode(t *testing.T, r io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}

func flashCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			return c
		}
	}
	return nil
}
