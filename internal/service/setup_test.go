package service

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog_admin/internal/model"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Category{}, &model.Coupon{},
		&model.Product{}, &model.ProductImage{}, &model.ProductDetail{},
	); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// memStorage 内存图片存储，可注入失败
type memStorage struct {
	files     map[string][]byte
	seq       int
	saveErr   error
	deleteErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(_ context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", nil
	}
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.seq++
	key := fmt.Sprintf("2025/01/01/img-%d.png", m.seq)
	m.files[key] = u.Data
	return key, nil
}

func (m *memStorage) Update(ctx context.Context, u *Upload, prev string) (string, error) {
	return replaceImage(ctx, m, u, prev)
}

func (m *memStorage) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.files, ref)
	return nil
}

func (m *memStorage) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/uploads/" + ref
}
