package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_admin/internal/model"
	"catalog_admin/pkg/errs"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetWithRelations(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)

	// 图片操作
	CreateImage(ctx context.Context, image *model.ProductImage) error
	GetCurrentImage(ctx context.Context, productID int64) (*model.ProductImage, error)
	DeleteImagesByProductID(ctx context.Context, productID int64) error
	PruneImages(ctx context.Context, keep int) (int64, error)

	// 尺码库存
	CreateDetails(ctx context.Context, details []model.ProductDetail) error
	DeleteDetailsByProductID(ctx context.Context, productID int64) error

	// 分类关联
	AttachCategories(ctx context.Context, product *model.Product, categories []model.Category) error
	SyncCategories(ctx context.Context, product *model.Product, categories []model.Category) error
	DetachAllCategories(ctx context.Context, product *model.Product) error

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
	Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product %d: %w", id, errs.FromDB(err))
	}
	return &product, nil
}

// GetWithRelations 详情/编辑页用，带图片、尺码、分类
func (r *productRepo) GetWithRelations(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.id ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", id, errs.FromDB(err))
	}
	return &product, nil
}

// Update 只更新商品本身字段
func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

// List 最新在前的分页列表，带图片用于缩略图
func (r *productRepo) List(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 5
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepo) CreateImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetCurrentImage 最新追加的图片行，没有时返回 nil, nil
func (r *productRepo) GetCurrentImage(ctx context.Context, productID int64) (*model.ProductImage, error) {
	var image model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepo) DeleteImagesByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductImage{}).Error
}

// PruneImages 每个商品只保留最新的 keep 行图片记录，返回删除行数
// 只删记录不删文件：旧行与新行可能指向同一个文件
func (r *productRepo) PruneImages(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM product_images
		WHERE id IN (
			SELECT pi.id FROM product_images pi
			WHERE (
				SELECT COUNT(*) FROM product_images newer
				WHERE newer.product_id = pi.product_id AND newer.id > pi.id
			) >= ?
		)`, keep)
	return result.RowsAffected, result.Error
}

func (r *productRepo) CreateDetails(ctx context.Context, details []model.ProductDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *productRepo) DeleteDetailsByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductDetail{}).Error
}

// AttachCategories 追加关联，不影响已有关联
func (r *productRepo) AttachCategories(ctx context.Context, product *model.Product, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(product).
		Omit("Categories.*").
		Association("Categories").
		Append(categories)
}

// SyncCategories 关联集合与 categories 完全一致，多余的解除
func (r *productRepo) SyncCategories(ctx context.Context, product *model.Product, categories []model.Category) error {
	if len(categories) == 0 {
		return r.DetachAllCategories(ctx, product)
	}
	return r.db.WithContext(ctx).
		Model(product).
		Omit("Categories.*").
		Association("Categories").
		Replace(categories)
}

func (r *productRepo) DetachAllCategories(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).
		Model(product).
		Association("Categories").
		Clear()
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
