package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_admin/internal/model"
	"catalog_admin/pkg/errs"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetWithChildren(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error

	// 树相关查询
	Exists(ctx context.Context, id int64) (bool, error)
	ListParents(ctx context.Context, excludeID int64) ([]model.Category, error)
	DescendantIDs(ctx context.Context, id int64) ([]int64, error)

	// 选项与批量查询
	ListOptions(ctx context.Context) ([]model.Category, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Category, error)

	// FeedQuery 列表数据源：categories LEFT JOIN 父分类
	FeedQuery(ctx context.Context) *gorm.DB
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return errs.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", id, errs.FromDB(err))
	}
	return &category, nil
}

func (r *categoryRepo) GetWithChildren(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&category, id).Error
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", id, errs.FromDB(err))
	}
	return &category, nil
}

// Update 全字段更新，不动 Children
func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return errs.FromDB(r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error)
}

// Delete 无条件删除
// 子分类提升为根分类，商品关联一并移除；id 不存在时静默成功
func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM category_product WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Category{}).Error
	})
}

func (r *categoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListParents 可作为父分类的候选：所有根分类
// excludeID > 0 时排除自身 (编辑页)
func (r *categoryRepo) ListParents(ctx context.Context, excludeID int64) ([]model.Category, error) {
	var list []model.Category
	query := r.db.WithContext(ctx).
		Select("id", "name", "parent_id").
		Where("parent_id IS NULL")
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("name ASC").Find(&list).Error
	return list, err
}

// DescendantIDs 逐层向下收集所有后代 ID
// 已访问集合保证脏数据里存在环时也能结束
func (r *categoryRepo) DescendantIDs(ctx context.Context, id int64) ([]int64, error) {
	visited := map[int64]bool{id: true}
	var result []int64

	frontier := []int64{id}
	for len(frontier) > 0 {
		var children []int64
		err := r.db.WithContext(ctx).
			Model(&model.Category{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if visited[child] {
				continue
			}
			visited[child] = true
			result = append(result, child)
			frontier = append(frontier, child)
		}
	}
	return result, nil
}

func (r *categoryRepo) ListOptions(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	var list []model.Category
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *categoryRepo) FeedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("categories").
		Joins("LEFT JOIN categories parents ON parents.id = categories.parent_id")
}
