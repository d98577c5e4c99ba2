package service

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/pkg/datatable"
	"catalog_admin/pkg/errs"
)

type CategoryService struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

// Parents 可选父分类 (根分类)，excludeID 为编辑中的分类自身
func (s *CategoryService) Parents(ctx context.Context, excludeID int64) ([]dto.CategoryOption, error) {
	list, err := s.repo.ListParents(ctx, excludeID)
	if err != nil {
		return nil, fmt.Errorf("查询父分类失败: %w", err)
	}
	return toCategoryOptions(list), nil
}

// Create 新建分类，parent_id 必须指向已存在的分类
func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryReq) (*model.Category, error) {
	category := &model.Category{
		Name:     req.Name,
		ParentID: req.RootParent(),
	}
	if err := s.checkParentExists(ctx, category.ParentID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	s.logger.Info("category created", zap.Int64("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// GetForEdit 编辑页：分类本身、子分类、可选父分类
func (s *CategoryService) GetForEdit(ctx context.Context, id int64) (*dto.CategoryEditPage, error) {
	category, err := s.repo.GetWithChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	parents, err := s.Parents(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryEditPage{
		Category: toCategoryResp(category),
		Parents:  parents,
	}, nil
}

// Update 覆盖全部字段
// 新的父分类不能是自己或自己的后代
func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.CategoryReq) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parentID := req.RootParent()
	if parentID != nil {
		if *parentID == id {
			return nil, errs.ErrCategoryCycle
		}
		if err := s.checkParentExists(ctx, parentID); err != nil {
			return nil, err
		}
		descendants, err := s.repo.DescendantIDs(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("查询子分类失败: %w", err)
		}
		if slices.Contains(descendants, *parentID) {
			return nil, errs.ErrCategoryCycle
		}
	}

	category.Name = req.Name
	category.ParentID = parentID
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("更新分类失败: %w", err)
	}
	s.logger.Info("category updated", zap.Int64("id", id), zap.String("name", category.Name))
	return category, nil
}

// Delete 无条件删除，不存在的 id 也视为成功
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除分类失败: %w", err)
	}
	s.logger.Info("category deleted", zap.Int64("id", id))
	return nil
}

// Table 列表数据源，parent_id 列显示父分类名
func (s *CategoryService) Table(ctx context.Context, p datatable.Params) (*datatable.Response, error) {
	return datatable.Of[model.CategoryRow](s.repo.FeedQuery(ctx)).
		Select("categories.id, categories.name, categories.parent_id, COALESCE(parents.name, '') AS parent_name").
		Searchable("categories.name", "parents.name").
		Orderable("id", "categories.id").
		Orderable("name", "categories.name").
		Orderable("parent_id", "parents.name").
		DefaultOrder("categories.id DESC").
		EditColumn("parent_id", func(row model.CategoryRow) any { return row.ParentName }).
		AddColumn("edit", func(row model.CategoryRow) any { return fmt.Sprintf("/categories/%d/edit", row.ID) }).
		AddColumn("destroy", func(row model.CategoryRow) any { return fmt.Sprintf("/categories/%d", row.ID) }).
		Make(ctx, p)
}

func (s *CategoryService) checkParentExists(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	exists, err := s.repo.Exists(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("查询父分类失败: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: id=%d", errs.ErrParentNotFound, *parentID)
	}
	return nil
}

func toCategoryOptions(list []model.Category) []dto.CategoryOption {
	options := make([]dto.CategoryOption, 0, len(list))
	for _, c := range list {
		options = append(options, dto.CategoryOption{ID: c.ID, Name: c.Name})
	}
	return options
}

func toCategoryResp(c *model.Category) dto.CategoryResp {
	return dto.CategoryResp{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		Childrens: toCategoryOptions(c.Children),
		CreatedAt: c.CreatedAt.Unix(),
		UpdatedAt: c.UpdatedAt.Unix(),
	}
}
