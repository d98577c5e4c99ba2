package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/pkg/errs"
)

// ProductPageSize 商品列表每页条数
const ProductPageSize = 5

type ProductService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	storage    ImageStorage
	fetcher    *RemoteFetcher
	logger     *zap.Logger
}

// NewProductService fetcher 为 nil 时忽略 image_url
func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	storage ImageStorage,
	fetcher *RemoteFetcher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		storage:    storage,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// ParseSizes 解析 sizes 字段，空串视为空数组
func ParseSizes(raw string) ([]dto.SizeItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []dto.SizeItem{}, nil
	}
	var items []dto.SizeItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSizes, err)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Size) == "" || item.Quantity < 0 {
			return nil, fmt.Errorf("%w: 第 %d 项不合法", errs.ErrInvalidSizes, i+1)
		}
	}
	if items == nil {
		items = []dto.SizeItem{}
	}
	return items, nil
}

// EscapeDescription 入库前转义
func EscapeDescription(s string) string {
	return html.EscapeString(s)
}

// UnescapeDescription 展示前还原
func UnescapeDescription(s string) string {
	return html.UnescapeString(s)
}

// List 最新在前，每页 ProductPageSize 条
func (s *ProductService) List(ctx context.Context, page int) (*dto.ProductIndexPage, error) {
	if page < 1 {
		page = 1
	}
	products, total, err := s.repo.List(ctx, page, ProductPageSize)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	items := make([]dto.ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, dto.ProductListItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.StringFixed(2),
			Sale:     p.Sale,
			ImageURL: s.imageURL(p.CurrentImage()),
		})
	}

	lastPage := int((total + ProductPageSize - 1) / ProductPageSize)
	if lastPage < 1 {
		lastPage = 1
	}
	return &dto.ProductIndexPage{
		Data:     items,
		Total:    total,
		Page:     page,
		PageSize: ProductPageSize,
		LastPage: lastPage,
	}, nil
}

// CategoryOptions 分类 id/name 投影，表单下拉用
func (s *ProductService) CategoryOptions(ctx context.Context) ([]dto.CategoryOption, error) {
	list, err := s.categories.ListOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	return toCategoryOptions(list), nil
}

// Create 新建商品：商品行、图片行、分类关联、尺码行在同一事务
// 事务失败时回收已保存的图片
func (s *ProductService) Create(ctx context.Context, req *dto.ProductReq) (*model.Product, error) {
	in, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: EscapeDescription(req.Description),
		Price:       in.price,
		Sale:        req.Sale,
	}

	var saved string
	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		if err := tx.Create(ctx, product); err != nil {
			return fmt.Errorf("创建商品失败: %w", err)
		}

		ref, err := s.storage.Save(ctx, in.upload)
		if err != nil {
			return err
		}
		saved = ref

		if err := tx.CreateImage(ctx, &model.ProductImage{ProductID: product.ID, Url: ref}); err != nil {
			return fmt.Errorf("保存图片记录失败: %w", err)
		}
		if err := tx.AttachCategories(ctx, product, in.categories); err != nil {
			return fmt.Errorf("关联分类失败: %w", err)
		}
		if err := tx.CreateDetails(ctx, toDetails(product.ID, in.sizes)); err != nil {
			return fmt.Errorf("保存尺码失败: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discard(ctx, saved)
		return nil, err
	}

	s.logger.Info("product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Show 详情，描述已反转义
func (s *ProductService) Show(ctx context.Context, id int64) (*dto.ProductResp, error) {
	product, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toProductResp(product)
	return &resp, nil
}

// EditForm 详情加分类下拉
func (s *ProductService) EditForm(ctx context.Context, id int64) (*dto.ProductFormPage, error) {
	product, err := s.Show(ctx, id)
	if err != nil {
		return nil, err
	}
	options, err := s.CategoryOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductFormPage{Product: product, Categories: options}, nil
}

// Update 更新商品
// 图片追加新行，分类同步为提交的集合，尺码整体替换
// 新图片在事务内保存，旧图片在提交后删除
func (s *ProductService) Update(ctx context.Context, id int64, req *dto.ProductReq) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var prev, next string
	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		current, err := tx.GetCurrentImage(ctx, id)
		if err != nil {
			return fmt.Errorf("查询当前图片失败: %w", err)
		}
		if current != nil {
			prev = current.Url
		}

		// 旧文件留到提交之后再删，回滚时当前图片行仍然可用
		next = prev
		if in.upload != nil {
			if next, err = s.storage.Save(ctx, in.upload); err != nil {
				return err
			}
		}

		product.Name = req.Name
		product.Description = EscapeDescription(req.Description)
		product.Price = in.price
		product.Sale = req.Sale
		if err := tx.Update(ctx, product); err != nil {
			return fmt.Errorf("更新商品失败: %w", err)
		}

		if err := tx.CreateImage(ctx, &model.ProductImage{ProductID: id, Url: next}); err != nil {
			return fmt.Errorf("保存图片记录失败: %w", err)
		}
		if err := tx.SyncCategories(ctx, product, in.categories); err != nil {
			return fmt.Errorf("同步分类失败: %w", err)
		}
		if err := tx.DeleteDetailsByProductID(ctx, id); err != nil {
			return fmt.Errorf("清理尺码失败: %w", err)
		}
		if err := tx.CreateDetails(ctx, toDetails(id, in.sizes)); err != nil {
			return fmt.Errorf("保存尺码失败: %w", err)
		}
		return nil
	})
	if err != nil {
		if next != prev {
			s.discard(ctx, next)
		}
		return nil, err
	}
	if next != prev {
		s.discard(ctx, prev)
	}

	s.logger.Info("product updated", zap.Int64("id", id), zap.Bool("image_replaced", next != prev))
	return product, nil
}

// Destroy 先删子记录再删商品，最后删除图片文件
// 图片删除失败时整个事务回滚
func (s *ProductService) Destroy(ctx context.Context, id int64) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx repository.ProductRepository) error {
		current, err := tx.GetCurrentImage(ctx, id)
		if err != nil {
			return fmt.Errorf("查询当前图片失败: %w", err)
		}
		ref := ""
		if current != nil {
			ref = current.Url
		}

		if err := tx.DeleteImagesByProductID(ctx, id); err != nil {
			return fmt.Errorf("删除图片记录失败: %w", err)
		}
		if err := tx.DeleteDetailsByProductID(ctx, id); err != nil {
			return fmt.Errorf("删除尺码失败: %w", err)
		}
		if err := tx.DetachAllCategories(ctx, product); err != nil {
			return fmt.Errorf("解除分类失败: %w", err)
		}
		if err := tx.Delete(ctx, id); err != nil {
			return fmt.Errorf("删除商品失败: %w", err)
		}
		return s.storage.Delete(ctx, ref)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}

// PruneImages 每个商品只保留最新的 keep 条图片记录
func (s *ProductService) PruneImages(ctx context.Context, keep int) (int64, error) {
	deleted, err := s.repo.PruneImages(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("清理图片记录失败: %w", err)
	}
	s.logger.Info("product images pruned", zap.Int64("deleted", deleted), zap.Int("keep", keep))
	return deleted, nil
}

// ==================== 私有方法 ====================

type productInput struct {
	price      decimal.Decimal
	sizes      []dto.SizeItem
	upload     *Upload
	categories []model.Category
}

// prepare 在任何写操作之前完成所有输入校验
func (s *ProductService) prepare(ctx context.Context, req *dto.ProductReq) (*productInput, error) {
	sizes, err := ParseSizes(req.Sizes)
	if err != nil {
		return nil, err
	}

	price := decimal.Zero
	if raw := strings.TrimSpace(req.Price); raw != "" {
		price, err = decimal.NewFromString(raw)
	}
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: price 必须是非负数", errs.ErrValidation)
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	upload, err := s.resolveUpload(ctx, req)
	if err != nil {
		return nil, err
	}

	return &productInput{
		price:      price.Round(2),
		sizes:      sizes,
		upload:     upload,
		categories: categories,
	}, nil
}

func (s *ProductService) resolveCategories(ctx context.Context, ids []int64) ([]model.Category, error) {
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	categories, err := s.categories.ListByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	if len(categories) != len(unique) {
		return nil, errs.ErrUnknownCategory
	}
	return categories, nil
}

// resolveUpload 文件优先，其次 image_url
func (s *ProductService) resolveUpload(ctx context.Context, req *dto.ProductReq) (*Upload, error) {
	if req.Image != nil {
		return NewUploadFromFile(req.Image)
	}
	if req.ImageURL != "" && s.fetcher != nil {
		return s.fetcher.Fetch(ctx, req.ImageURL)
	}
	return nil, nil
}

// discard 回收事务失败后遗留的图片文件
func (s *ProductService) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.storage.Delete(ctx, ref); err != nil {
		s.logger.Warn("orphan image cleanup failed", zap.String("ref", ref), zap.Error(err))
	}
}

func (s *ProductService) imageURL(img *model.ProductImage) string {
	if img == nil {
		return ""
	}
	return s.storage.URL(img.Url)
}

func (s *ProductService) toProductResp(p *model.Product) dto.ProductResp {
	details := make([]dto.ProductDetailResp, 0, len(p.Details))
	for _, d := range p.Details {
		details = append(details, dto.ProductDetailResp{Size: d.Size, Quantity: d.Quantity})
	}
	return dto.ProductResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: UnescapeDescription(p.Description),
		Price:       p.Price.StringFixed(2),
		Sale:        p.Sale,
		ImageURL:    s.imageURL(p.CurrentImage()),
		Categories:  toCategoryOptions(p.Categories),
		Details:     details,
		CreatedAt:   p.CreatedAt.Unix(),
	}
}

func toDetails(productID int64, sizes []dto.SizeItem) []model.ProductDetail {
	details := make([]model.ProductDetail, 0, len(sizes))
	for _, item := range sizes {
		details = append(details, model.ProductDetail{
			ProductID: productID,
			Size:      strings.TrimSpace(item.Size),
			Quantity:  item.Quantity,
		})
	}
	return details
}
