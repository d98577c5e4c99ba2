package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/pkg/errs"
)

type productFixture struct {
	db      *gorm.DB
	svc     *ProductService
	storage *memStorage
	cats    []model.Category
}

func newProductFixture(t *testing.T) *productFixture {
	db := setupServiceTestDB(t)
	storage := newMemStorage()
	catRepo := repository.NewCategoryRepository(db)

	var cats []model.Category
	for _, name := range []string{"Shirts", "Summer", "Sale"} {
		c := &model.Category{Name: name}
		require.NoError(t, catRepo.Create(context.Background(), c))
		cats = append(cats, *c)
	}

	svc := NewProductService(repository.NewProductRepository(db), catRepo, storage, nil, testLogger())
	return &productFixture{db: db, svc: svc, storage: storage, cats: cats}
}

func (f *productFixture) count(t *testing.T, table string) int64 {
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func (f *productFixture) shirtReq(t *testing.T) *dto.ProductReq {
	return &dto.ProductReq{
		Name:        "Shirt",
		Description: "<b>new</b>",
		Price:       "25.00",
		Sale:        10,
		CategoryIDs: []int64{f.cats[0].ID, f.cats[1].ID},
		Sizes:       `[{"size":"M","quantity":5}]`,
		Image:       newFileHeader(t, "shirt.png", pngBytes),
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []dto.SizeItem
		wantErr bool
	}{
		{"空串", "", []dto.SizeItem{}, false},
		{"空数组", "[]", []dto.SizeItem{}, false},
		{"null", "null", []dto.SizeItem{}, false},
		{"正常", `[{"size":"M","quantity":5},{"size":"L","quantity":0}]`, []dto.SizeItem{{Size: "M", Quantity: 5}, {Size: "L", Quantity: 0}}, false},
		{"非 JSON", "M=5", nil, true},
		{"不是数组", `{"size":"M"}`, nil, true},
		{"缺少 size", `[{"quantity":1}]`, nil, true},
		{"负数库存", `[{"size":"S","quantity":-1}]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSizes(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidSizes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptionRoundTrip(t *testing.T) {
	for _, s := range []string{`<b>bold</b>`, `Tom & Jerry`, `say "hi"`, `it's <i>fine</i> & "ok"`} {
		escaped := EscapeDescription(s)
		assert.NotContains(t, escaped, "<")
		assert.NotContains(t, escaped, `"`)
		assert.Equal(t, s, UnescapeDescription(escaped))
	}
}

func TestProductService_Create(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.count(t, "products"))
	assert.Equal(t, int64(1), f.count(t, "product_images"))
	assert.Equal(t, int64(2), f.count(t, "category_product"))
	assert.Equal(t, int64(1), f.count(t, "product_details"))
	assert.Len(t, f.storage.files, 1)

	var stored model.Product
	require.NoError(t, f.db.First(&stored, product.ID).Error)
	assert.Equal(t, "&lt;b&gt;new&lt;/b&gt;", stored.Description)

	shown, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "<b>new</b>", shown.Description)
	assert.Equal(t, "25.00", shown.Price)
	assert.Equal(t, []dto.ProductDetailResp{{Size: "M", Quantity: 5}}, shown.Details)
	assert.Len(t, shown.Categories, 2)
	assert.Regexp(t, `^/uploads/2025/01/01/img-\d+\.png$`, shown.ImageURL)
}

func TestProductService_CreateWithoutImage(t *testing.T) {
	f := newProductFixture(t)
	req := f.shirtReq(t)
	req.Image = nil

	product, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	// 图片行照常追加，url 为空
	assert.Equal(t, int64(1), f.count(t, "product_images"))
	shown, err := f.svc.Show(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, shown.ImageURL)
}

func TestProductService_CreateRejectsBeforeWriting(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	req := f.shirtReq(t)
	req.CategoryIDs = []int64{f.cats[0].ID, 999}
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, errs.ErrUnknownCategory)

	req = f.shirtReq(t)
	req.Sizes = "not json"
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, errs.ErrInvalidSizes)

	assert.Zero(t, f.count(t, "products"))
	assert.Empty(t, f.storage.files)
}

func TestProductService_CreateStorageFailureRollsBack(t *testing.T) {
	f := newProductFixture(t)
	f.storage.saveErr = errs.ErrStorage

	_, err := f.svc.Create(context.Background(), f.shirtReq(t))
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.Zero(t, f.count(t, "products"))
}

func TestProductService_CreateFailureDiscardsSavedImage(t *testing.T) {
	f := newProductFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&model.ProductDetail{}))

	_, err := f.svc.Create(context.Background(), f.shirtReq(t))
	require.Error(t, err)

	assert.Zero(t, f.count(t, "products"))
	assert.Empty(t, f.storage.files, "事务失败后已保存的图片应被回收")
}

func TestProductService_Update(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)
	first, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)

	req := f.shirtReq(t)
	req.Name = "Shirt v2"
	req.Price = "30"
	req.Sizes = "[]"
	req.CategoryIDs = []int64{f.cats[2].ID}
	req.Image = newFileHeader(t, "v2.png", pngBytes)

	_, err = f.svc.Update(ctx, product.ID, req)
	require.NoError(t, err)

	shown, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt v2", shown.Name)
	assert.Equal(t, "30.00", shown.Price)
	assert.Empty(t, shown.Details)
	assert.Equal(t, []dto.CategoryOption{{ID: f.cats[2].ID, Name: "Sale"}}, shown.Categories)
	assert.NotEqual(t, first.ImageURL, shown.ImageURL)

	assert.Equal(t, int64(2), f.count(t, "product_images"))
	assert.Zero(t, f.count(t, "product_details"))
	assert.Len(t, f.storage.files, 1, "旧图片文件应被替换")
}

func TestProductService_UpdateKeepsImageWithoutUpload(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)
	before, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)

	req := f.shirtReq(t)
	req.Image = nil
	req.Sizes = `[{"size":"S","quantity":1},{"size":"L","quantity":2}]`
	_, err = f.svc.Update(ctx, product.ID, req)
	require.NoError(t, err)

	after, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ImageURL, after.ImageURL)
	assert.Len(t, after.Details, 2)
	assert.Equal(t, int64(2), f.count(t, "product_images"))
	assert.Len(t, f.storage.files, 1)
}

func TestProductService_UpdateFailureKeepsPreviousImage(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)
	before, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Migrator().DropTable(&model.ProductDetail{}))

	req := f.shirtReq(t)
	req.Image = newFileHeader(t, "v2.png", pngBytes)
	_, err = f.svc.Update(ctx, product.ID, req)
	require.Error(t, err)

	var current model.ProductImage
	require.NoError(t, f.db.Where("product_id = ?", product.ID).Order("id DESC").First(&current).Error)
	assert.Equal(t, before.ImageURL, "/uploads/"+current.Url)
	assert.Contains(t, f.storage.files, current.Url, "回滚后当前图片文件必须仍然存在")
	assert.Len(t, f.storage.files, 1, "新上传的图片应被回收")
	assert.Equal(t, int64(1), f.count(t, "product_images"))
}

func TestProductService_UpdateLogsStaleImageCleanupFailure(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	f.svc.logger = zap.New(core)

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)

	f.storage.deleteErr = errors.New("disk busy")
	req := f.shirtReq(t)
	req.Image = newFileHeader(t, "v2.png", pngBytes)
	_, err = f.svc.Update(ctx, product.ID, req)
	require.NoError(t, err, "提交后旧图片删除失败不影响更新结果")

	assert.Len(t, f.storage.files, 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "orphan image cleanup failed", logs.All()[0].Message)
}

func TestProductService_UpdateNotFound(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.svc.Update(context.Background(), 404, f.shirtReq(t))
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, f.storage.files)
}

func TestProductService_Destroy(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.Destroy(ctx, product.ID))
	for _, table := range []string{"products", "product_images", "product_details", "category_product"} {
		assert.Zero(t, f.count(t, table), table)
	}
	assert.Empty(t, f.storage.files)
	assert.Equal(t, int64(3), f.count(t, "categories"))

	assert.ErrorIs(t, f.svc.Destroy(ctx, product.ID), errs.ErrNotFound)
}

func TestProductService_DestroyWithoutImageRows(t *testing.T) {
	f := newProductFixture(t)
	product := &model.Product{Name: "Bare"}
	require.NoError(t, f.db.Create(product).Error)

	f.storage.deleteErr = errors.New("must not be called with a real ref")
	assert.NoError(t, f.svc.Destroy(context.Background(), product.ID))
	assert.Zero(t, f.count(t, "products"))
}

func TestProductService_DestroyStorageFailureRollsBack(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)

	f.storage.deleteErr = errs.ErrStorage
	assert.ErrorIs(t, f.svc.Destroy(ctx, product.ID), errs.ErrStorage)

	assert.Equal(t, int64(1), f.count(t, "products"))
	assert.Equal(t, int64(1), f.count(t, "product_images"))
	assert.Equal(t, int64(2), f.count(t, "category_product"))
}

func TestProductService_List(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := f.svc.Create(ctx, f.shirtReq(t))
		require.NoError(t, err)
	}

	page, err := f.svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, ProductPageSize, page.PageSize)
	require.Len(t, page.Data, 2)
	assert.NotEmpty(t, page.Data[0].ImageURL)

	page, err = f.svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Data, ProductPageSize)
	assert.Greater(t, page.Data[0].ID, page.Data[1].ID)
}

func TestProductService_EditFormAndPrune(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, f.shirtReq(t))
	require.NoError(t, err)
	req := f.shirtReq(t)
	req.Image = nil
	_, err = f.svc.Update(ctx, product.ID, req)
	require.NoError(t, err)

	form, err := f.svc.EditForm(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, form.Categories, 3)
	require.NotNil(t, form.Product)
	assert.Equal(t, "Shirt", form.Product.Name)

	deleted, err := f.svc.PruneImages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	after, err := f.svc.Show(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, form.Product.ImageURL, after.ImageURL)
}
