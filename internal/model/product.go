package model

import (
	"github.com/shopspring/decimal"
)

// Product 商品
// Description 入库前做 HTML 转义，展示前反转义
type Product struct {
	BaseModel
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Sale        int             `gorm:"default:0"` // 折扣百分比 0-100

	// --- 关联关系 ---
	Images     []ProductImage  `gorm:"foreignKey:ProductID"`
	Details    []ProductDetail `gorm:"foreignKey:ProductID"`
	Categories []Category      `gorm:"many2many:category_product;"`
}

func (Product) TableName() string {
	return "products"
}

// CurrentImage 当前图片：最后追加的那一行
func (p *Product) CurrentImage() *ProductImage {
	var current *ProductImage
	for i := range p.Images {
		if current == nil || p.Images[i].ID > current.ID {
			current = &p.Images[i]
		}
	}
	return current
}

// CategoryIDs 已关联的分类 ID
func (p *Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ProductImage 商品图片
// 每次新建/更新都追加一行，不在原行上修改
type ProductImage struct {
	BaseModel
	ProductID int64  `gorm:"index;not null"`
	Url       string `gorm:"size:512"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// ProductDetail 尺码库存行，更新时整体替换
type ProductDetail struct {
	BaseModel
	ProductID int64  `gorm:"index;not null"`
	Size      string `gorm:"size:50;not null"`
	Quantity  int    `gorm:"default:0"`
}

func (ProductDetail) TableName() string {
	return "product_details"
}
