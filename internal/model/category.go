package model

// Category 商品分类，parent_id 自关联构成分类树
// ParentID 为空的是根分类
type Category struct {
	BaseModel
	Name     string     `gorm:"size:255;not null" json:"name"`
	ParentID *int64     `gorm:"index" json:"parent_id"`
	Children []Category `gorm:"foreignKey:ParentID" json:"childrens,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// IsRoot 是否为根分类
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryRow 列表数据源的一行，带上父分类名
type CategoryRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ParentID   *int64 `json:"parent_id"`
	ParentName string `json:"-"`
}
