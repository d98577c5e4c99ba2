package model

import (
	"time"
)

// BaseModel 所有后台表的公共字段
// 后台删除均为物理删除，不带 DeletedAt
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All 需要自动迁移的全部模型，顺序即建表顺序
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Coupon{},
		&Product{}, &ProductImage{}, &ProductDetail{},
	}
}
