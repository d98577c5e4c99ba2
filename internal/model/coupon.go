package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CouponType string

const (
	CouponTypePercent CouponType = "percent" // 按百分比折扣
	CouponTypeFixed   CouponType = "fixed"   // 固定金额减免
)

// Coupon 优惠码，无任何关联
type Coupon struct {
	BaseModel
	Name      string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Type      CouponType      `gorm:"size:20;not null" json:"type"`
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	ExpiresAt datatypes.Date  `gorm:"index" json:"expires_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}
