package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"catalog_admin/internal/model"
	"catalog_admin/pkg/errs"
)

// CouponRepository 优惠码仓储接口
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id int64) error
	FeedQuery(ctx context.Context) *gorm.DB
}

type couponRepo struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠码仓储
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepo{db: db}
}

func (r *couponRepo) Create(ctx context.Context, coupon *model.Coupon) error {
	return errs.FromDB(r.db.WithContext(ctx).Create(coupon).Error)
}

func (r *couponRepo) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, fmt.Errorf("coupon %d: %w", id, errs.FromDB(err))
	}
	return &coupon, nil
}

func (r *couponRepo) Update(ctx context.Context, coupon *model.Coupon) error {
	return errs.FromDB(r.db.WithContext(ctx).Save(coupon).Error)
}

// Delete 无条件删除，id 不存在时静默成功
func (r *couponRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Coupon{}).Error
}

func (r *couponRepo) FeedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Coupon{})
}
