package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"catalog_admin/internal/api/dto"
	"catalog_admin/internal/model"
	"catalog_admin/internal/repository"
	"catalog_admin/pkg/datatable"
	"catalog_admin/pkg/errs"
)

const dateLayout = "2006-01-02"

// CouponTypes 表单可选的优惠类型
var CouponTypes = []string{string(model.CouponTypePercent), string(model.CouponTypeFixed)}

type CouponService struct {
	repo   repository.CouponRepository
	logger *zap.Logger
}

func NewCouponService(repo repository.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CouponService) Create(ctx context.Context, req *dto.CouponReq) (*model.Coupon, error) {
	coupon := &model.Coupon{}
	if err := applyCouponReq(coupon, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("创建优惠码失败: %w", err)
	}
	s.logger.Info("coupon created", zap.Int64("id", coupon.ID), zap.String("name", coupon.Name))
	return coupon, nil
}

func (s *CouponService) Get(ctx context.Context, id int64) (*dto.CouponResp, error) {
	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCouponResp(coupon)
	return &resp, nil
}

// Update 全量覆盖
func (s *CouponService) Update(ctx context.Context, id int64, req *dto.CouponReq) (*model.Coupon, error) {
	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCouponReq(coupon, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, fmt.Errorf("更新优惠码失败: %w", err)
	}
	s.logger.Info("coupon updated", zap.Int64("id", id))
	return coupon, nil
}

// Delete 无条件删除
func (s *CouponService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除优惠码失败: %w", err)
	}
	s.logger.Info("coupon deleted", zap.Int64("id", id))
	return nil
}

func (s *CouponService) Table(ctx context.Context, p datatable.Params) (*datatable.Response, error) {
	return datatable.Of[model.Coupon](s.repo.FeedQuery(ctx)).
		Searchable("name", "type").
		Orderable("id", "id").
		Orderable("name", "name").
		Orderable("type", "type").
		Orderable("value", "value").
		Orderable("expires_at", "expires_at").
		EditColumn("value", func(c model.Coupon) any { return c.Value.StringFixed(2) }).
		EditColumn("expires_at", func(c model.Coupon) any { return time.Time(c.ExpiresAt).Format(dateLayout) }).
		AddColumn("edit", func(c model.Coupon) any { return fmt.Sprintf("/coupons/%d/edit", c.ID) }).
		AddColumn("destroy", func(c model.Coupon) any { return fmt.Sprintf("/coupons/%d", c.ID) }).
		Make(ctx, p)
}

// applyCouponReq 校验金额后写入模型
// 百分比不能超过 100，金额不能为负
func applyCouponReq(coupon *model.Coupon, req *dto.CouponReq) error {
	expires, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.ExpiresAt), time.UTC)
	if err != nil {
		return fmt.Errorf("%w: expires_at 必须是 yyyy-mm-dd 格式", errs.ErrValidation)
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return fmt.Errorf("%w: value 不是合法数字", errs.ErrValidation)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: value 不能为负数", errs.ErrValidation)
	}
	couponType := model.CouponType(req.Type)
	if couponType == model.CouponTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: 百分比优惠不能超过 100", errs.ErrValidation)
	}

	coupon.Name = req.Name
	coupon.Type = couponType
	coupon.Value = value.Round(2)
	coupon.ExpiresAt = datatypes.Date(expires)
	return nil
}

func toCouponResp(c *model.Coupon) dto.CouponResp {
	return dto.CouponResp{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		Value:     c.Value.StringFixed(2),
		ExpiresAt: time.Time(c.ExpiresAt).Format(dateLayout),
	}
}
