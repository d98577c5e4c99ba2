package dto

// Request DTO

// CouponReq 创建/更新优惠码
type CouponReq struct {
	Name      string `form:"name" json:"name" binding:"required,max=100"`
	Type      string `form:"type" json:"type" binding:"required,oneof=percent fixed"`
	Value     string `form:"value" json:"value" binding:"required,numeric"`
	ExpiresAt string `form:"expires_at" json:"expires_at" binding:"required,datetime=2006-01-02"` // yyyy-mm-dd
}

// Response DTO

// CouponResp 优惠码详情
type CouponResp struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	ExpiresAt string `json:"expires_at"` // yyyy-mm-dd
}

// CouponIndexPage 列表页外壳
type CouponIndexPage struct {
	Title   string `json:"title"`
	FeedURL string `json:"feed_url"`
	Message string `json:"message,omitempty"`
}

// CouponCreatePage 新建页
type CouponCreatePage struct {
	Types []string `json:"types"`
}

// CouponEditPage 编辑页
type CouponEditPage struct {
	Coupon CouponResp `json:"coupon"`
	Types  []string   `json:"types"`
}
