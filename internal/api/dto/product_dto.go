package dto

import "mime/multipart"

// Request DTO

// ProductReq 创建/更新商品 (multipart 表单)
// sizes 为 JSON 字符串: [{"size":"M","quantity":5}]
// 图片二选一：上传文件 image，或远程地址 image_url
type ProductReq struct {
	Name        string                `form:"name" binding:"required,max=255"`
	Description string                `form:"description"`
	Price       string                `form:"price" binding:"omitempty,numeric"` // 缺省为 0
	Sale        int                   `form:"sale" binding:"omitempty,min=0,max=100"`
	CategoryIDs []int64               `form:"category_ids" binding:"required,min=1,dive,gt=0"`
	Sizes       string                `form:"sizes"`
	Image       *multipart.FileHeader `form:"image"`
	ImageURL    string                `form:"image_url" binding:"omitempty,url"`
}

// SizeItem sizes 数组中的一项
type SizeItem struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Response DTO

// ProductDetailResp 尺码库存
type ProductDetailResp struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ProductResp 商品详情
type ProductResp struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       string              `json:"price"`
	Sale        int                 `json:"sale"`
	ImageURL    string              `json:"image_url"`
	Categories  []CategoryOption    `json:"categories"`
	Details     []ProductDetailResp `json:"details"`
	CreatedAt   int64               `json:"created_at"`
}

// ProductListItem 列表项
type ProductListItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Sale     int    `json:"sale"`
	ImageURL string `json:"image_url"`
}

// ProductIndexPage 商品分页列表
type ProductIndexPage struct {
	Data     []ProductListItem `json:"data"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	LastPage int               `json:"last_page"`
	Message  string            `json:"message,omitempty"`
}

// ProductFormPage 新建/编辑页
type ProductFormPage struct {
	Product    *ProductResp     `json:"product,omitempty"`
	Categories []CategoryOption `json:"categories"`
}
