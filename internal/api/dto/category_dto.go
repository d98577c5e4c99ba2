package dto

// Request DTO

// CategoryReq 创建/更新分类
// parent_id 传空或 0 表示根分类
type CategoryReq struct {
	Name     string `form:"name" json:"name" binding:"required,max=255"`
	ParentID *int64 `form:"parent_id" json:"parent_id" binding:"omitempty,min=0"`
}

// RootParent 归一化 parent_id：nil 与 0 都视为根
func (r *CategoryReq) RootParent() *int64 {
	if r.ParentID == nil || *r.ParentID == 0 {
		return nil
	}
	return r.ParentID
}

// Response DTO

// CategoryOption 下拉选项 (id/name 投影)
type CategoryOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryResp 分类详情
type CategoryResp struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	ParentID  *int64           `json:"parent_id"`
	Childrens []CategoryOption `json:"childrens"`
	CreatedAt int64            `json:"created_at"`
	UpdatedAt int64            `json:"updated_at"`
}

// CategoryIndexPage 列表页外壳，数据由 feed 接口提供
type CategoryIndexPage struct {
	Title   string `json:"title"`
	FeedURL string `json:"feed_url"`
	Message string `json:"message,omitempty"`
}

// CategoryCreatePage 新建页
type CategoryCreatePage struct {
	Parents []CategoryOption `json:"parents"`
}

// CategoryEditPage 编辑页
type CategoryEditPage struct {
	Category CategoryResp     `json:"category"`
	Parents  []CategoryOption `json:"parents"`
}

// DeleteResp 删除结果
type DeleteResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}
