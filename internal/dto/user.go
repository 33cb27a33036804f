package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数（管理员）
type UserListRequest struct {
	PaginationRequest
	Role     string `form:"role"     binding:"omitempty,oneof=student teacher admin"`
	Approved *bool  `form:"approved"`
	Keyword  string `form:"keyword"  binding:"omitempty,max=50"`
}
