package dto

// ── 管理员模块 DTO ──

// AppointmentStatsResponse 预约统计响应
// 单趟聚合：pending + approved + rejected == total
type AppointmentStatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
