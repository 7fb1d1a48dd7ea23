package dto

// ── 会话详情模块 DTO ──

// UpsertSessionDetailRequest 写入会话详情请求
// 仅提交的字段会覆盖已有值；首次写入时未提交字段取零值
type UpsertSessionDetailRequest struct {
	SessionInsights     *string  `json:"session_insights"      binding:"omitempty,max=10000"`
	WeekAchievement     *string  `json:"week_achievement"      binding:"omitempty,max=10000"`
	Decision            *string  `json:"decision"              binding:"omitempty,max=10000"`
	TotalProfit         *float64 `json:"total_profit"`
	InvoiceProfit       *float64 `json:"invoice_profit"`
	FutureProfit        *float64 `json:"future_profit"`
	CostReductionProfit *float64 `json:"cost_reduction_profit"`
}

// SessionDetailResponse 会话详情响应
// 用户尚未填写时返回零值默认记录，而不是 404
type SessionDetailResponse struct {
	SessionID           string     `json:"session_id"`
	UserID              string     `json:"user_id"`
	SessionInsights     string     `json:"session_insights"`
	WeekAchievement     string     `json:"week_achievement"`
	Decision            string     `json:"decision"`
	TotalProfit         float64    `json:"total_profit"`
	InvoiceProfit       float64    `json:"invoice_profit"`
	FutureProfit        float64    `json:"future_profit"`
	CostReductionProfit float64    `json:"cost_reduction_profit"`
	User                *UserBrief `json:"user,omitempty"`
	UpdatedAt           string     `json:"updated_at,omitempty"`
}
