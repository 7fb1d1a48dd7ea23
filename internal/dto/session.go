package dto

// ── 会话模块 DTO ──

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	SessionNumber int      `json:"session_number" binding:"required,min=1"`
	SessionDate   string   `json:"session_date"   binding:"required"` // "2024-01-01" 或 RFC3339
	DurationHours float64  `json:"duration_hours" binding:"required,gt=0,lte=24"`
	WeekEndDate   string   `json:"week_end_date"  binding:"required"`
	Activities    []string `json:"activities"     binding:"required,min=1,dive,required,max=200"`
}

// UpdateSessionRequest 更新会话请求（仅合并提交的字段）
type UpdateSessionRequest struct {
	SessionNumber *int     `json:"session_number" binding:"omitempty,min=1"`
	SessionDate   *string  `json:"session_date"`
	DurationHours *float64 `json:"duration_hours" binding:"omitempty,gt=0,lte=24"`
	WeekEndDate   *string  `json:"week_end_date"`
	Activities    []string `json:"activities"     binding:"omitempty,min=1,dive,required,max=200"`
}

// SessionResponse 会话信息响应
type SessionResponse struct {
	ID            string   `json:"id"`
	SessionNumber int      `json:"session_number"`
	SessionDate   string   `json:"session_date"`
	DurationHours float64  `json:"duration_hours"`
	WeekEndDate   string   `json:"week_end_date"`
	Activities    []string `json:"activities"`
	CreatedBy     string   `json:"created_by,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}
