package dto

// ── 通用嵌套响应 ──

// UserBrief 用户简要信息（管理员视图中附带）
type UserBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionBrief 会话简要信息（作业列表中附带）
type SessionBrief struct {
	ID            string `json:"id"`
	SessionNumber int    `json:"session_number"`
	SessionDate   string `json:"session_date"`
}

// ListQuery 管理员审计查询参数
type ListQuery struct {
	IncludeDeleted bool `form:"include_deleted"`
}
