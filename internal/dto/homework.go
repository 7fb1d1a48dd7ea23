package dto

// ── 作业模块 DTO ──

// CreateHomeworkRequest 创建作业请求
// 所有者取自认证上下文，请求体中不接受 user 字段
type CreateHomeworkRequest struct {
	Title         string  `json:"title"          binding:"required,max=200"`
	Status        string  `json:"status"         binding:"omitempty,homework_status"`
	DueDate       string  `json:"due_date"       binding:"required"` // "2024-01-02" 或 RFC3339
	StartTime     *string `json:"start_time"     binding:"omitempty,hhmm"`
	EndTime       *string `json:"end_time"       binding:"omitempty,hhmm"`
	FPR           string  `json:"fpr"`
	DPRemark      string  `json:"dp_remark"`
	PenaltyReward string  `json:"penalty_reward"`
	IsImposed     bool    `json:"is_imposed"`
	SessionID     string  `json:"session_id"     binding:"required,uuid"`
}

// UpdateHomeworkRequest 更新作业请求（仅合并提交的字段）
type UpdateHomeworkRequest struct {
	Title         *string `json:"title"          binding:"omitempty,min=1,max=200"`
	Status        *string `json:"status"         binding:"omitempty,homework_status"`
	DueDate       *string `json:"due_date"`
	StartTime     *string `json:"start_time"     binding:"omitempty,hhmm"`
	EndTime       *string `json:"end_time"       binding:"omitempty,hhmm"`
	FPR           *string `json:"fpr"`
	DPRemark      *string `json:"dp_remark"`
	PenaltyReward *string `json:"penalty_reward"`
	IsImposed     *bool   `json:"is_imposed"`
	SessionID     *string `json:"session_id"     binding:"omitempty,uuid"`
}

// HomeworkResponse 作业信息响应
type HomeworkResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Status        string        `json:"status"`
	DueDate       string        `json:"due_date"`
	StartTime     *string       `json:"start_time,omitempty"`
	EndTime       *string       `json:"end_time,omitempty"`
	FPR           string        `json:"fpr"`
	DPRemark      string        `json:"dp_remark"`
	PenaltyReward string        `json:"penalty_reward"`
	IsImposed     bool          `json:"is_imposed"`
	SessionID     string        `json:"session_id"`
	Session       *SessionBrief `json:"session,omitempty"`
	UserID        string        `json:"user_id"`
	User          *UserBrief    `json:"user,omitempty"`
	Lifecycle     string        `json:"lifecycle"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}
