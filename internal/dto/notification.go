package dto

// ── 通知模块 DTO ──

// ReferenceResponse 通知来源引用
type ReferenceResponse struct {
	Kind string `json:"kind"` // homework | session
	ID   string `json:"id"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      string             `json:"type"`
	Reference *ReferenceResponse `json:"reference,omitempty"`
	IsRead    bool               `json:"is_read"`
	CreatedAt string             `json:"created_at"`
}

// MarkAllReadResponse 全部已读响应
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ReminderSweepResponse 作业提醒扫描结果
type ReminderSweepResponse struct {
	Created       int                    `json:"created"`
	Notifications []NotificationResponse `json:"notifications"`
}
