package model

// SessionDetail 会话详情表 对应 session_details
// 每个 (session_id, user_id) 仅一条，由唯一约束保证；
// 该表没有删除入口，因此不嵌入软删除字段，唯一约束覆盖全部行
type SessionDetail struct {
	DetailID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"detail_id"`
	SessionID           string  `gorm:"type:uuid;not null"                             json:"session_id"`
	UserID              string  `gorm:"type:uuid;not null"                             json:"user_id"`
	SessionInsights     string  `gorm:"type:text;not null"                             json:"session_insights"`
	WeekAchievement     string  `gorm:"type:text;not null"                             json:"week_achievement"`
	Decision            string  `gorm:"type:text;not null"                             json:"decision"`
	TotalProfit         float64 `gorm:"type:numeric(14,2);not null"                    json:"total_profit"`
	InvoiceProfit       float64 `gorm:"type:numeric(14,2);not null"                    json:"invoice_profit"`
	FutureProfit        float64 `gorm:"type:numeric(14,2);not null"                    json:"future_profit"`
	CostReductionProfit float64 `gorm:"type:numeric(14,2);not null"                    json:"cost_reduction_profit"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (SessionDetail) TableName() string { return "session_details" }
