package model

import (
	"time"

	"github.com/lib/pq"
)

// Session 会话表 对应 sessions（由管理员创建，全体用户共享）
type Session struct {
	SessionID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	SessionNumber int            `gorm:"not null"                                       json:"session_number"` // 未删除记录中唯一
	SessionDate   time.Time      `gorm:"type:timestamptz;not null"                      json:"session_date"`
	DurationHours float64        `gorm:"type:numeric(5,2);not null"                     json:"duration_hours"`
	WeekEndDate   time.Time      `gorm:"type:timestamptz;not null"                      json:"week_end_date"`
	Activities    pq.StringArray `gorm:"type:text[];not null"                           json:"activities"`
	SoftDeleteModel
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }
