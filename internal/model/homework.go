package model

import "time"

// 作业状态
const (
	HomeworkStatusTodo       = "To-Do"
	HomeworkStatusInProgress = "In Progress"
	HomeworkStatusDone       = "Done"
)

// Homework 作业表 对应 homework
type Homework struct {
	HomeworkID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"homework_id"`
	Title         string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Status        string    `gorm:"type:varchar(20);not null;default:'To-Do'"      json:"status"` // To-Do | In Progress | Done
	DueDate       time.Time `gorm:"type:timestamptz;not null"                      json:"due_date"`
	StartTime     *string   `gorm:"type:varchar(5)"                                json:"start_time,omitempty"` // HH:MM
	EndTime       *string   `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	FPR           string    `gorm:"column:fpr;type:text;not null"                  json:"fpr"`
	DPRemark      string    `gorm:"column:dp_remark;type:text;not null"            json:"dp_remark"`
	PenaltyReward string    `gorm:"type:text;not null"                             json:"penalty_reward"`
	IsImposed     bool      `gorm:"not null"                                       json:"is_imposed"`
	SessionID     string    `gorm:"type:uuid;not null"                             json:"session_id"`
	UserID        string    `gorm:"type:uuid;not null"                             json:"user_id"` // 所有者
	SoftDeleteModel

	// 关联
	Session *Session `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
}

// TableName 指定表名
func (Homework) TableName() string { return "homework" }

// OwnedBy 判断作业是否属于指定用户
func (h *Homework) OwnedBy(userID string) bool {
	return h.UserID == userID
}
