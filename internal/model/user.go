package model

// User 用户表 对应 users
// 用户由外部认证服务维护，本服务只读取姓名、邮箱与管理员标记
type User struct {
	UserID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email   string `gorm:"type:varchar(255);not null"                     json:"email"`
	IsAdmin bool   `gorm:"not null;default:false"                         json:"is_admin"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
