package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Session       SessionRepository
	Homework      HomeworkRepository
	SessionDetail SessionDetailRepository
	Notification  NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Session:       NewSessionRepo(db),
		Homework:      NewHomeworkRepo(db),
		SessionDetail: NewSessionDetailRepo(db),
		Notification:  NewNotificationRepo(db),
	}
}

// Ping 检查数据库连通性（健康检查使用）
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return errors.New("数据库未初始化")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
