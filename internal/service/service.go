package service

import (
	"go.uber.org/zap"

	"session-tracker/config"
	"session-tracker/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Session       SessionService
	Homework      HomeworkService
	SessionDetail SessionDetailService
	Notification  NotificationService
	Export        ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) (*Service, error) {
	notificationSvc, err := NewNotificationService(repo, &cfg.Reminder, cfg.Feature.TestNotificationEnabled, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Session:       NewSessionService(repo, logger),
		Homework:      NewHomeworkService(repo, logger),
		SessionDetail: NewSessionDetailService(repo, logger),
		Notification:  notificationSvc,
		Export:        NewExportService(repo, logger),
	}, nil
}
