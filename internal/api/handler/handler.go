package handler

import "session-tracker/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Session      *SessionHandler
	Homework     *HomeworkHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Session:      NewSessionHandler(svc.Session, svc.SessionDetail),
		Homework:     NewHomeworkHandler(svc.Homework, svc.Export),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
