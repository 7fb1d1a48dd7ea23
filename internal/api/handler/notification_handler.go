package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"session-tracker/internal/service"
	"session-tracker/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 获取调用者的通知
// GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.notificationSvc.List(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// MarkRead 标记单条通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := PathUUID(c, "id", 14001, "通知不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, callerID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	response.OK(c, nil)
}

// MarkAllRead 标记全部通知已读
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.MarkAllRead(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SweepHomeworkReminders 执行作业到期提醒扫描（管理员）
// POST /api/v1/notifications/homework-reminders
func (h *NotificationHandler) SweepHomeworkReminders(c *gin.Context) {
	result, err := h.notificationSvc.SweepHomeworkReminders(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CreateTest 为调用者创建一条测试通知（受功能开关控制）
// POST /api/v1/notifications/test
func (h *NotificationHandler) CreateTest(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	n, err := h.notificationSvc.CreateTest(c.Request.Context(), callerID)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}

	response.Created(c, n)
}

// handleNotificationError 统一处理通知模块业务错误
func (h *NotificationHandler) handleNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		response.NotFound(c, 14001, "通知不存在")
	case errors.Is(err, service.ErrNotificationNotAuthorized):
		response.Unauthorized(c, 14002, "无权操作该通知")
	case errors.Is(err, service.ErrTestNotificationDisabled):
		response.NotFound(c, 14003, "测试通知未启用")
	default:
		response.InternalError(c)
	}
}
