package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"session-tracker/config"
	"session-tracker/internal/dto"
	"session-tracker/internal/model"
	"session-tracker/internal/repository"
	pkgerrors "session-tracker/pkg/errors"
	"session-tracker/pkg/metrics"
)

// ── 通知模块业务错误 ──

var (
	ErrNotificationNotFound      = fmt.Errorf("通知不存在: %w", pkgerrors.ErrNotFound)
	ErrNotificationNotAuthorized = fmt.Errorf("无权操作该通知: %w", pkgerrors.ErrNotAuthorized)
	ErrTestNotificationDisabled  = fmt.Errorf("测试通知未启用: %w", pkgerrors.ErrNotFound)
)

// 作业提醒文案
const (
	reminderTitle         = "Homework Due Soon"
	reminderMessageFmt    = `Your homework "%s" is due on %s`
	reminderDueLayout     = "2006-01-02 15:04"
	testNotificationTitle = "Test Notification"
	testNotificationMsg   = "This is a test notification for homework"
)

// NotificationService 通知业务接口
type NotificationService interface {
	List(ctx context.Context, callerID string) ([]dto.NotificationResponse, error)
	// MarkRead 仅所有者可标记（管理员也不例外）
	MarkRead(ctx context.Context, id, callerID string) error
	MarkAllRead(ctx context.Context, callerID string) (*dto.MarkAllReadResponse, error)
	// SweepHomeworkReminders 为窗口内即将到期的作业生成提醒，重复执行不会重复生成；
	// 逐条写入中途失败时同时返回已写入部分与错误
	SweepHomeworkReminders(ctx context.Context) (*dto.ReminderSweepResponse, error)
	CreateTest(ctx context.Context, callerID string) (*dto.NotificationResponse, error)
}

type notificationService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	window      time.Duration
	loc         *time.Location
	testEnabled bool
	now         func() time.Time
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, cfg *config.ReminderConfig, testEnabled bool, logger *zap.Logger) (NotificationService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("加载提醒时区失败: %w", err)
	}
	return &notificationService{
		repo:        repo,
		logger:      logger,
		window:      cfg.Window,
		loc:         loc,
		testEnabled: testEnabled,
		now:         time.Now,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *notificationService) List(ctx context.Context, callerID string) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListByUser(ctx, callerID)
	if err != nil {
		s.logger.Error("列出通知失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *toNotificationResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── MarkRead ──────────────────────

func (s *notificationService) MarkRead(ctx context.Context, id, callerID string) error {
	n, err := s.repo.Notification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("查询通知失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !n.OwnedBy(callerID) {
		return ErrNotificationNotAuthorized
	}
	if n.IsRead {
		return nil
	}

	if err := s.repo.Notification.MarkRead(ctx, id); err != nil {
		s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── MarkAllRead ──────────────────────

func (s *notificationService) MarkAllRead(ctx context.Context, callerID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.repo.Notification.MarkAllRead(ctx, callerID)
	if err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

// ═══════════════════════════════════════════════════════════
// SweepHomeworkReminders 作业到期提醒扫描
// ═══════════════════════════════════════════════════════════
//
// 流程：
//  1. 取截止时间落在 [now, now+window] 内、未完成的有效作业
//  2. 该用户已有指向这条作业的有效通知（无论已读与否）则跳过
//  3. 否则插入提醒；插入本身带 ON CONFLICT DO NOTHING，
//     并发扫描时由部分唯一索引保证每条作业至多一条提醒

func (s *notificationService) SweepHomeworkReminders(ctx context.Context) (*dto.ReminderSweepResponse, error) {
	now := s.now()
	due, err := s.repo.Homework.ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		metrics.ReminderSweeps.WithLabelValues("error").Inc()
		s.logger.Error("查询即将到期作业失败", zap.Error(err))
		return nil, err
	}

	created := make([]dto.NotificationResponse, 0)
	for i := range due {
		h := &due[i]
		ref := model.HomeworkRef(h.HomeworkID)

		exists, err := s.repo.Notification.ExistsForReference(ctx, h.UserID, ref)
		if err != nil {
			s.logger.Error("查询已有提醒失败", zap.String("homework_id", h.HomeworkID), zap.Error(err))
			return s.abortSweep(created, err)
		}
		if exists {
			continue
		}

		n := &model.Notification{
			UserID:  h.UserID,
			Type:    model.NotificationTypeHomework,
			Title:   reminderTitle,
			Message: fmt.Sprintf(reminderMessageFmt, h.Title, h.DueDate.In(s.loc).Format(reminderDueLayout)),
		}
		n.SetReference(ref)

		inserted, err := s.repo.Notification.CreateReminder(ctx, n)
		if err != nil {
			s.logger.Error("创建作业提醒失败", zap.String("homework_id", h.HomeworkID), zap.Error(err))
			return s.abortSweep(created, err)
		}
		if !inserted {
			// 并发扫描已抢先写入
			continue
		}
		created = append(created, *toNotificationResponse(n))
	}

	metrics.ReminderSweeps.WithLabelValues("success").Inc()
	metrics.RemindersCreated.Add(float64(len(created)))
	s.logger.Info("作业提醒扫描完成",
		zap.Int("due", len(due)), zap.Int("created", len(created)))

	return &dto.ReminderSweepResponse{Created: len(created), Notifications: created}, nil
}

// abortSweep 中途失败时返回本次已写入的提醒与错误；
// 已写入的提醒已持久化，重新扫描会跳过它们
func (s *notificationService) abortSweep(created []dto.NotificationResponse, err error) (*dto.ReminderSweepResponse, error) {
	metrics.ReminderSweeps.WithLabelValues("error").Inc()
	metrics.RemindersCreated.Add(float64(len(created)))
	s.logger.Warn("作业提醒扫描中断", zap.Int("created", len(created)), zap.Error(err))
	return &dto.ReminderSweepResponse{Created: len(created), Notifications: created}, err
}

// ────────────────────── CreateTest ──────────────────────

func (s *notificationService) CreateTest(ctx context.Context, callerID string) (*dto.NotificationResponse, error) {
	if !s.testEnabled {
		return nil, ErrTestNotificationDisabled
	}

	n := &model.Notification{
		UserID:  callerID,
		Type:    model.NotificationTypeHomework,
		Title:   testNotificationTitle,
		Message: testNotificationMsg,
	}
	n.SetReference(model.NoReference())

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("创建测试通知失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:        n.NotificationID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if ref := n.Reference(); !ref.IsNone() {
		resp.Reference = &dto.ReferenceResponse{Kind: string(ref.Kind()), ID: ref.ID()}
	}
	return resp
}
