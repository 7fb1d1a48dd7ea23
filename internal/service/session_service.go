package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"session-tracker/internal/dto"
	"session-tracker/internal/model"
	"session-tracker/internal/repository"
	pkgerrors "session-tracker/pkg/errors"
)

// ── 会话模块业务错误 ──

var (
	ErrSessionNotFound     = fmt.Errorf("会话不存在: %w", pkgerrors.ErrNotFound)
	ErrSessionNumberExists = fmt.Errorf("会话编号已存在: %w", pkgerrors.ErrConflict)
	ErrSessionDateInvalid  = fmt.Errorf("会话日期无效: %w", pkgerrors.ErrInvalidInput)
)

// SessionService 会话业务接口
// 会话全员共享：读取不做所有权过滤，写入仅管理员（路由层把关）
type SessionService interface {
	List(ctx context.Context) ([]dto.SessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	Create(ctx context.Context, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *sessionService) List(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.List(ctx)
	if err != nil {
		s.logger.Error("列出会话失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	sessionDate, err := parseDateTime(req.SessionDate)
	if err != nil {
		return nil, ErrSessionDateInvalid
	}
	weekEndDate, err := parseDateTime(req.WeekEndDate)
	if err != nil {
		return nil, ErrSessionDateInvalid
	}
	if weekEndDate.Before(sessionDate) {
		return nil, ErrSessionDateInvalid
	}

	if err := s.ensureNumberAvailable(ctx, req.SessionNumber, ""); err != nil {
		return nil, err
	}

	session := &model.Session{
		SessionNumber: req.SessionNumber,
		SessionDate:   sessionDate,
		DurationHours: req.DurationHours,
		WeekEndDate:   weekEndDate,
		Activities:    req.Activities,
	}
	session.CreatedBy = &callerID
	session.UpdatedBy = &callerID

	if err := s.repo.Session.Create(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSessionNumberExists
		}
		s.logger.Error("创建会话失败", zap.Int("session_number", req.SessionNumber), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SessionNumber != nil && *req.SessionNumber != session.SessionNumber {
		if err := s.ensureNumberAvailable(ctx, *req.SessionNumber, session.SessionID); err != nil {
			return nil, err
		}
		session.SessionNumber = *req.SessionNumber
	}
	if req.SessionDate != nil {
		t, err := parseDateTime(*req.SessionDate)
		if err != nil {
			return nil, ErrSessionDateInvalid
		}
		session.SessionDate = t
	}
	if req.WeekEndDate != nil {
		t, err := parseDateTime(*req.WeekEndDate)
		if err != nil {
			return nil, ErrSessionDateInvalid
		}
		session.WeekEndDate = t
	}
	if session.WeekEndDate.Before(session.SessionDate) {
		return nil, ErrSessionDateInvalid
	}
	if req.DurationHours != nil {
		session.DurationHours = *req.DurationHours
	}
	if req.Activities != nil {
		session.Activities = req.Activities
	}

	session.UpdatedBy = &callerID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSessionNumberExists
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("更新会话失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getSession(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Session.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除会话失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *sessionService) getSession(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

// ensureNumberAvailable 检查编号在有效会话中未被占用（exceptID 为自身时忽略）
// 并发写入的最终防线是数据库部分唯一索引
func (s *sessionService) ensureNumberAvailable(ctx context.Context, number int, exceptID string) error {
	existing, err := s.repo.Session.GetByNumber(ctx, number)
	if err == nil {
		if existing.SessionID != exceptID {
			return ErrSessionNumberExists
		}
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	s.logger.Error("查询会话编号失败", zap.Int("session_number", number), zap.Error(err))
	return err
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:            session.SessionID,
		SessionNumber: session.SessionNumber,
		SessionDate:   formatDateTime(session.SessionDate),
		DurationHours: session.DurationHours,
		WeekEndDate:   formatDateTime(session.WeekEndDate),
		Activities:    append([]string{}, session.Activities...),
		CreatedAt:     session.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     session.UpdatedAt.Format(time.RFC3339),
	}
	if session.CreatedBy != nil {
		resp.CreatedBy = *session.CreatedBy
	}
	return resp
}

func toSessionBrief(session *model.Session) *dto.SessionBrief {
	if session == nil {
		return nil
	}
	return &dto.SessionBrief{
		ID:            session.SessionID,
		SessionNumber: session.SessionNumber,
		SessionDate:   formatDateTime(session.SessionDate),
	}
}
