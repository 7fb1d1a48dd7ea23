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

// ── 作业模块业务错误 ──

var (
	ErrHomeworkNotFound        = fmt.Errorf("作业不存在: %w", pkgerrors.ErrNotFound)
	ErrHomeworkNotAuthorized   = fmt.Errorf("无权操作该作业: %w", pkgerrors.ErrNotAuthorized)
	ErrHomeworkSessionNotFound = fmt.Errorf("作业关联的会话不存在: %w", pkgerrors.ErrInvalidReference)
	ErrHomeworkDueDateInvalid  = fmt.Errorf("作业截止时间无效: %w", pkgerrors.ErrInvalidInput)
)

// HomeworkService 作业业务接口
// 写操作与单条读取遵循"所有者或管理员"规则
type HomeworkService interface {
	List(ctx context.Context, callerID string) ([]dto.HomeworkResponse, error)
	ListBySession(ctx context.Context, callerID, sessionID string) ([]dto.HomeworkResponse, error)
	GetByID(ctx context.Context, id, callerID string, isAdmin bool) (*dto.HomeworkResponse, error)
	Create(ctx context.Context, req *dto.CreateHomeworkRequest, callerID string) (*dto.HomeworkResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHomeworkRequest, callerID string, isAdmin bool) (*dto.HomeworkResponse, error)
	Delete(ctx context.Context, id, callerID string, isAdmin bool) error
	ListAll(ctx context.Context, includeDeleted bool) ([]dto.HomeworkResponse, error)
}

type homeworkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHomeworkService 创建 HomeworkService 实例
func NewHomeworkService(repo *repository.Repository, logger *zap.Logger) HomeworkService {
	return &homeworkService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *homeworkService) List(ctx context.Context, callerID string) ([]dto.HomeworkResponse, error) {
	return s.listByUser(ctx, callerID, "")
}

func (s *homeworkService) ListBySession(ctx context.Context, callerID, sessionID string) ([]dto.HomeworkResponse, error) {
	return s.listByUser(ctx, callerID, sessionID)
}

func (s *homeworkService) listByUser(ctx context.Context, callerID, sessionID string) ([]dto.HomeworkResponse, error) {
	list, err := s.repo.Homework.ListByUser(ctx, callerID, sessionID)
	if err != nil {
		s.logger.Error("列出作业失败",
			zap.String("user_id", callerID), zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HomeworkResponse, 0, len(list))
	for i := range list {
		result = append(result, *toHomeworkResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *homeworkService) GetByID(ctx context.Context, id, callerID string, isAdmin bool) (*dto.HomeworkResponse, error) {
	homework, err := s.getAuthorized(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	return toHomeworkResponse(homework), nil
}

// ────────────────────── Create ──────────────────────

func (s *homeworkService) Create(ctx context.Context, req *dto.CreateHomeworkRequest, callerID string) (*dto.HomeworkResponse, error) {
	dueDate, err := parseDateTime(req.DueDate)
	if err != nil {
		return nil, ErrHomeworkDueDateInvalid
	}

	session, err := s.getSessionRef(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.HomeworkStatusTodo
	}

	homework := &model.Homework{
		Title:         req.Title,
		Status:        status,
		DueDate:       dueDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		FPR:           req.FPR,
		DPRemark:      req.DPRemark,
		PenaltyReward: req.PenaltyReward,
		IsImposed:     req.IsImposed,
		SessionID:     session.SessionID,
		UserID:        callerID,
	}
	homework.CreatedBy = &callerID
	homework.UpdatedBy = &callerID

	if err := s.repo.Homework.Create(ctx, homework); err != nil {
		s.logger.Error("创建作业失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	homework.Session = session
	return toHomeworkResponse(homework), nil
}

// ────────────────────── Update ──────────────────────

func (s *homeworkService) Update(ctx context.Context, id string, req *dto.UpdateHomeworkRequest, callerID string, isAdmin bool) (*dto.HomeworkResponse, error) {
	homework, err := s.getAuthorized(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.SessionID != nil && *req.SessionID != homework.SessionID {
		session, err := s.getSessionRef(ctx, *req.SessionID)
		if err != nil {
			return nil, err
		}
		homework.SessionID = session.SessionID
		homework.Session = session
	}
	if req.DueDate != nil {
		t, err := parseDateTime(*req.DueDate)
		if err != nil {
			return nil, ErrHomeworkDueDateInvalid
		}
		homework.DueDate = t
	}
	if req.Title != nil {
		homework.Title = *req.Title
	}
	if req.Status != nil {
		homework.Status = *req.Status
	}
	if req.StartTime != nil {
		homework.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		homework.EndTime = req.EndTime
	}
	if req.FPR != nil {
		homework.FPR = *req.FPR
	}
	if req.DPRemark != nil {
		homework.DPRemark = *req.DPRemark
	}
	if req.PenaltyReward != nil {
		homework.PenaltyReward = *req.PenaltyReward
	}
	if req.IsImposed != nil {
		homework.IsImposed = *req.IsImposed
	}

	homework.UpdatedBy = &callerID

	if err := s.repo.Homework.Update(ctx, homework); err != nil {
		// 读取后被并发删除
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeworkNotFound
		}
		s.logger.Error("更新作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toHomeworkResponse(homework), nil
}

// ────────────────────── Delete ──────────────────────

func (s *homeworkService) Delete(ctx context.Context, id, callerID string, isAdmin bool) error {
	if _, err := s.getAuthorized(ctx, id, callerID, isAdmin); err != nil {
		return err
	}

	if err := s.repo.Homework.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除作业失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListAll（管理员） ──────────────────────

func (s *homeworkService) ListAll(ctx context.Context, includeDeleted bool) ([]dto.HomeworkResponse, error) {
	list, err := s.repo.Homework.ListAll(ctx, includeDeleted)
	if err != nil {
		s.logger.Error("列出全部作业失败", zap.Bool("include_deleted", includeDeleted), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HomeworkResponse, 0, len(list))
	for i := range list {
		result = append(result, *toHomeworkResponse(&list[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// getAuthorized 读取作业并校验"所有者或管理员"
// 已删除的作业视为不存在
func (s *homeworkService) getAuthorized(ctx context.Context, id, callerID string, isAdmin bool) (*model.Homework, error) {
	homework, err := s.repo.Homework.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeworkNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !isAdmin && !homework.OwnedBy(callerID) {
		return nil, ErrHomeworkNotAuthorized
	}
	return homework, nil
}

// getSessionRef 校验作业引用的会话存在且有效
func (s *homeworkService) getSessionRef(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeworkSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func toHomeworkResponse(h *model.Homework) *dto.HomeworkResponse {
	resp := &dto.HomeworkResponse{
		ID:            h.HomeworkID,
		Title:         h.Title,
		Status:        h.Status,
		DueDate:       formatDateTime(h.DueDate),
		StartTime:     h.StartTime,
		EndTime:       h.EndTime,
		FPR:           h.FPR,
		DPRemark:      h.DPRemark,
		PenaltyReward: h.PenaltyReward,
		IsImposed:     h.IsImposed,
		SessionID:     h.SessionID,
		Session:       toSessionBrief(h.Session),
		UserID:        h.UserID,
		Lifecycle:     string(h.Lifecycle()),
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     h.UpdatedAt.Format(time.RFC3339),
	}
	if h.User != nil {
		resp.User = toUserBrief(h.User)
	}
	return resp
}

func toUserBrief(u *model.User) *dto.UserBrief {
	return &dto.UserBrief{ID: u.UserID, Name: u.Name, Email: u.Email}
}
