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

// ── 会话详情模块业务错误 ──

var (
	ErrDetailSessionNotFound = fmt.Errorf("会话详情关联的会话不存在: %w", pkgerrors.ErrInvalidReference)
)

// SessionDetailService 会话详情业务接口
type SessionDetailService interface {
	// Get 返回调用者在该会话下的详情；尚未填写时返回零值默认记录
	Get(ctx context.Context, sessionID, callerID string) (*dto.SessionDetailResponse, error)
	Upsert(ctx context.Context, sessionID string, req *dto.UpsertSessionDetailRequest, callerID string) (*dto.SessionDetailResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.SessionDetailResponse, error)
}

type sessionDetailService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionDetailService 创建 SessionDetailService 实例
func NewSessionDetailService(repo *repository.Repository, logger *zap.Logger) SessionDetailService {
	return &sessionDetailService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *sessionDetailService) Get(ctx context.Context, sessionID, callerID string) (*dto.SessionDetailResponse, error) {
	detail, err := s.repo.SessionDetail.GetBySessionAndUser(ctx, sessionID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未填写不是错误：零值默认记录，与显式写入零值无法区分
			return &dto.SessionDetailResponse{SessionID: sessionID, UserID: callerID}, nil
		}
		s.logger.Error("查询会话详情失败",
			zap.String("session_id", sessionID), zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}
	return toSessionDetailResponse(detail), nil
}

// ────────────────────── Upsert ──────────────────────

func (s *sessionDetailService) Upsert(ctx context.Context, sessionID string, req *dto.UpsertSessionDetailRequest, callerID string) (*dto.SessionDetailResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	detail := &model.SessionDetail{SessionID: sessionID, UserID: callerID}
	detail.CreatedBy = &callerID
	detail.UpdatedBy = &callerID
	columns := applyDetailFields(detail, req)

	if err := s.repo.SessionDetail.Upsert(ctx, detail, columns); err != nil {
		s.logger.Error("写入会话详情失败",
			zap.String("session_id", sessionID), zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	// 冲突更新时内存中的 detail 只含本次提交字段，重新读取合并后的整行
	saved, err := s.repo.SessionDetail.GetBySessionAndUser(ctx, sessionID, callerID)
	if err != nil {
		s.logger.Error("读取会话详情失败",
			zap.String("session_id", sessionID), zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}
	return toSessionDetailResponse(saved), nil
}

// ────────────────────── ListBySession（管理员） ──────────────────────

func (s *sessionDetailService) ListBySession(ctx context.Context, sessionID string) ([]dto.SessionDetailResponse, error) {
	details, err := s.repo.SessionDetail.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("列出会话详情失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionDetailResponse, 0, len(details))
	for i := range details {
		result = append(result, *toSessionDetailResponse(&details[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// applyDetailFields 把请求中提交的字段写入 detail，返回冲突时需要覆盖的列
func applyDetailFields(detail *model.SessionDetail, req *dto.UpsertSessionDetailRequest) []string {
	var columns []string
	if req.SessionInsights != nil {
		detail.SessionInsights = *req.SessionInsights
		columns = append(columns, "session_insights")
	}
	if req.WeekAchievement != nil {
		detail.WeekAchievement = *req.WeekAchievement
		columns = append(columns, "week_achievement")
	}
	if req.Decision != nil {
		detail.Decision = *req.Decision
		columns = append(columns, "decision")
	}
	if req.TotalProfit != nil {
		detail.TotalProfit = *req.TotalProfit
		columns = append(columns, "total_profit")
	}
	if req.InvoiceProfit != nil {
		detail.InvoiceProfit = *req.InvoiceProfit
		columns = append(columns, "invoice_profit")
	}
	if req.FutureProfit != nil {
		detail.FutureProfit = *req.FutureProfit
		columns = append(columns, "future_profit")
	}
	if req.CostReductionProfit != nil {
		detail.CostReductionProfit = *req.CostReductionProfit
		columns = append(columns, "cost_reduction_profit")
	}
	return columns
}

func toSessionDetailResponse(d *model.SessionDetail) *dto.SessionDetailResponse {
	resp := &dto.SessionDetailResponse{
		SessionID:           d.SessionID,
		UserID:              d.UserID,
		SessionInsights:     d.SessionInsights,
		WeekAchievement:     d.WeekAchievement,
		Decision:            d.Decision,
		TotalProfit:         d.TotalProfit,
		InvoiceProfit:       d.InvoiceProfit,
		FutureProfit:        d.FutureProfit,
		CostReductionProfit: d.CostReductionProfit,
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	if d.User != nil {
		resp.User = toUserBrief(d.User)
	}
	return resp
}
