package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"session-tracker/internal/model"
)

// SessionDetailRepository 会话详情数据访问接口
type SessionDetailRepository interface {
	GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.SessionDetail, error)
	// Upsert 以 (session_id, user_id) 为键原子写入：
	// 不存在则插入 detail，已存在则仅覆盖 columns 中列出的列
	Upsert(ctx context.Context, detail *model.SessionDetail, columns []string) error
	ListBySession(ctx context.Context, sessionID string) ([]model.SessionDetail, error)
}

type sessionDetailRepo struct {
	db *gorm.DB
}

// NewSessionDetailRepo 创建 SessionDetailRepository 实例
func NewSessionDetailRepo(db *gorm.DB) SessionDetailRepository {
	return &sessionDetailRepo{db: db}
}

func (r *sessionDetailRepo) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.SessionDetail, error) {
	var detail model.SessionDetail
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *sessionDetailRepo) Upsert(ctx context.Context, detail *model.SessionDetail, columns []string) error {
	updateCols := make([]string, 0, len(columns)+2)
	updateCols = append(updateCols, columns...)
	updateCols = append(updateCols, "updated_at", "updated_by")

	// INSERT ... ON CONFLICT (session_id, user_id) DO UPDATE：
	// 并发首次写入由唯一约束收敛为同一行，后写入者覆盖重叠字段
	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(updateCols),
		}).
		Create(detail).Error
}

func (r *sessionDetailRepo) ListBySession(ctx context.Context, sessionID string) ([]model.SessionDetail, error) {
	var details []model.SessionDetail
	err := r.db.WithContext(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Where("session_id = ?", sessionID).
		Order("updated_at DESC").
		Find(&details).Error
	return details, err
}
