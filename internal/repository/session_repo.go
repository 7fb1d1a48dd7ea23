package repository

import (
	"context"

	"gorm.io/gorm"

	"session-tracker/internal/model"
)

// SessionRepository 会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	GetByNumber(ctx context.Context, number int) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByNumber(ctx context.Context, number int) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_number = ?", number).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Order("session_date DESC").
		Find(&sessions).Error
	return sessions, err
}

var sessionUpdatableColumns = []string{
	"session_number", "session_date", "duration_hours", "week_end_date", "activities",
	"updated_at", "updated_by",
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	// 与作业相同：已软删除的会话影响 0 行，返回 ErrRecordNotFound
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", session.SessionID).
		Select(sessionUpdatableColumns).
		Updates(session)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
