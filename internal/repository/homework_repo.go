package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"session-tracker/internal/model"
)

// HomeworkRepository 作业数据访问接口
type HomeworkRepository interface {
	Create(ctx context.Context, homework *model.Homework) error
	GetByID(ctx context.Context, id string) (*model.Homework, error)
	// ListByUser 列出用户的有效作业，sessionID 为空时不按会话过滤；按截止时间升序
	ListByUser(ctx context.Context, userID, sessionID string) ([]model.Homework, error)
	// ListAll 列出全部用户的作业；includeDeleted 为 true 时包含已软删除记录（审计）
	ListAll(ctx context.Context, includeDeleted bool) ([]model.Homework, error)
	// ListDueBetween 列出截止时间落在 [from, to] 内且未完成的有效作业
	ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Homework, error)
	Update(ctx context.Context, homework *model.Homework) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type homeworkRepo struct {
	db *gorm.DB
}

// NewHomeworkRepo 创建 HomeworkRepository 实例
func NewHomeworkRepo(db *gorm.DB) HomeworkRepository {
	return &homeworkRepo{db: db}
}

func (r *homeworkRepo) Create(ctx context.Context, homework *model.Homework) error {
	return r.db.WithContext(ctx).Create(homework).Error
}

func (r *homeworkRepo) GetByID(ctx context.Context, id string) (*model.Homework, error) {
	var homework model.Homework
	err := r.db.WithContext(ctx).
		Preload("Session").
		Where("homework_id = ?", id).
		First(&homework).Error
	if err != nil {
		return nil, err
	}
	return &homework, nil
}

func (r *homeworkRepo) ListByUser(ctx context.Context, userID, sessionID string) ([]model.Homework, error) {
	var list []model.Homework
	db := r.db.WithContext(ctx).
		Preload("Session").
		Where("user_id = ?", userID)
	if sessionID != "" {
		db = db.Where("session_id = ?", sessionID)
	}
	err := db.Order("due_date ASC").Find(&list).Error
	return list, err
}

func (r *homeworkRepo) ListAll(ctx context.Context, includeDeleted bool) ([]model.Homework, error) {
	var list []model.Homework
	db := r.db.WithContext(ctx)
	if includeDeleted {
		// 审计视图：作业本身与关联会话都不过滤软删除
		db = db.Unscoped().
			Preload("Session", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
	} else {
		db = db.Preload("Session")
	}
	err := db.Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Order("due_date ASC").
		Find(&list).Error
	return list, err
}

func (r *homeworkRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Homework, error) {
	var list []model.Homework
	err := r.db.WithContext(ctx).
		Where("due_date BETWEEN ? AND ?", from, to).
		Where("status <> ?", model.HomeworkStatusDone).
		Order("due_date ASC").
		Find(&list).Error
	return list, err
}

// homeworkUpdatableColumns 更新时允许写入的列；主键、创建与删除审计列不在其中
var homeworkUpdatableColumns = []string{
	"title", "status", "due_date", "start_time", "end_time",
	"fpr", "dp_remark", "penalty_reward", "is_imposed", "session_id",
	"updated_at", "updated_by",
}

func (r *homeworkRepo) Update(ctx context.Context, homework *model.Homework) error {
	// 只更新有效记录：读取与写入之间被软删除时影响 0 行，
	// 不能用 Save（0 行时会退化为 INSERT ... ON CONFLICT 把记录复活）
	result := r.db.WithContext(ctx).
		Model(&model.Homework{}).
		Where("homework_id = ?", homework.HomeworkID).
		Select(homeworkUpdatableColumns).
		Updates(homework)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *homeworkRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Homework{}).
		Where("homework_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
