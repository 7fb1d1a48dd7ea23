package model

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle 记录生命周期状态
// 删除只是状态迁移 Active → Deleted，记录永不物理清除
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
// gorm 的 DeletedAt 默认作用域在数据访问层统一过滤已删除记录，
// 只有显式 Unscoped 的审计查询才能看到它们
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"     json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// Lifecycle 返回当前生命周期状态
func (m SoftDeleteModel) Lifecycle() Lifecycle {
	if m.DeletedAt.Valid {
		return LifecycleDeleted
	}
	return LifecycleActive
}

// MarkDeleted 在内存中把记录迁移到 Deleted 状态
func (m *SoftDeleteModel) MarkDeleted(at time.Time, by string) {
	m.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	m.DeletedBy = &by
}
