package errors

import "errors"

// 跨层通用错误类别，各模块的业务错误通过 %w 包装它们，
// Handler 层据此映射 HTTP 状态码。
var (
	// ErrNotFound 记录不存在或已被软删除
	ErrNotFound = errors.New("记录不存在")
	// ErrNotAuthorized 调用者既不是记录所有者也不是管理员
	ErrNotAuthorized = errors.New("无权操作")
	// ErrInvalidReference 创建从属记录时引用的父记录不存在或已删除
	ErrInvalidReference = errors.New("引用的记录不存在")
	// ErrConflict 唯一性冲突
	ErrConflict = errors.New("记录冲突")
	// ErrInvalidInput 业务层参数校验失败
	ErrInvalidInput = errors.New("参数无效")
)
