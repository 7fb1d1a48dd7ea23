package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"session-tracker/internal/dto"
	"session-tracker/internal/service"
	"session-tracker/pkg/response"
	"session-tracker/pkg/validate"
)

// SessionHandler 会话模块 HTTP 处理器（含会话详情子资源）
type SessionHandler struct {
	sessionSvc service.SessionService
	detailSvc  service.SessionDetailService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService, detailSvc service.SessionDetailService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, detailSvc: detailSvc}
}

// ListSessions 获取会话列表
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession 获取会话详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := PathUUID(c, "id", 11001, "会话不存在")
	if !ok {
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateSession 创建会话（管理员）
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新会话（管理员）
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := PathUUID(c, "id", 11001, "会话不存在")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession 软删除会话（管理员）
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := PathUUID(c, "id", 11001, "会话不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 会话详情 ──

// GetMyDetail 获取调用者在该会话下的详情，未填写时返回零值默认记录
// GET /api/v1/sessions/:id/details
func (h *SessionHandler) GetMyDetail(c *gin.Context) {
	id, ok := PathUUID(c, "id", 13001, "会话不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.detailSvc.Get(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, detail)
}

// UpsertMyDetail 写入调用者在该会话下的详情
// PUT /api/v1/sessions/:id/details
func (h *SessionHandler) UpsertMyDetail(c *gin.Context) {
	id, ok := PathUUID(c, "id", 13001, "会话不存在")
	if !ok {
		return
	}

	var req dto.UpsertSessionDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.detailSvc.Upsert(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListAllDetails 获取会话下全部用户的详情（管理员）
// GET /api/v1/sessions/:id/all-details
func (h *SessionHandler) ListAllDetails(c *gin.Context) {
	id, ok := PathUUID(c, "id", 13001, "会话不存在")
	if !ok {
		return
	}

	details, err := h.detailSvc.ListBySession(c.Request.Context(), id)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, gin.H{"list": details})
}

// handleSessionError 统一处理会话模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 11001, "会话不存在")
	case errors.Is(err, service.ErrSessionNumberExists):
		response.Conflict(c, 11002, "会话编号已存在")
	case errors.Is(err, service.ErrSessionDateInvalid):
		response.BadRequest(c, 11003, "会话日期无效")
	default:
		response.InternalError(c)
	}
}

// handleDetailError 统一处理会话详情业务错误
func (h *SessionHandler) handleDetailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDetailSessionNotFound):
		response.NotFound(c, 13001, "会话不存在")
	default:
		response.InternalError(c)
	}
}
