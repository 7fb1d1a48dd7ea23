package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"session-tracker/internal/dto"
	"session-tracker/internal/service"
	"session-tracker/pkg/response"
	"session-tracker/pkg/validate"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HomeworkHandler 作业模块 HTTP 处理器
type HomeworkHandler struct {
	homeworkSvc service.HomeworkService
	exportSvc   service.ExportService
}

// NewHomeworkHandler 创建 HomeworkHandler
func NewHomeworkHandler(homeworkSvc service.HomeworkService, exportSvc service.ExportService) *HomeworkHandler {
	return &HomeworkHandler{homeworkSvc: homeworkSvc, exportSvc: exportSvc}
}

// ListMyHomework 获取调用者的作业列表
// GET /api/v1/homework
func (h *HomeworkHandler) ListMyHomework(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.homeworkSvc.List(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListBySession 获取调用者在某会话下的作业
// GET /api/v1/homework/session/:sessionId
func (h *HomeworkHandler) ListBySession(c *gin.Context) {
	sessionID, ok := PathUUID(c, "sessionId", 11001, "会话不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.homeworkSvc.ListBySession(c.Request.Context(), callerID, sessionID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetHomework 获取单条作业
// GET /api/v1/homework/:id
func (h *HomeworkHandler) GetHomework(c *gin.Context) {
	id, ok := PathUUID(c, "id", 12001, "作业不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	homework, err := h.homeworkSvc.GetByID(c.Request.Context(), id, callerID, IsAdmin(c))
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}

	response.OK(c, homework)
}

// CreateHomework 创建作业
// POST /api/v1/homework
func (h *HomeworkHandler) CreateHomework(c *gin.Context) {
	var req dto.CreateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	homework, err := h.homeworkSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}

	response.Created(c, homework)
}

// UpdateHomework 合并更新作业
// PUT /api/v1/homework/:id
func (h *HomeworkHandler) UpdateHomework(c *gin.Context) {
	id, ok := PathUUID(c, "id", 12001, "作业不存在")
	if !ok {
		return
	}

	var req dto.UpdateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	homework, err := h.homeworkSvc.Update(c.Request.Context(), id, &req, callerID, IsAdmin(c))
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}

	response.OK(c, homework)
}

// DeleteHomework 软删除作业
// DELETE /api/v1/homework/:id
func (h *HomeworkHandler) DeleteHomework(c *gin.Context) {
	id, ok := PathUUID(c, "id", 12001, "作业不存在")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.homeworkSvc.Delete(c.Request.Context(), id, callerID, IsAdmin(c)); err != nil {
		h.handleHomeworkError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListAllHomework 获取全部用户的作业（管理员）
// GET /api/v1/homework/admin/all?include_deleted=true
func (h *HomeworkHandler) ListAllHomework(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, validate.Describe(err))
		return
	}

	list, err := h.homeworkSvc.ListAll(c.Request.Context(), q.IncludeDeleted)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ExportHomework 导出全部有效作业（管理员）
// GET /api/v1/homework/admin/export
func (h *HomeworkHandler) ExportHomework(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportHomework(c.Request.Context())
	if err != nil {
		h.handleHomeworkError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleHomeworkError 统一处理作业模块业务错误
func (h *HomeworkHandler) handleHomeworkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHomeworkNotFound):
		response.NotFound(c, 12001, "作业不存在")
	case errors.Is(err, service.ErrHomeworkNotAuthorized):
		response.Unauthorized(c, 12002, "无权操作该作业")
	case errors.Is(err, service.ErrHomeworkSessionNotFound):
		response.NotFound(c, 12003, "作业关联的会话不存在")
	case errors.Is(err, service.ErrHomeworkDueDateInvalid):
		response.BadRequest(c, 12004, "截止时间格式无效")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 15001, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
