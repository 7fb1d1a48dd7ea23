package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"session-tracker/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 管理员查看全部用户作业的离线视图，导出为 Excel (.xlsx)
//   - 只导出有效作业，已删除记录走 include_deleted 审计接口
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportHomework 导出全部有效作业
	ExportHomework(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportHomework 导出作业汇总为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "作业汇总"，第 1 行标题，第 2 行表头
//   - 每条作业一行，按截止时间升序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

var homeworkExportHeaders = []string{
	"会话编号", "会话日期", "用户", "邮箱", "作业标题", "状态",
	"截止时间", "开始", "结束", "FPR", "DP 备注", "奖惩", "是否强制",
}

func (s *exportService) ExportHomework(ctx context.Context) (*bytes.Buffer, string, error) {
	list, err := s.repo.Homework.ListAll(ctx, false)
	if err != nil {
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "作业汇总"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 22)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "I", 14)
	f.SetColWidth(sheetName, "J", "L", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	exportedAt := s.now().UTC()
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("作业汇总（导出时间 %s UTC）", exportedAt.Format("2006-01-02 15:04")))
	f.MergeCell(sheetName, "A1", cell(colName(len(homeworkExportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range homeworkExportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(homeworkExportHeaders)-1), 2), headerStyle)

	// 数据行
	row := 3
	for i := range list {
		h := &list[i]
		values := make([]interface{}, len(homeworkExportHeaders))
		if h.Session != nil {
			values[0] = h.Session.SessionNumber
			values[1] = h.Session.SessionDate.UTC().Format(dateLayout)
		} else {
			values[0], values[1] = "-", "-"
		}
		if h.User != nil {
			values[2] = h.User.Name
			values[3] = h.User.Email
		} else {
			values[2], values[3] = h.UserID, "-"
		}
		values[4] = h.Title
		values[5] = h.Status
		values[6] = h.DueDate.UTC().Format("2006-01-02 15:04")
		values[7] = derefOr(h.StartTime, "-")
		values[8] = derefOr(h.EndTime, "-")
		values[9] = h.FPR
		values[10] = h.DPRemark
		values[11] = h.PenaltyReward
		values[12] = "否"
		if h.IsImposed {
			values[12] = "是"
		}

		if err := f.SetSheetRow(sheetName, cell("A", row), &values); err != nil {
			s.logger.Error("写入 Excel 行失败", zap.Int("row", row), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("作业汇总_%s.xlsx", exportedAt.Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func derefOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
