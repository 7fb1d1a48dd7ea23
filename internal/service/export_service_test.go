package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"session-tracker/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	r := newTestRepos()
	svc := NewExportService(r.repo, testLogger())
	svc.(*exportService).now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) }
	return svc, r
}

func TestExportService_ExportHomework_Success(t *testing.T) {
	svc, r := setupTestExportService()
	r.user.add(&model.User{UserID: "user-a", Name: "Alice", Email: "alice@example.com"})
	sessionID := r.seedSession(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r.seedHomework("user-a", sessionID, "Read chapter 1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), model.HomeworkStatusTodo)
	gone := r.seedHomework("user-a", sessionID, "Deleted one", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), model.HomeworkStatusTodo)
	_ = r.homework.Delete(context.Background(), gone, "user-a")

	buf, filename, err := svc.ExportHomework(context.Background())
	if err != nil {
		t.Fatalf("ExportHomework 应成功: %v", err)
	}
	if filename != "作业汇总_20240110.xlsx" {
		t.Errorf("文件名不符，实际 %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("作业汇总")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	// 标题 + 表头 + 1 条有效作业
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(rows))
	}
	if !strings.Contains(strings.Join(rows[2], "|"), "Alice") || !strings.Contains(strings.Join(rows[2], "|"), "Read chapter 1") {
		t.Errorf("数据行应包含用户与作业标题，实际 %v", rows[2])
	}
}

func TestExportService_ExportHomework_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportHomework(context.Background())
	if err != nil {
		t.Fatalf("无作业时也应生成文件: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("期望非空文件")
	}
}

func TestExportService_ExportHomework_StoreError(t *testing.T) {
	svc, r := setupTestExportService()
	r.homework.err = errors.New("db down")

	if _, _, err := svc.ExportHomework(context.Background()); err == nil {
		t.Error("存储失败时应返回错误")
	}
}
