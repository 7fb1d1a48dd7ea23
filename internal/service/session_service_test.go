package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"session-tracker/internal/dto"
	"session-tracker/internal/model"
	pkgerrors "session-tracker/pkg/errors"
)

// ── 测试辅助 ──

func setupTestSessionService() (SessionService, *testRepos) {
	r := newTestRepos()
	return NewSessionService(r.repo, testLogger()), r
}

func validCreateSessionReq(number int) *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		SessionNumber: number,
		SessionDate:   "2024-01-01",
		DurationHours: 2,
		WeekEndDate:   "2024-01-07",
		Activities:    []string{"breathing", "journaling"},
	}
}

// ── Create 测试 ──

func TestSessionService_Create_Success(t *testing.T) {
	svc, _ := setupTestSessionService()

	resp, err := svc.Create(context.Background(), validCreateSessionReq(1), "admin-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.ID == "" {
		t.Error("期望生成会话 ID")
	}
	if resp.CreatedBy != "admin-1" {
		t.Errorf("期望 created_by=admin-1，实际 %s", resp.CreatedBy)
	}
	if resp.SessionDate != "2024-01-01T00:00:00Z" {
		t.Errorf("期望 session_date 为 UTC 零点，实际 %s", resp.SessionDate)
	}
	if len(resp.Activities) != 2 {
		t.Errorf("期望 2 个活动，实际 %d", len(resp.Activities))
	}
}

func TestSessionService_Create_DuplicateNumber(t *testing.T) {
	svc, _ := setupTestSessionService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateSessionReq(1), "admin-1"); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}
	_, err := svc.Create(ctx, validCreateSessionReq(1), "admin-1")
	if !errors.Is(err, ErrSessionNumberExists) {
		t.Errorf("期望 ErrSessionNumberExists，实际: %v", err)
	}
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Error("ErrSessionNumberExists 应归类为 ErrConflict")
	}
}

func TestSessionService_Create_NumberReusableAfterDelete(t *testing.T) {
	svc, _ := setupTestSessionService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, validCreateSessionReq(1), "admin-1")
	if err := svc.Delete(ctx, first.ID, "admin-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, validCreateSessionReq(1), "admin-1"); err != nil {
		t.Errorf("已删除会话的编号应可复用: %v", err)
	}
}

func TestSessionService_Create_DuplicateKeyFromStore(t *testing.T) {
	svc, r := setupTestSessionService()
	r.session.err = gorm.ErrDuplicatedKey

	_, err := svc.Create(context.Background(), validCreateSessionReq(1), "admin-1")
	if !errors.Is(err, ErrSessionNumberExists) {
		t.Errorf("唯一索引冲突应映射为 ErrSessionNumberExists，实际: %v", err)
	}
}

func TestSessionService_Create_WeekEndBeforeSessionDate(t *testing.T) {
	svc, _ := setupTestSessionService()
	req := validCreateSessionReq(1)
	req.WeekEndDate = "2023-12-31"

	_, err := svc.Create(context.Background(), req, "admin-1")
	if !errors.Is(err, ErrSessionDateInvalid) {
		t.Errorf("期望 ErrSessionDateInvalid，实际: %v", err)
	}
}

func TestSessionService_Create_BadDate(t *testing.T) {
	svc, _ := setupTestSessionService()
	req := validCreateSessionReq(1)
	req.SessionDate = "01/01/2024"

	_, err := svc.Create(context.Background(), req, "admin-1")
	if !errors.Is(err, ErrSessionDateInvalid) {
		t.Errorf("期望 ErrSessionDateInvalid，实际: %v", err)
	}
}

// ── List / GetByID 测试 ──

func TestSessionService_List_DateDescending(t *testing.T) {
	svc, r := setupTestSessionService()
	r.seedSession(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r.seedSession(2, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	r.seedSession(3, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("期望 3 个会话，实际 %d", len(list))
	}
	if list[0].SessionNumber != 3 || list[2].SessionNumber != 1 {
		t.Errorf("期望按日期降序，实际 %d, %d, %d",
			list[0].SessionNumber, list[1].SessionNumber, list[2].SessionNumber)
	}
}

func TestSessionService_GetByID_Deleted(t *testing.T) {
	svc, r := setupTestSessionService()
	ctx := context.Background()
	id := r.seedSession(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, err := svc.GetByID(ctx, id); err != nil {
		t.Fatalf("删除前 GetByID 应成功: %v", err)
	}
	_ = svc.Delete(ctx, id, "admin-1")

	_, err := svc.GetByID(ctx, id)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("已删除会话应不可见，实际: %v", err)
	}
	if r.session.sessions[id] == nil {
		t.Error("删除不应物理清除记录")
	}
}

// ── Update 测试 ──

func TestSessionService_Update_MergesFields(t *testing.T) {
	svc, _ := setupTestSessionService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, validCreateSessionReq(1), "admin-1")

	hours := 3.5
	resp, err := svc.Update(ctx, created.ID, &dto.UpdateSessionRequest{DurationHours: &hours}, "admin-2")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.DurationHours != 3.5 {
		t.Errorf("期望 duration_hours=3.5，实际 %v", resp.DurationHours)
	}
	if resp.SessionNumber != 1 || len(resp.Activities) != 2 {
		t.Error("未提交的字段不应被修改")
	}
}

func TestSessionService_Update_NumberTaken(t *testing.T) {
	svc, _ := setupTestSessionService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, validCreateSessionReq(1), "admin-1")
	second, _ := svc.Create(ctx, validCreateSessionReq(2), "admin-1")

	taken := 1
	_, err := svc.Update(ctx, second.ID, &dto.UpdateSessionRequest{SessionNumber: &taken}, "admin-1")
	if !errors.Is(err, ErrSessionNumberExists) {
		t.Errorf("期望 ErrSessionNumberExists，实际: %v", err)
	}
}

func TestSessionService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestSessionService()

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateSessionRequest{}, "admin-1")
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际: %v", err)
	}
}

func TestSessionService_Update_DeletedAfterRead(t *testing.T) {
	svc, r := setupTestSessionService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, validCreateSessionReq(1), "admin-1")

	r.session.beforeUpdate = func() { _ = r.session.Delete(ctx, created.ID, "admin-2") }

	hours := 4.0
	_, err := svc.Update(ctx, created.ID, &dto.UpdateSessionRequest{DurationHours: &hours}, "admin-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
	if stored := r.session.sessions[created.ID]; stored.Lifecycle() != model.LifecycleDeleted {
		t.Error("已删除会话不应被更新复活")
	}
}

func TestSessionService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestSessionService()

	if err := svc.Delete(context.Background(), "missing", "admin-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}
