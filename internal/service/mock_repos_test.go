package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"session-tracker/internal/model"
	"session-tracker/internal/repository"
)

// mockEpoch 内存仓储的时钟起点，每次写入递增一秒，保证排序稳定
var mockEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type mockClock struct{ n int }

func (c *mockClock) tick() time.Time {
	c.n++
	return mockEpoch.Add(time.Duration(c.n) * time.Second)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(u *model.User) {
	m.users[u.UserID] = u
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.Lifecycle() == model.LifecycleActive {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
	clock    *mockClock
	seq      int
	err      error

	beforeUpdate func() // 在写入前执行，模拟读取与写入之间的并发操作
}

func newMockSessionRepo(clock *mockClock) *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session), clock: clock}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if m.err != nil {
		return m.err
	}
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("session-%d", m.seq)
	}
	now := m.clock.tick()
	session.CreatedAt, session.UpdatedAt = now, now
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.sessions[id]; ok && s.Lifecycle() == model.LifecycleActive {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetByNumber(_ context.Context, number int) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.SessionNumber == number && s.Lifecycle() == model.LifecycleActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.Lifecycle() == model.LifecycleActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionDate.After(result[j].SessionDate) })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	if m.err != nil {
		return m.err
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate()
	}
	if cur, ok := m.sessions[session.SessionID]; !ok || cur.Lifecycle() != model.LifecycleActive {
		return gorm.ErrRecordNotFound
	}
	session.UpdatedAt = m.clock.tick()
	cp := *session
	m.sessions[session.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string, deletedBy string) error {
	if s, ok := m.sessions[id]; ok {
		s.MarkDeleted(m.clock.tick(), deletedBy)
	}
	return nil
}

// ── Mock HomeworkRepository ──

type mockHomeworkRepo struct {
	items    map[string]*model.Homework
	sessions *mockSessionRepo
	users    *mockUserRepo
	clock    *mockClock
	seq      int
	err      error

	beforeUpdate func()
}

func newMockHomeworkRepo(clock *mockClock, sessions *mockSessionRepo, users *mockUserRepo) *mockHomeworkRepo {
	return &mockHomeworkRepo{
		items:    make(map[string]*model.Homework),
		sessions: sessions,
		users:    users,
		clock:    clock,
	}
}

// withAssociations 模拟 Preload；unscoped 时关联也不过滤软删除
func (m *mockHomeworkRepo) withAssociations(h model.Homework, unscoped bool, withUser bool) model.Homework {
	h.Session = nil
	if s, ok := m.sessions.sessions[h.SessionID]; ok && (unscoped || s.Lifecycle() == model.LifecycleActive) {
		cp := *s
		h.Session = &cp
	}
	h.User = nil
	if withUser {
		if u, ok := m.users.users[h.UserID]; ok {
			cp := *u
			h.User = &cp
		}
	}
	return h
}

func (m *mockHomeworkRepo) Create(_ context.Context, homework *model.Homework) error {
	if m.err != nil {
		return m.err
	}
	if homework.HomeworkID == "" {
		m.seq++
		homework.HomeworkID = fmt.Sprintf("homework-%d", m.seq)
	}
	now := m.clock.tick()
	homework.CreatedAt, homework.UpdatedAt = now, now
	cp := *homework
	m.items[homework.HomeworkID] = &cp
	return nil
}

func (m *mockHomeworkRepo) GetByID(_ context.Context, id string) (*model.Homework, error) {
	if m.err != nil {
		return nil, m.err
	}
	if h, ok := m.items[id]; ok && h.Lifecycle() == model.LifecycleActive {
		cp := m.withAssociations(*h, false, false)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHomeworkRepo) ListByUser(_ context.Context, userID, sessionID string) ([]model.Homework, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Homework
	for _, h := range m.items {
		if h.Lifecycle() != model.LifecycleActive || h.UserID != userID {
			continue
		}
		if sessionID != "" && h.SessionID != sessionID {
			continue
		}
		result = append(result, m.withAssociations(*h, false, false))
	}
	sortByDue(result)
	return result, nil
}

func (m *mockHomeworkRepo) ListAll(_ context.Context, includeDeleted bool) ([]model.Homework, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Homework
	for _, h := range m.items {
		if !includeDeleted && h.Lifecycle() != model.LifecycleActive {
			continue
		}
		result = append(result, m.withAssociations(*h, includeDeleted, true))
	}
	sortByDue(result)
	return result, nil
}

func (m *mockHomeworkRepo) ListDueBetween(_ context.Context, from, to time.Time) ([]model.Homework, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Homework
	for _, h := range m.items {
		if h.Lifecycle() != model.LifecycleActive || h.Status == model.HomeworkStatusDone {
			continue
		}
		if h.DueDate.Before(from) || h.DueDate.After(to) {
			continue
		}
		result = append(result, *h)
	}
	sortByDue(result)
	return result, nil
}

func (m *mockHomeworkRepo) Update(_ context.Context, homework *model.Homework) error {
	if m.err != nil {
		return m.err
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate()
	}
	if cur, ok := m.items[homework.HomeworkID]; !ok || cur.Lifecycle() != model.LifecycleActive {
		return gorm.ErrRecordNotFound
	}
	homework.UpdatedAt = m.clock.tick()
	cp := *homework
	cp.Session, cp.User = nil, nil
	m.items[homework.HomeworkID] = &cp
	return nil
}

func (m *mockHomeworkRepo) Delete(_ context.Context, id string, deletedBy string) error {
	if h, ok := m.items[id]; ok {
		h.MarkDeleted(m.clock.tick(), deletedBy)
	}
	return nil
}

func sortByDue(list []model.Homework) {
	sort.Slice(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })
}

// ── Mock SessionDetailRepository ──

type mockSessionDetailRepo struct {
	details map[string]*model.SessionDetail // key: sessionID|userID
	users   *mockUserRepo
	clock   *mockClock
	seq     int
	upserts int
}

func newMockSessionDetailRepo(clock *mockClock, users *mockUserRepo) *mockSessionDetailRepo {
	return &mockSessionDetailRepo{details: make(map[string]*model.SessionDetail), users: users, clock: clock}
}

func detailKey(sessionID, userID string) string { return sessionID + "|" + userID }

func (m *mockSessionDetailRepo) GetBySessionAndUser(_ context.Context, sessionID, userID string) (*model.SessionDetail, error) {
	if d, ok := m.details[detailKey(sessionID, userID)]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// Upsert 按 ON CONFLICT DO UPDATE 的语义合并：仅覆盖 columns 中的列
func (m *mockSessionDetailRepo) Upsert(_ context.Context, detail *model.SessionDetail, columns []string) error {
	m.upserts++
	now := m.clock.tick()
	key := detailKey(detail.SessionID, detail.UserID)
	existing, ok := m.details[key]
	if !ok {
		m.seq++
		cp := *detail
		cp.DetailID = fmt.Sprintf("detail-%d", m.seq)
		cp.CreatedAt, cp.UpdatedAt = now, now
		m.details[key] = &cp
		return nil
	}
	for _, col := range columns {
		switch col {
		case "session_insights":
			existing.SessionInsights = detail.SessionInsights
		case "week_achievement":
			existing.WeekAchievement = detail.WeekAchievement
		case "decision":
			existing.Decision = detail.Decision
		case "total_profit":
			existing.TotalProfit = detail.TotalProfit
		case "invoice_profit":
			existing.InvoiceProfit = detail.InvoiceProfit
		case "future_profit":
			existing.FutureProfit = detail.FutureProfit
		case "cost_reduction_profit":
			existing.CostReductionProfit = detail.CostReductionProfit
		}
	}
	existing.UpdatedAt = now
	existing.UpdatedBy = detail.UpdatedBy
	return nil
}

func (m *mockSessionDetailRepo) ListBySession(_ context.Context, sessionID string) ([]model.SessionDetail, error) {
	var result []model.SessionDetail
	for _, d := range m.details {
		if d.SessionID != sessionID {
			continue
		}
		cp := *d
		if u, ok := m.users.users[d.UserID]; ok {
			uc := *u
			cp.User = &uc
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items []*model.Notification
	clock *mockClock
	seq   int
	err   error

	// reminderErrAfter > 0 时，成功写入这么多条提醒后 CreateReminder 开始失败
	reminderErrAfter int
	reminders        int
}

func newMockNotificationRepo(clock *mockClock) *mockNotificationRepo {
	return &mockNotificationRepo{clock: clock}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notification-%d", m.seq)
	}
	now := m.clock.tick()
	n.CreatedAt, n.UpdatedAt = now, now
	cp := *n
	m.items = append(m.items, &cp)
	return nil
}

// CreateReminder 模拟部分唯一索引 (user_id, related_id) WHERE related_type='homework'
func (m *mockNotificationRepo) CreateReminder(ctx context.Context, n *model.Notification) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.reminderErrAfter > 0 && m.reminders >= m.reminderErrAfter {
		return false, errors.New("insert failed")
	}
	ref := n.Reference()
	for _, existing := range m.items {
		if existing.Lifecycle() == model.LifecycleActive &&
			existing.UserID == n.UserID &&
			existing.Reference() == ref {
			return false, nil
		}
	}
	if err := m.Create(ctx, n); err != nil {
		return false, err
	}
	m.reminders++
	return true, nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	for _, n := range m.items {
		if n.NotificationID == id && n.Lifecycle() == model.LifecycleActive {
			cp := *n
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.items {
		if n.UserID == userID && n.Lifecycle() == model.LifecycleActive {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNotificationRepo) ExistsForReference(_ context.Context, userID string, ref model.Reference) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if ref.IsNone() {
		return false, nil
	}
	for _, n := range m.items {
		if n.UserID == userID && n.Lifecycle() == model.LifecycleActive && n.Reference() == ref {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range m.items {
		if n.NotificationID == id && n.Lifecycle() == model.LifecycleActive {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var updated int64
	for _, n := range m.items {
		if n.UserID == userID && !n.IsRead && n.Lifecycle() == model.LifecycleActive {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// ── 测试夹具 ──

type testRepos struct {
	clock         *mockClock
	user          *mockUserRepo
	session       *mockSessionRepo
	homework      *mockHomeworkRepo
	sessionDetail *mockSessionDetailRepo
	notification  *mockNotificationRepo
	repo          *repository.Repository
}

func newTestRepos() *testRepos {
	clock := &mockClock{}
	users := newMockUserRepo()
	sessions := newMockSessionRepo(clock)
	r := &testRepos{
		clock:         clock,
		user:          users,
		session:       sessions,
		homework:      newMockHomeworkRepo(clock, sessions, users),
		sessionDetail: newMockSessionDetailRepo(clock, users),
		notification:  newMockNotificationRepo(clock),
	}
	r.repo = &repository.Repository{
		User:          r.user,
		Session:       r.session,
		Homework:      r.homework,
		SessionDetail: r.sessionDetail,
		Notification:  r.notification,
	}
	return r
}

// seedSession 直接写入一个会话，返回其 ID
func (r *testRepos) seedSession(number int, date time.Time) string {
	s := &model.Session{
		SessionNumber: number,
		SessionDate:   date,
		DurationHours: 2,
		WeekEndDate:   date.AddDate(0, 0, 6),
		Activities:    []string{"breathing"},
	}
	_ = r.session.Create(context.Background(), s)
	return s.SessionID
}

// seedHomework 直接写入一条作业，返回其 ID
func (r *testRepos) seedHomework(userID, sessionID, title string, due time.Time, status string) string {
	h := &model.Homework{
		Title:     title,
		Status:    status,
		DueDate:   due,
		SessionID: sessionID,
		UserID:    userID,
	}
	_ = r.homework.Create(context.Background(), h)
	return h.HomeworkID
}

func testLogger() *zap.Logger { return zap.NewNop() }
