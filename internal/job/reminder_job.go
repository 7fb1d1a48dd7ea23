package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"session-tracker/internal/dto"
)

// ReminderSweeper 执行一次作业到期提醒扫描
type ReminderSweeper interface {
	SweepHomeworkReminders(ctx context.Context) (*dto.ReminderSweepResponse, error)
}

// ReminderJob 进程内定时提醒扫描
// 扫描本身幂等，与手动触发接口并发执行不会产生重复通知
type ReminderJob struct {
	cron    *cron.Cron
	sweeper ReminderSweeper
	timeout time.Duration
	logger  *zap.Logger
}

// NewReminderJob 按 cron 表达式注册扫描任务
func NewReminderJob(spec string, sweeper ReminderSweeper, timeout time.Duration, logger *zap.Logger) (*ReminderJob, error) {
	j := &ReminderJob{
		cron:    cron.New(cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger}))),
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return nil, err
	}
	return j, nil
}

// Start 启动调度（非阻塞）
func (j *ReminderJob) Start() {
	j.cron.Start()
	j.logger.Info("作业提醒定时扫描已启动", zap.Duration("timeout", j.timeout))
}

// Stop 停止调度并等待正在执行的扫描结束
func (j *ReminderJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("等待提醒扫描结束超时")
	}
}

// Run 执行一次扫描
func (j *ReminderJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := j.sweeper.SweepHomeworkReminders(ctx)
	if err != nil {
		created := 0
		if result != nil {
			created = result.Created
		}
		j.logger.Error("定时提醒扫描失败", zap.Int("created", created), zap.Error(err))
		return
	}
	j.logger.Info("定时提醒扫描完成",
		zap.Int("created", result.Created),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// cronLogger 将 cron 内部日志转接到 zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
