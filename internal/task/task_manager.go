package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== TaskManager 定时任务管理器 ====================

// Task 可被调度的任务
type Task interface {
	Name() string
	Run()
}

// TaskManager 统一调度后台任务，秒级 cron 表达式
type TaskManager struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	started bool
}

// NewTaskManager 创建任务管理器，任务 panic 会被记录且不影响其他任务
func NewTaskManager(logger *zap.Logger) *TaskManager {
	cl := cronLogger{sugar: logger.Sugar()}
	return &TaskManager{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		entries: map[string]cron.EntryID{},
	}
}

// Register 按 spec 注册任务，同名任务只能注册一次
func (m *TaskManager) Register(spec string, t Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[t.Name()]; ok {
		return fmt.Errorf("任务已注册: %s", t.Name())
	}
	id, err := m.cron.AddJob(spec, cron.FuncJob(t.Run))
	if err != nil {
		return fmt.Errorf("注册任务 %s 失败: %w", t.Name(), err)
	}
	m.entries[t.Name()] = id
	m.logger.Info("task registered", zap.String("task", t.Name()), zap.String("spec", spec))
	return nil
}

// Len 已注册任务数
func (m *TaskManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *TaskManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true
	m.cron.Start()
	m.logger.Info("task manager started", zap.Int("tasks", len(m.entries)))
}

// Stop 停止调度并等待正在执行的任务结束，ctx 到期则不再等待
func (m *TaskManager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	done := m.cron.Stop()
	select {
	case <-done.Done():
		m.logger.Info("task manager stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger 把 cron 的日志接到 zap
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
