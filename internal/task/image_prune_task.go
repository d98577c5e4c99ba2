package task

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ImagePruner 清理旧图片记录
type ImagePruner interface {
	PruneImages(ctx context.Context, keep int) (int64, error)
}

// ImagePruneTask 每个商品只保留最新的 keep 条图片记录
type ImagePruneTask struct {
	pruner  ImagePruner
	keep    int
	timeout time.Duration
	logger  *zap.Logger
}

func NewImagePruneTask(pruner ImagePruner, keep int, logger *zap.Logger) *ImagePruneTask {
	if keep < 1 {
		keep = 1
	}
	return &ImagePruneTask{
		pruner:  pruner,
		keep:    keep,
		timeout: 5 * time.Minute,
		logger:  logger,
	}
}

func (t *ImagePruneTask) Name() string {
	return "image_prune"
}

// Run cron 入口
func (t *ImagePruneTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if _, err := t.RunOnce(ctx); err != nil {
		t.logger.Error("image prune failed", zap.Error(err))
	}
}

// RunOnce 执行一次，返回删除的记录数
func (t *ImagePruneTask) RunOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	deleted, err := t.pruner.PruneImages(ctx, t.keep)
	if err != nil {
		return 0, err
	}
	t.logger.Info("image prune finished",
		zap.Int64("deleted", deleted),
		zap.Int("keep", t.keep),
		zap.Duration("elapsed", time.Since(start)),
	)
	return deleted, nil
}
