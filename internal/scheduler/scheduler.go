package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stackview/internal/pkg/config"
	"stackview/internal/pkg/session"
)

// Scheduler 定时任务调度器, 目前只负责过期会话清理
type Scheduler struct {
	cron     *cron.Cron
	logger   *zap.Logger
	sessions *session.Store
}

// NewScheduler 创建调度器
func NewScheduler(sessions *session.Store, logger *zap.Logger, cronLogger cron.Logger) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger))

	return &Scheduler{
		cron:     c,
		logger:   logger,
		sessions: sessions,
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.SessionConfig) error {
	log := s.logger.Sugar()

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.GCCron
	if cronExpr == "" {
		cronExpr = "0 */10 * * * *" // 默认: 每10分钟
		log.Warnf("未配置session.gc_cron, 使用默认值: %s", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		if count := s.sessions.PurgeExpired(); count > 0 {
			log.Infof("已清理过期会话: %d", count)
		}
	})
	if err != nil {
		log.Errorf("注册会话清理任务失败: %v", err)
		return err
	}

	s.cron.Start()
	log.Infof("会话清理任务已注册: %s entry_id=%d", cronExpr, entryID)

	return nil
}

// Stop 停止调度器（等待正在执行的任务完成）
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}
