package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"AutoAngler/internal/config"
	"AutoAngler/internal/device"
	"AutoAngler/internal/minigame"
	"AutoAngler/internal/notifier"
	"AutoAngler/internal/recorder"
	"AutoAngler/internal/session"
	"AutoAngler/internal/vision"
)

// Scheduler manages cron-triggered fishing sessions and reports. At most one
// session runs at a time; a trigger that fires mid-session is skipped.
type Scheduler struct {
	Cron     *cron.Cron
	Dev      device.Controller
	Ext      *vision.Extractor
	Stats    *session.StatsManager
	Recorder recorder.Recorder
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context

	mu            sync.Mutex
	cfg           *config.Config
	cancelSession context.CancelFunc
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cfg *config.Config, dev device.Controller, ext *vision.Extractor, stats *session.StatsManager, rec recorder.Recorder, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Dev:      dev,
		Ext:      ext,
		Stats:    stats,
		Recorder: rec,
		Notifier: tn,
		Ctx:      ctx,
		cfg:      cfg,
	}
}

// RegisterAll registers the session and report tasks. An empty session cron
// leaves sessions manual-only (RUN_ON_START or the /fish command).
func (s *Scheduler) RegisterAll(sessionCron, reportCron string) error {
	if sessionCron != "" {
		if _, err := s.Cron.AddFunc(sessionCron, s.sessionTask); err != nil {
			return fmt.Errorf("register session task: %w", err)
		}
	}
	if reportCron != "" {
		if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
			return fmt.Errorf("register report task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and any running session.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.StopSession()
	log.Println("[INFO] scheduler stopped")
}

// SetConfig swaps in a freshly reloaded config. The running session keeps its
// old values; the next session picks up the new ones.
func (s *Scheduler) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// RunSessionNow executes a fishing session immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunSessionNow() {
	s.sessionTask()
}

// StopSession cancels the running session, if any.
func (s *Scheduler) StopSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelSession != nil {
		s.cancelSession()
	}
}

func (s *Scheduler) sessionTask() {
	s.mu.Lock()
	if s.cancelSession != nil {
		s.mu.Unlock()
		log.Println("[WARN] session already running, trigger skipped")
		return
	}
	ctx, cancel := context.WithCancel(s.Ctx)
	s.cancelSession = cancel
	cfg := s.cfg
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelSession = nil
		s.mu.Unlock()
	}()

	log.Println("[INFO] running fishing session")
	sess := session.New(s.Dev, s.Ext, s.Stats, s.Recorder, cfg, minigame.LogEvents{})
	sum, err := sess.Run(ctx)
	if err != nil {
		log.Printf("[ERROR] session: %v", err)
		s.trySend(fmt.Sprintf("❌ 钓鱼会话失败: %v", err))
		return
	}

	stats := s.Stats.Snapshot()
	s.trySend(notifier.FormatSessionReport(sum, &stats))
}

func (s *Scheduler) reportTask() {
	log.Println("[INFO] running daily report")
	stats := s.Stats.Snapshot()
	s.trySend(notifier.FormatDailyDigest(&stats))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "开始钓鱼", "/fish":
		go s.sessionTask()
		return "🎣 钓鱼会话已启动"
	case "停止钓鱼", "/stop":
		s.StopSession()
		return "🛑 已请求停止当前会话"
	case "查看统计", "/stats":
		stats := s.Stats.Snapshot()
		return notifier.FormatStats(&stats)
	default:
		return "可用命令:\n• 开始钓鱼 (/fish)\n• 停止钓鱼 (/stop)\n• 查看统计 (/stats)"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
