package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AutoAngler/internal/config"
	"AutoAngler/internal/device"
	"AutoAngler/internal/notifier"
	"AutoAngler/internal/recorder"
	"AutoAngler/internal/scheduler"
	"AutoAngler/internal/session"
	"AutoAngler/internal/vision"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AutoAngler starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init device controller
	dev := device.NewADB(cfg.Device.ADBPath, cfg.Device.Serial,
		time.Duration(cfg.Device.CommandTimeout*float64(time.Second)))
	log.Printf("[INFO] device: %s (serial %q)", cfg.Device.ADBPath, cfg.Device.Serial)

	// Init recognition and extractor
	ext := vision.NewExtractor(vision.NewColorMatcher(cfg))

	// Init stats manager
	stats, err := session.NewStatsManager(cfg.Session.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init stats manager: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg, dev, ext, stats, rec, tn)
	if err := sched.RegisterAll(cfg.Schedule.SessionCron, cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Watch the config file for live tuning changes
	go func() {
		if err := config.Watch(ctx, cfgPath, sched.SetConfig); err != nil {
			log.Printf("[WARN] config watch unavailable: %v", err)
		}
	}()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, starting fishing session now")
		go sched.RunSessionNow()
	}

	log.Println("[INFO] AutoAngler is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AutoAngler stopped")
}
