package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColorRange is an inclusive RGB band used by the color matcher.
type ColorRange struct {
	RMin uint8 `yaml:"r_min"`
	RMax uint8 `yaml:"r_max"`
	GMin uint8 `yaml:"g_min"`
	GMax uint8 `yaml:"g_max"`
	BMin uint8 `yaml:"b_min"`
	BMax uint8 `yaml:"b_max"`
}

// Region is a rectangular screen area.
type Region struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Point is a fixed screen coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Config holds all application configuration. Durations are plain seconds
// unless the field name says otherwise.
type Config struct {
	Device struct {
		ADBPath        string  `yaml:"adb_path"`
		Serial         string  `yaml:"serial"`
		CommandTimeout float64 `yaml:"command_timeout"`
	} `yaml:"device"`
	Motion struct {
		CursorSpeed  float64 `yaml:"cursor_speed"` // px/frame
		ShrinkRate   float64 `yaml:"shrink_rate"`  // px/frame
		FrameRate    float64 `yaml:"frame_rate"`
		CycleFrames  int     `yaml:"cycle_frames"`
		FieldLeft    float64 `yaml:"field_left"`
		FieldRight   float64 `yaml:"field_right"`
		MinZoneWidth float64 `yaml:"min_zone_width"`
	} `yaml:"motion"`
	Timing struct {
		RoundBudget       float64 `yaml:"round_budget"`
		BiteTimeout       float64 `yaml:"bite_timeout"`
		BitePollInterval  float64 `yaml:"bite_poll_interval"`
		CastHoldMs        int     `yaml:"cast_hold_ms"`
		AfterCast         float64 `yaml:"after_cast"`
		SettleDelay       float64 `yaml:"settle_delay"`
		PostClickReset    float64 `yaml:"post_click_reset"`
		ActionBuffer      float64 `yaml:"action_buffer"`
		InputCompensation float64 `yaml:"input_compensation"`
		SanityCeiling     float64 `yaml:"sanity_ceiling"`
		SellClickInterval float64 `yaml:"sell_click_interval"`
	} `yaml:"timing"`
	Points struct {
		CastRod     Point `yaml:"cast_rod"`
		Settle      Point `yaml:"settle"`
		SellOpen    Point `yaml:"sell_open"`
		SellConfirm Point `yaml:"sell_confirm"`
	} `yaml:"points"`
	Session struct {
		MaxRounds    int    `yaml:"max_rounds"`
		SellEvery    int    `yaml:"sell_every"`
		CriticalOnly bool   `yaml:"critical_only"`
		StateFile    string `yaml:"state_file"`
	} `yaml:"session"`
	Vision struct {
		BarTop        int        `yaml:"bar_top"`
		BarBottom     int        `yaml:"bar_bottom"`
		MinRun        int        `yaml:"min_run"`
		BiteRegion    Region     `yaml:"bite_region"`
		MinBitePixels int        `yaml:"min_bite_pixels"`
		CursorColor   ColorRange `yaml:"cursor_color"`
		BonusColor    ColorRange `yaml:"bonus_color"`
		CriticalColor ColorRange `yaml:"critical_color"`
		BiteColor     ColorRange `yaml:"bite_color"`
	} `yaml:"vision"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		SessionCron string `yaml:"session_cron"`
		ReportCron  string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ADB_PATH"); v != "" {
		cfg.Device.ADBPath = v
	}
	if v := os.Getenv("ADB_SERIAL"); v != "" {
		cfg.Device.Serial = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SESSION_CRON"); v != "" {
		cfg.Schedule.SessionCron = v
	}
	if v := os.Getenv("MAX_ROUNDS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Session.MaxRounds = n
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Device.ADBPath == "" {
		cfg.Device.ADBPath = "adb"
	}
	if cfg.Device.CommandTimeout == 0 {
		cfg.Device.CommandTimeout = 5
	}

	// Motion constants measured at 60fps on a 1280x720 capture.
	if cfg.Motion.CursorSpeed == 0 {
		cfg.Motion.CursorSpeed = 4.2
	}
	if cfg.Motion.ShrinkRate == 0 {
		cfg.Motion.ShrinkRate = 0.83
	}
	if cfg.Motion.FrameRate == 0 {
		cfg.Motion.FrameRate = 60
	}
	if cfg.Motion.CycleFrames == 0 {
		cfg.Motion.CycleFrames = 88
	}
	if cfg.Motion.FieldLeft == 0 {
		cfg.Motion.FieldLeft = 479
	}
	if cfg.Motion.FieldRight == 0 {
		cfg.Motion.FieldRight = 863
	}
	if cfg.Motion.MinZoneWidth == 0 {
		cfg.Motion.MinZoneWidth = 5
	}

	if cfg.Timing.RoundBudget == 0 {
		cfg.Timing.RoundBudget = 17
	}
	if cfg.Timing.BiteTimeout == 0 {
		cfg.Timing.BiteTimeout = 25
	}
	if cfg.Timing.BitePollInterval == 0 {
		cfg.Timing.BitePollInterval = 0.08
	}
	if cfg.Timing.CastHoldMs == 0 {
		cfg.Timing.CastHoldMs = 100
	}
	if cfg.Timing.AfterCast == 0 {
		cfg.Timing.AfterCast = 0.2
	}
	if cfg.Timing.SettleDelay == 0 {
		cfg.Timing.SettleDelay = 3
	}
	if cfg.Timing.PostClickReset == 0 {
		cfg.Timing.PostClickReset = 0.6
	}
	if cfg.Timing.ActionBuffer == 0 {
		cfg.Timing.ActionBuffer = 0.27
	}
	if cfg.Timing.InputCompensation == 0 {
		cfg.Timing.InputCompensation = 0.045
	}
	if cfg.Timing.SanityCeiling == 0 {
		cfg.Timing.SanityCeiling = 5
	}
	if cfg.Timing.SellClickInterval == 0 {
		cfg.Timing.SellClickInterval = 2
	}

	if cfg.Points.CastRod == (Point{}) {
		cfg.Points.CastRod = Point{X: 1130, Y: 570}
	}
	if cfg.Points.Settle == (Point{}) {
		cfg.Points.Settle = Point{X: 640, Y: 360}
	}
	if cfg.Points.SellOpen == (Point{}) {
		cfg.Points.SellOpen = Point{X: 1180, Y: 120}
	}
	if cfg.Points.SellConfirm == (Point{}) {
		cfg.Points.SellConfirm = Point{X: 820, Y: 600}
	}

	if cfg.Session.MaxRounds == 0 {
		cfg.Session.MaxRounds = 50
	}
	if cfg.Session.SellEvery == 0 {
		cfg.Session.SellEvery = 30
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/angler_stats.json"
	}

	if cfg.Vision.BarTop == 0 && cfg.Vision.BarBottom == 0 {
		cfg.Vision.BarTop = 607
		cfg.Vision.BarBottom = 619
	}
	if cfg.Vision.MinRun == 0 {
		cfg.Vision.MinRun = 3
	}
	if cfg.Vision.BiteRegion == (Region{}) {
		cfg.Vision.BiteRegion = Region{X: 590, Y: 180, W: 100, H: 100}
	}
	if cfg.Vision.MinBitePixels == 0 {
		cfg.Vision.MinBitePixels = 40
	}
	if cfg.Vision.CursorColor == (ColorRange{}) {
		cfg.Vision.CursorColor = ColorRange{RMin: 230, RMax: 255, GMin: 230, GMax: 255, BMin: 230, BMax: 255}
	}
	if cfg.Vision.BonusColor == (ColorRange{}) {
		cfg.Vision.BonusColor = ColorRange{RMin: 40, RMax: 120, GMin: 140, GMax: 220, BMin: 210, BMax: 255}
	}
	if cfg.Vision.CriticalColor == (ColorRange{}) {
		cfg.Vision.CriticalColor = ColorRange{RMin: 220, RMax: 255, GMin: 180, GMax: 230, BMin: 0, BMax: 90}
	}
	if cfg.Vision.BiteColor == (ColorRange{}) {
		cfg.Vision.BiteColor = ColorRange{RMin: 200, RMax: 255, GMin: 0, GMax: 80, BMin: 0, BMax: 80}
	}

	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/angler.db"
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 0 22 * * *"
	}
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Motion.CursorSpeed <= 0 {
		return fmt.Errorf("motion.cursor_speed must be positive")
	}
	if c.Motion.ShrinkRate <= 0 {
		return fmt.Errorf("motion.shrink_rate must be positive")
	}
	if c.Motion.FrameRate <= 0 {
		return fmt.Errorf("motion.frame_rate must be positive")
	}
	if c.Motion.CycleFrames <= 0 {
		return fmt.Errorf("motion.cycle_frames must be positive")
	}
	if c.Motion.FieldRight <= c.Motion.FieldLeft {
		return fmt.Errorf("motion.field_right must exceed motion.field_left")
	}
	if c.Timing.RoundBudget <= 0 {
		return fmt.Errorf("timing.round_budget must be positive")
	}
	if c.Session.SellEvery <= 0 {
		return fmt.Errorf("session.sell_every must be positive")
	}
	if c.Vision.BarBottom <= c.Vision.BarTop {
		return fmt.Errorf("vision.bar_bottom must exceed vision.bar_top")
	}
	return nil
}
