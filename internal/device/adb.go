package device

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"time"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// OSRunner runs commands on the host.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ADB drives an Android device through the adb binary.
type ADB struct {
	path    string
	serial  string
	timeout time.Duration
	runner  Runner
}

// NewADB creates a controller for the given adb binary and device serial.
// An empty serial targets the default device.
func NewADB(path, serial string, timeout time.Duration) *ADB {
	return &ADB{path: path, serial: serial, timeout: timeout, runner: OSRunner{}}
}

// NewADBWithRunner substitutes the command runner, for tests.
func NewADBWithRunner(path, serial string, timeout time.Duration, runner Runner) *ADB {
	a := NewADB(path, serial, timeout)
	a.runner = runner
	return a
}

func (a *ADB) args(rest ...string) []string {
	if a.serial == "" {
		return rest
	}
	return append([]string{"-s", a.serial}, rest...)
}

func (a *ADB) run(ctx context.Context, rest ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.runner.Run(runCtx, a.path, a.args(rest...)...)
}

// Screencap grabs one PNG frame from the device. Truncated or empty captures
// show up as decode failures and are reported as a missed frame, not an error.
func (a *ADB) Screencap(ctx context.Context) (image.Image, error) {
	out, err := a.run(ctx, "exec-out", "screencap", "-p")
	if err != nil {
		return nil, fmt.Errorf("adb screencap: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, nil
	}
	return img, nil
}

// Tap issues a single tap and waits for adb to acknowledge it.
func (a *ADB) Tap(ctx context.Context, x, y int) error {
	if _, err := a.run(ctx, "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y)); err != nil {
		return fmt.Errorf("adb tap (%d,%d): %w", x, y, err)
	}
	return nil
}

// Hold emulates a long press via a zero-distance swipe.
func (a *ADB) Hold(ctx context.Context, x, y int, duration time.Duration) error {
	ms := strconv.FormatInt(duration.Milliseconds(), 10)
	sx, sy := strconv.Itoa(x), strconv.Itoa(y)
	if _, err := a.run(ctx, "shell", "input", "swipe", sx, sy, sx, sy, ms); err != nil {
		return fmt.Errorf("adb hold (%d,%d): %w", x, y, err)
	}
	return nil
}
