package device

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"
)

type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestADB_TapArgs(t *testing.T) {
	fr := &fakeRunner{}
	a := NewADBWithRunner("adb", "emulator-5554", time.Second, fr)
	if err := a.Tap(context.Background(), 1130, 570); err != nil {
		t.Fatal(err)
	}
	want := []string{"adb", "-s", "emulator-5554", "shell", "input", "tap", "1130", "570"}
	got := fr.calls[0]
	if len(got) != len(want) {
		t.Fatalf("expected args %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestADB_HoldIsZeroDistanceSwipe(t *testing.T) {
	fr := &fakeRunner{}
	a := NewADBWithRunner("adb", "", time.Second, fr)
	if err := a.Hold(context.Background(), 640, 360, 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	want := []string{"adb", "shell", "input", "swipe", "640", "360", "640", "360", "100"}
	got := fr.calls[0]
	if len(got) != len(want) {
		t.Fatalf("expected args %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestADB_ScreencapDecodesPNG(t *testing.T) {
	fr := &fakeRunner{output: encodePNG(t)}
	a := NewADBWithRunner("adb", "", time.Second, fr)
	img, err := a.Screencap(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if img == nil {
		t.Fatal("expected decoded frame")
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("unexpected frame bounds: %v", img.Bounds())
	}
}

func TestADB_ScreencapTruncatedIsMiss(t *testing.T) {
	fr := &fakeRunner{output: []byte("not a png")}
	a := NewADBWithRunner("adb", "", time.Second, fr)
	img, err := a.Screencap(context.Background())
	if err != nil {
		t.Fatalf("truncated capture should be a miss, not an error: %v", err)
	}
	if img != nil {
		t.Error("expected nil frame for undecodable capture")
	}
}

func TestADB_ScreencapExecFailure(t *testing.T) {
	fr := &fakeRunner{err: errors.New("device offline")}
	a := NewADBWithRunner("adb", "", time.Second, fr)
	if _, err := a.Screencap(context.Background()); err == nil {
		t.Fatal("expected error when adb itself fails")
	}
}
