package delay

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-feed/pkg/logger"
)

func newStarted(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New(logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	t.Cleanup(func() { _ = s.Shutdown() })
	return s
}

func TestAfterFires(t *testing.T) {
	s := newStarted(t)

	var ran atomic.Int32
	h, err := s.After("submit", 20*time.Millisecond, func() { ran.Add(1) })
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("delay never fired")
	}
	if !h.Fired() || ran.Load() != 1 {
		t.Errorf("fired=%v runs=%d", h.Fired(), ran.Load())
	}
	if h.Cancel() {
		t.Error("cancelled a delay that already fired")
	}
}

func TestCancelBeforeFire(t *testing.T) {
	s := newStarted(t)

	var ran atomic.Int32
	h, err := s.After("load", 100*time.Millisecond, func() { ran.Add(1) })
	if err != nil {
		t.Fatal(err)
	}

	if !h.Cancel() {
		t.Fatal("Cancel on a pending delay returned false")
	}
	if h.Cancel() {
		t.Error("second Cancel returned true")
	}

	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Cancel")
	}

	time.Sleep(200 * time.Millisecond)
	if ran.Load() != 0 || h.Fired() {
		t.Errorf("cancelled delay ran %d times", ran.Load())
	}
}

func TestShutdownCancelsPending(t *testing.T) {
	s, err := New(logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	s.Start()

	h, err := s.After("debounce", time.Hour, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("pending handle not released by Shutdown")
	}
	if h.Fired() {
		t.Error("handle fired during shutdown")
	}
}

func TestZeroDelayRunsImmediately(t *testing.T) {
	s := newStarted(t)

	h, err := s.After("now", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("zero delay never fired")
	}
}

func TestTinyDelaysStillFire(t *testing.T) {
	s := newStarted(t)

	for _, d := range []time.Duration{time.Nanosecond, time.Microsecond} {
		h, err := s.After("tiny", d, nil)
		if err != nil {
			t.Fatalf("After(%v): %v", d, err)
		}
		select {
		case <-h.Done():
		case <-time.After(2 * time.Second):
			t.Fatalf("After(%v) never fired", d)
		}
	}
}
