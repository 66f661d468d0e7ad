package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/insta-feed/pkg/logger"
)

var fast = Config{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}

func TestDo(t *testing.T) {
	errFlaky := errors.New("flaky")
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		failures  int
		permanent bool
		wantCalls int
		wantErr   error
	}{
		{name: "succeeds first time", failures: 0, wantCalls: 1},
		{name: "recovers after failures", failures: 2, wantCalls: 3},
		{name: "gives up after budget", failures: 10, wantCalls: 4, wantErr: errFlaky},
		{name: "permanent stops at once", failures: 10, permanent: true, wantCalls: 1, wantErr: errFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), logger.Discard(), "test", func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.permanent {
					return Permanent(errFatal)
				}
				return errFlaky
			}, fast)

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, logger.Discard(), "test", func() error {
		calls++
		return errors.New("down")
	}, fast)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls > 1 {
		t.Errorf("calls = %d after cancel", calls)
	}
}

func TestZeroConfigUsesDefaults(t *testing.T) {
	got := Config{MaxRetries: 1}.withDefaults()
	def := DefaultConfig()
	if got.InitialInterval != def.InitialInterval || got.MaxInterval != def.MaxInterval || got.Multiplier != def.Multiplier {
		t.Errorf("withDefaults = %+v", got)
	}
	if got.MaxRetries != 1 {
		t.Errorf("MaxRetries overwritten: %d", got.MaxRetries)
	}
}
