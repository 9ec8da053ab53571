package refresh

import (
	"context"
	"errors"
	"testing"
)

type countingFetcher struct {
	calls int
	err   error
}

func (f *countingFetcher) FetchAll(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	if _, err := New("every now and then", &countingFetcher{}, nil); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestTick_CallsFetchAll(t *testing.T) {
	f := &countingFetcher{}
	r, err := New("*/5 * * * *", f, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Tick()
	f.err = errors.New("offline")
	r.Tick()

	if f.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", f.calls)
	}
}

func TestStartStop(t *testing.T) {
	r, err := New("@every 1h", &countingFetcher{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Start()
	r.Stop()
}
