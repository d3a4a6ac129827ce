package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExportLimiter_AcquireRelease(t *testing.T) {
	limiter := NewExportLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.MaxConcurrent(); got != 2 {
		t.Fatalf("MaxConcurrent = %d, want 2", got)
	}

	for i := range 2 {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if got := limiter.Active(); got != 2 {
		t.Errorf("Active = %d, want 2", got)
	}

	limiter.Release()
	limiter.Release()
	if got := limiter.Active(); got != 0 {
		t.Errorf("Active after release = %d, want 0", got)
	}
}

func TestExportLimiter_TimesOutWhenFull(t *testing.T) {
	limiter := NewExportLimiter(1, 30*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer limiter.Release()

	if err := limiter.Acquire(ctx); !errors.Is(err, ErrTooManyExports) {
		t.Errorf("Acquire on full limiter = %v, want ErrTooManyExports", err)
	}
	if got := MapError(ErrTooManyExports).Code; got != "RATE002" {
		t.Errorf("MapError code = %s, want RATE002", got)
	}
}

func TestExportLimiter_ContextCancelled(t *testing.T) {
	limiter := NewExportLimiter(1, time.Minute)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire with cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestExportLimiter_Defaults(t *testing.T) {
	limiter := NewExportLimiter(0, 0)
	if got := limiter.MaxConcurrent(); got != DefaultMaxConcurrentExports {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentExports)
	}
	if limiter.maxWait != DefaultExportWait {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultExportWait)
	}
}

func TestExportLimiter_WaitForDrain(t *testing.T) {
	limiter := NewExportLimiter(1, time.Second)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		limiter.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := limiter.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain: %v", err)
	}
}
