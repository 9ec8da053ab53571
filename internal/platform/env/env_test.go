package env

import (
	"testing"
	"time"
)

func TestString_FallbackWhenEmpty(t *testing.T) {
	t.Setenv("ENV_TEST_STR", "  ")
	if got := String("ENV_TEST_STR", "def"); got != "def" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("ENV_TEST_STR", "value")
	if got := String("ENV_TEST_STR", "def"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestInt_InvalidUsesFallback(t *testing.T) {
	t.Setenv("ENV_TEST_INT", "abc")
	if got := Int("ENV_TEST_INT", 7); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	t.Setenv("ENV_TEST_INT", "12")
	if got := Int("ENV_TEST_INT", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestBoolAndDuration(t *testing.T) {
	t.Setenv("ENV_TEST_BOOL", "true")
	if !Bool("ENV_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("ENV_TEST_DUR", "1500ms")
	if got := Duration("ENV_TEST_DUR", time.Second); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %s", got)
	}
	t.Setenv("ENV_TEST_DUR", "-1s")
	if got := Duration("ENV_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("expected fallback for negative, got %s", got)
	}
}
