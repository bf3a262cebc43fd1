package env

import (
	"os"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestGetEnvMissing(t *testing.T) {
	os.Unsetenv("KONNECT_TEST_MISSING")
	_, err := GetEnv("test value", "KONNECT_TEST_MISSING")
	if err == nil {
		t.Fatalf("expected error for missing variable")
	}
	if !IsMissing(err) {
		t.Fatalf("expected missing error, got %v", err)
	}
}

func TestGetIntEnv(t *testing.T) {
	setEnv(t, "KONNECT_TEST_INT", " 8080 ")
	v, err := GetIntEnv("port", "KONNECT_TEST_INT")
	if err != nil {
		t.Fatalf("get int: %v", err)
	}
	if v != 8080 {
		t.Fatalf("expected 8080, got %d", v)
	}

	setEnv(t, "KONNECT_TEST_INT", "eighty")
	if _, err := GetIntEnv("port", "KONNECT_TEST_INT"); err == nil || IsMissing(err) {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestGetDurationAndBytesEnv(t *testing.T) {
	setEnv(t, "KONNECT_TEST_DURATION", "1h30m")
	d, err := GetDurationEnv("ttl", "KONNECT_TEST_DURATION")
	if err != nil {
		t.Fatalf("get duration: %v", err)
	}
	if d != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", d)
	}

	setEnv(t, "KONNECT_TEST_BYTES", "2MB")
	b, err := GetBytesEnv("size", "KONNECT_TEST_BYTES")
	if err != nil {
		t.Fatalf("get bytes: %v", err)
	}
	if b != 2*datasize.MB {
		t.Fatalf("expected 2MB, got %s", b.HumanReadable())
	}
}

func TestGetBoolEnvAndFallback(t *testing.T) {
	setEnv(t, "KONNECT_TEST_BOOL", "true")
	v, err := GetBoolEnv("flag", "KONNECT_TEST_BOOL")
	if err != nil || !v {
		t.Fatalf("expected true, got %v (%v)", v, err)
	}

	setEnv(t, "KONNECT_TEST_BLANK", "   ")
	if got := GetEnvOr("KONNECT_TEST_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
}
