package service

import (
	"testing"
	"time"
)

func TestOTPRateLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewOTPRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("user@example.com") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("user@example.com") {
		t.Fatalf("fourth request within window should be blocked")
	}
	// Otra clave no comparte la ventana.
	if !limiter.Allow("other@example.com") {
		t.Fatalf("different key should be allowed")
	}
}

func TestOTPRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewOTPRateLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("user@example.com") {
		t.Fatalf("first request should be allowed")
	}
	if limiter.Allow("user@example.com") {
		t.Fatalf("second request should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("user@example.com") {
		t.Fatalf("request after window should be allowed")
	}
}
