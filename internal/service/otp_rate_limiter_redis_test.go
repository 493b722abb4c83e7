package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeScriptRunner struct {
	lastKeys []string
	lastArgs []interface{}
	hits     int64
	evalErr  error
}

func (f *fakeScriptRunner) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.lastKeys = keys
	f.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if f.evalErr != nil {
		cmd.SetErr(f.evalErr)
		return cmd
	}
	cmd.SetVal(f.hits)
	return cmd
}

func TestRedisOTPLimiterWithinQuota(t *testing.T) {
	runner := &fakeScriptRunner{hits: 2}
	limiter := newRedisOTPLimiter(runner, 10*time.Minute, 3)

	if !limiter.Allow(" User@Example.com ") {
		t.Fatalf("expected request within quota to pass")
	}
	if len(runner.lastKeys) != 1 || runner.lastKeys[0] != "pagecraft:otp:requests:user@example.com" {
		t.Fatalf("unexpected redis key: %+v", runner.lastKeys)
	}
	if len(runner.lastArgs) != 1 || runner.lastArgs[0] != int64(600000) {
		t.Fatalf("expected window of 600000ms, got %+v", runner.lastArgs)
	}
}

func TestRedisOTPLimiterOverQuota(t *testing.T) {
	limiter := newRedisOTPLimiter(&fakeScriptRunner{hits: 4}, time.Minute, 3)
	if limiter.Allow("user@example.com") {
		t.Fatalf("expected request over quota to be blocked")
	}
}

func TestRedisOTPLimiterFailsOpenOnRedisError(t *testing.T) {
	limiter := newRedisOTPLimiter(&fakeScriptRunner{evalErr: errors.New("connection refused")}, time.Minute, 3)
	if !limiter.Allow("user@example.com") {
		t.Fatalf("expected redis failure to let the request through")
	}
}

func TestRedisOTPLimiterRejectsBlankKey(t *testing.T) {
	limiter := newRedisOTPLimiter(&fakeScriptRunner{hits: 1}, time.Minute, 3)
	if limiter.Allow("   ") {
		t.Fatalf("expected blank key to be rejected")
	}
}

func TestRedisOTPLimiterNilClient(t *testing.T) {
	if NewRedisOTPRateLimiter(nil, time.Minute, 3) != nil {
		t.Fatalf("expected nil limiter for nil client")
	}
	var limiter *redisOTPLimiter
	if !limiter.Allow("user@example.com") {
		t.Fatalf("expected nil limiter to let the request through")
	}
}
