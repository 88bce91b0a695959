package middleware

import (
	"testing"
	"time"
)

// TestRateLimiterExhaustion 测试令牌耗尽后拒绝请求
func TestRateLimiterExhaustion(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over capacity should be rejected")
	}
}

// TestRateLimiterPerKey 测试不同来源互不影响
func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second key should have its own bucket")
	}
	if rl.allow("10.0.0.1") {
		t.Error("first key should be exhausted")
	}
}

// TestRateLimiterRefill 测试令牌随时间补充
func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be rejected")
	}

	time.Sleep(25 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("request after refill interval should be allowed")
	}
}
