package handlers

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("hit %d denied, want allowed", i)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("hit over budget allowed")
	}

	// Other clients have their own budget.
	if !rl.Allow("5.6.7.8") {
		t.Error("fresh client denied")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	current := time.Now()
	rl.now = func() time.Time { return current }

	if !rl.Allow("ip") || !rl.Allow("ip") {
		t.Fatal("initial hits denied")
	}
	if rl.Allow("ip") {
		t.Fatal("third hit allowed within window")
	}

	current = current.Add(61 * time.Second)
	if !rl.Allow("ip") {
		t.Error("hit denied after window passed")
	}
}
