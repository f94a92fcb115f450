package main

import (
	"testing"
	"time"
)

func TestRateLimiterCooldown(t *testing.T) {
	rl := NewRateLimiter(50 * time.Millisecond)

	if !rl.Admit(1) {
		t.Fatal("first message must be admitted")
	}
	if rl.Admit(1) {
		t.Fatal("message inside the cooldown must be dropped")
	}

	time.Sleep(60 * time.Millisecond)
	if !rl.Admit(1) {
		t.Fatal("message after the cooldown must be admitted")
	}
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(time.Minute)

	if !rl.Admit(1) {
		t.Fatal("first message from user 1 must be admitted")
	}
	if !rl.Admit(2) {
		t.Fatal("user 2 must not share user 1's cooldown")
	}
	if rl.Admit(1) || rl.Admit(2) {
		t.Fatal("both users are now inside their cooldown")
	}
}

func TestRateLimiterZeroCooldownDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	for i := 0; i < 10; i++ {
		if !rl.Admit(1) {
			t.Fatal("zero cooldown must admit everything")
		}
	}
}
