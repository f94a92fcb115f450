package main

import (
	"testing"

	"go.uber.org/zap"
)

func TestBroadcastCompleteness(t *testing.T) {
	store, repo, db := newTestStore(t)
	for id := int64(1); id <= 5; id++ {
		if err := store.Register(testParticipant(id, "nick"+string(rune('0'+id)))); err != nil {
			t.Fatal(err)
		}
	}

	api := newFakeAPI()
	api.failChats[2] = true
	api.failChats[4] = true

	engine := NewBroadcaster(api, store, repo, zap.NewNop())
	delivered, failed, err := engine.Broadcast("привіт")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if delivered != 3 {
		t.Fatalf("delivered = %d, want 3", delivered)
	}
	if len(failed) != 2 || failed[0] != 2 || failed[1] != 4 {
		t.Fatalf("failed = %v, want [2 4]", failed)
	}

	// Exactly one log entry with matching counts.
	var rows int
	var success int
	var failedIDs string
	if err := db.QueryRow("SELECT COUNT(*) FROM broadcast_logs").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Fatalf("broadcast_logs rows = %d, want 1", rows)
	}
	if err := db.QueryRow("SELECT success_count, failed_ids FROM broadcast_logs").Scan(&success, &failedIDs); err != nil {
		t.Fatal(err)
	}
	if success != 3 || failedIDs != "2, 4" {
		t.Fatalf("log entry = (%d, %q), want (3, \"2, 4\")", success, failedIDs)
	}
}

func TestBroadcastAllFail(t *testing.T) {
	store, repo, _ := newTestStore(t)
	for id := int64(1); id <= 3; id++ {
		if err := store.Register(testParticipant(id, "nick"+string(rune('0'+id)))); err != nil {
			t.Fatal(err)
		}
		// every recipient rejects delivery
	}

	api := newFakeAPI()
	for id := int64(1); id <= 3; id++ {
		api.failChats[id] = true
	}

	engine := NewBroadcaster(api, store, repo, zap.NewNop())
	delivered, failed, err := engine.Broadcast("привіт")
	if err != nil {
		t.Fatalf("total delivery failure must not be a broadcast error: %v", err)
	}
	if delivered != 0 || len(failed) != 3 {
		t.Fatalf("delivered = %d, failed = %v", delivered, failed)
	}
}

func TestBroadcastEmptyStore(t *testing.T) {
	store, repo, db := newTestStore(t)
	engine := NewBroadcaster(newFakeAPI(), store, repo, zap.NewNop())

	delivered, failed, err := engine.Broadcast("привіт")
	if err != nil || delivered != 0 || len(failed) != 0 {
		t.Fatalf("empty broadcast = (%d, %v, %v)", delivered, failed, err)
	}
	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM broadcast_logs").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Fatalf("even an empty pass appends its log entry, rows = %d", rows)
	}
}
