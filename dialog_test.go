package main

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"user.name+tag@domain.co", true},
		{"my_nick%x@mail.example.org", true},
		{"invalid-email", false},
		{"@nouser.com", false},
		{"user@.com", false},
		{"user@domain", false},
		{"user@domain.c", false},
		{"two@@domain.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}

func TestSessionLinearity(t *testing.T) {
	m := NewSessionManager()
	const userID int64 = 42

	if _, ok := m.Get(userID); ok {
		t.Fatal("unexpected session before Begin")
	}

	m.Begin(userID)
	s, ok := m.Get(userID)
	if !ok || s.Stage != StageSubscription {
		t.Fatalf("after Begin: session %+v ok=%v, want subscription stage", s, ok)
	}

	m.Subscribed(userID)
	if s, _ := m.Get(userID); s.Stage != StageNickname {
		t.Fatalf("after Subscribed: stage %v, want nickname", s.Stage)
	}

	m.SetNickname(userID, "nick1")
	s, _ = m.Get(userID)
	if s.Stage != StageEmail || s.Nickname != "nick1" {
		t.Fatalf("after SetNickname: %+v", s)
	}

	m.SetEmail(userID, "a@b.com")
	s, _ = m.Get(userID)
	if s.Stage != StageConfirm || s.Nickname != "nick1" || s.Email != "a@b.com" {
		t.Fatalf("after SetEmail: %+v", s)
	}

	m.Clear(userID)
	if _, ok := m.Get(userID); ok {
		t.Fatal("session still present after Clear")
	}
}

func TestSessionAdvanceWithoutSessionIsNoop(t *testing.T) {
	m := NewSessionManager()
	m.SetNickname(7, "ghost")
	m.SetEmail(7, "g@h.io")
	if _, ok := m.Get(7); ok {
		t.Fatal("advance on a missing session must not create one")
	}
}

func TestAdminStateTakeClears(t *testing.T) {
	m := NewAdminStateManager()
	if got := m.Take(1); got != AdminIdle {
		t.Fatalf("Take on empty = %v, want AdminIdle", got)
	}
	m.Set(1, AdminAwaitingBroadcast)
	if got := m.Take(1); got != AdminAwaitingBroadcast {
		t.Fatalf("Take = %v, want AdminAwaitingBroadcast", got)
	}
	if got := m.Take(1); got != AdminIdle {
		t.Fatalf("second Take = %v, want AdminIdle", got)
	}
}

func TestBanListNeverForgets(t *testing.T) {
	b := NewBanList()
	if b.Contains(5) {
		t.Fatal("empty list contains 5")
	}
	b.Add(5)
	b.Add(3)
	b.Add(5)
	if !b.Contains(5) || !b.Contains(3) {
		t.Fatal("banned users missing")
	}
	ids := b.List()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 5 {
		t.Fatalf("List() = %v, want [3 5]", ids)
	}
}
