package main

import (
	"fmt"
	"testing"

	"pong-relay/protocol"
)

func TestCreateRoomUniqueCodes(t *testing.T) {
	reg := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		roomCode := reg.CreateRoom(fmt.Sprintf("conn-%d", i))
		if len(roomCode) != 5 {
			t.Errorf("wrong code length expected: %d got: %d", 5, len(roomCode))
		}
		if seen[roomCode] {
			t.Errorf("duplicate code among active rooms: %v", roomCode)
		}
		seen[roomCode] = true
	}
}

func TestJoinRoom(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.JoinRoom("conn-2", "99999"); err != ErrInvalidOrFullRoom {
		t.Errorf("expected ErrInvalidOrFullRoom got: %v", err)
	}
	if _, ok := reg.FindRoomByConnection("conn-2"); ok {
		t.Errorf("failed join mutated the registry")
	}

	roomCode := reg.CreateRoom("conn-1")
	view, err := reg.JoinRoom("conn-2", roomCode)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if view.Left != "conn-1" || view.Right != "conn-2" {
		t.Errorf("wrong seats: %+v", view)
	}

	room, _ := reg.GetRoom(roomCode)
	if !room.Full() {
		t.Errorf("room should be full after join")
	}
	if _, err := reg.JoinRoom("conn-3", roomCode); err != ErrInvalidOrFullRoom {
		t.Errorf("full room accepted a join")
	}
	if room.Right != "conn-2" {
		t.Errorf("rejected join overwrote the right seat")
	}
}

func TestRecordGoal(t *testing.T) {
	reg := NewRegistry()
	roomCode := reg.CreateRoom("conn-1")
	reg.JoinRoom("conn-2", roomCode)

	update := reg.RecordGoal(roomCode, protocol.PlayerLeft)
	if update == nil || update.ScoreLeft != 1 || update.ScoreRight != 0 {
		t.Fatalf("wrong snapshot: %+v", update)
	}
	update = reg.RecordGoal(roomCode, protocol.PlayerRight)
	if update == nil || update.ScoreLeft != 1 || update.ScoreRight != 1 || update.Scorer != protocol.PlayerRight {
		t.Fatalf("wrong snapshot: %+v", update)
	}

	if reg.RecordGoal(roomCode, "middle") != nil {
		t.Errorf("unknown scorer tag should be a no-op")
	}

	reg.RemoveRoom(roomCode)
	if reg.RecordGoal(roomCode, protocol.PlayerLeft) != nil {
		t.Errorf("goal on a removed room should be a no-op")
	}
}

func TestWinner(t *testing.T) {
	cases := []struct {
		left, right, threshold int
		want                   string
	}{
		{5, 0, 5, protocol.PlayerLeft},
		{0, 5, 5, protocol.PlayerRight},
		{4, 4, 5, ""},
		{0, 0, 5, ""},
		{10, 3, 10, protocol.PlayerLeft},
		// both at threshold: left takes priority
		{5, 5, 5, protocol.PlayerLeft},
	}
	for _, c := range cases {
		if got := Winner(c.left, c.right, c.threshold); got != c.want {
			t.Errorf("Winner(%d, %d, %d) expected: %q got: %q", c.left, c.right, c.threshold, c.want, got)
		}
	}
}

func TestRemoveRoomIdempotent(t *testing.T) {
	reg := NewRegistry()
	roomCode := reg.CreateRoom("conn-1")
	reg.JoinRoom("conn-2", roomCode)

	reg.RemoveRoom(roomCode)
	reg.RemoveRoom(roomCode)

	if _, ok := reg.GetRoom(roomCode); ok {
		t.Errorf("room still present after removal")
	}
	if _, ok := reg.FindRoomByConnection("conn-1"); ok {
		t.Errorf("left connection still indexed after removal")
	}
	if _, ok := reg.FindRoomByConnection("conn-2"); ok {
		t.Errorf("right connection still indexed after removal")
	}
}

func TestFindRoomByConnection(t *testing.T) {
	reg := NewRegistry()
	roomCode := reg.CreateRoom("conn-1")

	found, ok := reg.FindRoomByConnection("conn-1")
	if !ok || found != roomCode {
		t.Errorf("expected: %v got: %v", roomCode, found)
	}
	if _, ok := reg.FindRoomByConnection("stranger"); ok {
		t.Errorf("unknown connection resolved to a room")
	}
}
