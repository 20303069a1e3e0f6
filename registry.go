package main

import (
	"errors"

	"pong-relay/code"
	"pong-relay/protocol"
)

// Room is a paired match identified by a short numeric code. The creator
// holds the left seat, the joiner the right one.
type Room struct {
	Code       string
	Left       string
	Right      string
	ScoreLeft  int
	ScoreRight int
}

// Full reports whether both seats are taken. A full room accepts no
// further joins.
func (r *Room) Full() bool {
	return r.Right != ""
}

// RoomView is what JoinRoom hands back for broadcasting the pairing.
type RoomView struct {
	Code  string
	Left  string
	Right string
}

// ScoreUpdate is the snapshot produced by RecordGoal.
type ScoreUpdate struct {
	ScoreLeft  int
	ScoreRight int
	Scorer     string
}

var ErrInvalidOrFullRoom = errors.New("room does not exist or is already full")

// Registry owns every active room plus a connection-id index for
// disconnect handling. It is not safe for concurrent use on its own; the
// relay serializes all event handling around it.
type Registry struct {
	rooms  map[string]*Room
	byConn map[string]string
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room), byConn: make(map[string]string)}
}

// CreateRoom allocates a fresh code, retrying until it does not collide
// with an active room, and seats connID on the left.
func (reg *Registry) CreateRoom(connID string) string {
	var roomCode string
	for {
		roomCode = code.GenerateRandom()
		if _, exists := reg.rooms[roomCode]; !exists {
			break
		}
	}
	reg.rooms[roomCode] = &Room{Code: roomCode, Left: connID}
	reg.byConn[connID] = roomCode
	return roomCode
}

// JoinRoom seats connID on the right of the room. Fails when the code is
// unknown or the right seat is taken; a failed join mutates nothing.
func (reg *Registry) JoinRoom(connID string, roomCode string) (RoomView, error) {
	room, ok := reg.rooms[roomCode]
	if !ok || room.Full() {
		return RoomView{}, ErrInvalidOrFullRoom
	}
	room.Right = connID
	reg.byConn[connID] = roomCode
	return RoomView{Code: roomCode, Left: room.Left, Right: room.Right}, nil
}

// RecordGoal increments the scorer's side by one and returns the new
// snapshot. Returns nil when the room is gone or the scorer tag is
// unrecognized.
func (reg *Registry) RecordGoal(roomCode string, scorer string) *ScoreUpdate {
	room, ok := reg.rooms[roomCode]
	if !ok {
		return nil
	}
	switch scorer {
	case protocol.PlayerLeft:
		room.ScoreLeft++
	case protocol.PlayerRight:
		room.ScoreRight++
	default:
		return nil
	}
	return &ScoreUpdate{ScoreLeft: room.ScoreLeft, ScoreRight: room.ScoreRight, Scorer: scorer}
}

// Winner returns which side has reached the threshold, or "" if neither.
// The left side is checked first.
func Winner(scoreLeft, scoreRight, threshold int) string {
	if scoreLeft >= threshold {
		return protocol.PlayerLeft
	}
	if scoreRight >= threshold {
		return protocol.PlayerRight
	}
	return ""
}

// RemoveRoom deletes the room and its index entries. No-op when the code
// is already gone.
func (reg *Registry) RemoveRoom(roomCode string) {
	room, ok := reg.rooms[roomCode]
	if !ok {
		return
	}
	delete(reg.byConn, room.Left)
	if room.Right != "" {
		delete(reg.byConn, room.Right)
	}
	delete(reg.rooms, roomCode)
}

// FindRoomByConnection resolves a connection to its room code.
func (reg *Registry) FindRoomByConnection(connID string) (string, bool) {
	roomCode, ok := reg.byConn[connID]
	return roomCode, ok
}

// GetRoom returns the room for broadcast fan-out.
func (reg *Registry) GetRoom(roomCode string) (*Room, bool) {
	room, ok := reg.rooms[roomCode]
	return room, ok
}
