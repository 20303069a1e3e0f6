package main

import (
	"net"
	"sync"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"

	"pong-relay/protocol"
)

const outboundBuffer = 32

// client is one websocket participant. Outbound frames go through a
// buffered channel so a slow peer never blocks event handling; when the
// buffer is full, frames are dropped (delivery is best-effort).
type client struct {
	id     string
	conn   net.Conn
	out    chan []byte
	closed bool
}

// Relay routes room events between paired connections. All event handling
// runs under one lock, so registry operations never interleave. Ball and
// paddle payloads are forwarded without validation: the host client is
// trusted as the sole authority for ball and score state.
type Relay struct {
	mu       sync.Mutex
	registry *Registry
	clients  map[string]*client
	winScore int
}

func NewRelay(registry *Registry, winScore int) *Relay {
	return &Relay{registry: registry, clients: make(map[string]*client), winScore: winScore}
}

// ServeConn owns conn until the client disconnects.
func (r *Relay) ServeConn(conn net.Conn) {
	c := &client{id: uuid.NewString(), conn: conn, out: make(chan []byte, outboundBuffer)}
	r.mu.Lock()
	r.clients[c.id] = c
	r.mu.Unlock()

	go c.writeLoop()

	for {
		msg, err := wsutil.ReadClientText(conn)
		if err != nil {
			break
		}
		r.handleMessage(c, msg)
	}
	r.disconnect(c)
}

func (c *client) writeLoop() {
	for msg := range c.out {
		if err := wsutil.WriteServerText(c.conn, msg); err != nil {
			c.conn.Close()
			for range c.out {
			}
			return
		}
	}
	c.conn.Close()
}

// RoomStatus reports whether a room exists and still has an open seat.
func (r *Relay) RoomStatus(roomCode string) (exists bool, open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.registry.GetRoom(roomCode)
	if !ok {
		return false, false
	}
	return true, !room.Full()
}

func (r *Relay) handleMessage(c *client, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Malformed payloads and unknown types fall through and are dropped.
	switch protocol.Unmarshal[protocol.Envelope](raw).Type {
	case protocol.TypeCreateRoom:
		r.createRoom(c)
	case protocol.TypeJoinRoom:
		r.joinRoom(c, protocol.Unmarshal[protocol.JoinRoomMessage](raw))
	case protocol.TypePaddleMove:
		r.relayPaddle(c, protocol.Unmarshal[protocol.PaddleMoveMessage](raw))
	case protocol.TypeBallUpdate:
		r.relayToPeers(c, raw)
	case protocol.TypeScoreGoal:
		r.scoreGoal(c, protocol.Unmarshal[protocol.ScoreGoalMessage](raw))
	case protocol.TypeGameOver:
		r.relayToPeers(c, raw)
	}
}

func (r *Relay) createRoom(c *client) {
	if _, ok := r.registry.FindRoomByConnection(c.id); ok {
		return
	}
	roomCode := r.registry.CreateRoom(c.id)
	r.send(c.id, protocol.Marshal(protocol.RoomCreatedMessage{Type: protocol.TypeRoomCreated, Code: roomCode}))
	LogCreatedRoom(roomCode)
}

func (r *Relay) joinRoom(c *client, m protocol.JoinRoomMessage) {
	if _, ok := r.registry.FindRoomByConnection(c.id); ok {
		return
	}
	view, err := r.registry.JoinRoom(c.id, m.Code)
	if err != nil {
		r.send(c.id, protocol.Marshal(protocol.JoinErrorMessage{Type: protocol.TypeJoinError, Message: "Room is invalid or already full."}))
		GetRoomLogger(c.id, m.Code).JoinRejected()
		return
	}
	joined := protocol.Marshal(protocol.RoomJoinedMessage{Type: protocol.TypeRoomJoined, Left: view.Left, Right: view.Right})
	r.send(view.Left, joined)
	r.send(view.Right, joined)
	GetRoomLogger(c.id, m.Code).JoinedRoom()
}

func (r *Relay) relayPaddle(c *client, m protocol.PaddleMoveMessage) {
	m.Type = protocol.TypePaddleUpdate
	r.relayToPeers(c, protocol.Marshal(m))
}

// relayToPeers forwards payload to every other occupant of the sender's
// room. Payload contents are never interpreted. Senderless frames (no
// live room) are dropped.
func (r *Relay) relayToPeers(c *client, payload []byte) {
	roomCode, ok := r.registry.FindRoomByConnection(c.id)
	if !ok {
		return
	}
	room, ok := r.registry.GetRoom(roomCode)
	if !ok {
		return
	}
	for _, id := range []string{room.Left, room.Right} {
		if id != "" && id != c.id {
			r.send(id, payload)
		}
	}
}

func (r *Relay) scoreGoal(c *client, m protocol.ScoreGoalMessage) {
	roomCode, ok := r.registry.FindRoomByConnection(c.id)
	if !ok {
		return
	}
	update := r.registry.RecordGoal(roomCode, m.Player)
	if update == nil {
		return
	}
	logger := GetRoomLogger(c.id, roomCode)
	r.broadcast(roomCode, protocol.Marshal(protocol.ScoreUpdateMessage{
		Type:       protocol.TypeScoreGoal,
		LeftScore:  update.ScoreLeft,
		RightScore: update.ScoreRight,
		Scorer:     update.Scorer,
	}))
	logger.GoalScored(update.ScoreLeft, update.ScoreRight)
	if winner := Winner(update.ScoreLeft, update.ScoreRight, r.winScore); winner != "" {
		r.broadcast(roomCode, protocol.Marshal(protocol.GameOverMessage{Type: protocol.TypeGameOver, Winner: winner}))
		r.registry.RemoveRoom(roomCode)
		logger.GameOver(winner)
		logger.RemovingRoom()
	}
}

// broadcast sends payload to every occupant of the room, sender included.
func (r *Relay) broadcast(roomCode string, payload []byte) {
	room, ok := r.registry.GetRoom(roomCode)
	if !ok {
		return
	}
	for _, id := range []string{room.Left, room.Right} {
		if id != "" {
			r.send(id, payload)
		}
	}
}

// send queues payload for one connection. Must be called with mu held.
func (r *Relay) send(id string, payload []byte) {
	c, ok := r.clients[id]
	if !ok || c.closed {
		return
	}
	select {
	case c.out <- payload:
	default:
	}
}

// disconnect tears down whatever room the connection occupied and tells
// the remaining occupant. Removal is idempotent: when both occupants drop
// in the same tick the second finds no room and only cleans itself up.
func (r *Relay) disconnect(c *client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.closed {
		return
	}
	if roomCode, ok := r.registry.FindRoomByConnection(c.id); ok {
		if room, ok := r.registry.GetRoom(roomCode); ok {
			for _, id := range []string{room.Left, room.Right} {
				if id != "" && id != c.id {
					r.send(id, protocol.Marshal(protocol.PlayerDisconnectedMessage{Type: protocol.TypePlayerDisconnected}))
				}
			}
		}
		r.registry.RemoveRoom(roomCode)
		logger := GetRoomLogger(c.id, roomCode)
		logger.Disconnected()
		logger.RemovingRoom()
	}
	c.closed = true
	close(c.out)
	delete(r.clients, c.id)
}
