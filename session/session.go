// Package session implements the multiplayer controller a pong client runs
// against the relay server. A session owns the local player's role and
// decides what goes on the wire; everything the game engine does with the
// relayed state happens behind the Game interface.
//
// The room creator becomes the left player and host. Only the host pushes
// ball state and goal reports; the guest applies whatever the relay
// delivers and never simulates authoritatively.
package session

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"pong-relay/protocol"
)

// Game is the narrow surface the session drives on the engine side.
// Callbacks run on the Run goroutine.
type Game interface {
	RoomCreated(code string)
	MatchReady(left string, right string)
	PaddleMoved(player string, y float64)
	BallMoved(x, y, velocityX, velocityY float64)
	ScoreChanged(scoreLeft int, scoreRight int, scorer string)
	MatchOver(winner string)
	JoinRejected(message string)
	PeerDisconnected()
}

var (
	ErrNotHost        = errors.New("only the host owns ball and score state")
	ErrRoleAlreadySet = errors.New("role was already chosen")
)

type Session struct {
	conn net.Conn
	game Game

	mu         sync.Mutex
	role       string
	ready      bool
	lastY      float64
	sentPaddle bool
}

// Dial connects to the relay server, e.g. ws://localhost:3000/ws.
func Dial(ctx context.Context, url string, game Game) (*Session, error) {
	conn, _, _, err := ws.DefaultDialer.Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	return New(conn, game), nil
}

// New wraps an established connection.
func New(conn net.Conn, game Game) *Session {
	return &Session{conn: conn, game: game}
}

// CreateRoom asks the relay for a fresh room. The caller takes the left
// seat and becomes the host.
func (s *Session) CreateRoom() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != "" {
		return ErrRoleAlreadySet
	}
	s.role = protocol.PlayerLeft
	return s.send(protocol.CreateRoomMessage{Type: protocol.TypeCreateRoom})
}

// JoinRoom joins an existing room by code. The caller takes the right
// seat. A rejected join resets the role so the user can retry.
func (s *Session) JoinRoom(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != "" {
		return ErrRoleAlreadySet
	}
	s.role = protocol.PlayerRight
	return s.send(protocol.JoinRoomMessage{Type: protocol.TypeJoinRoom, Code: code})
}

// Role returns "left" or "right", or "" before a room was chosen.
func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// IsHost reports whether this side owns ball and score authority.
func (s *Session) IsHost() bool {
	return s.Role() == protocol.PlayerLeft
}

// MovePaddle reports the local paddle's vertical position. It sends only
// when the position changed since the last send, and only while a match
// is live; anything else is a silent no-op.
func (s *Session) MovePaddle(y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil
	}
	if s.sentPaddle && y == s.lastY {
		return nil
	}
	s.sentPaddle = true
	s.lastY = y
	return s.send(protocol.PaddleMoveMessage{Type: protocol.TypePaddleMove, Y: y, Player: s.role})
}

// UpdateBall broadcasts authoritative ball state after a physics step.
// Host only.
func (s *Session) UpdateBall(x, y, velocityX, velocityY float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != protocol.PlayerLeft {
		return ErrNotHost
	}
	if !s.ready {
		return nil
	}
	return s.send(protocol.BallUpdateMessage{
		Type:      protocol.TypeBallUpdate,
		X:         x,
		Y:         y,
		VelocityX: velocityX,
		VelocityY: velocityY,
	})
}

// ReportGoal reports that a side scored. Host only; the resulting score
// snapshot comes back from the relay.
func (s *Session) ReportGoal(player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != protocol.PlayerLeft {
		return ErrNotHost
	}
	if !s.ready {
		return nil
	}
	return s.send(protocol.ScoreGoalMessage{Type: protocol.TypeScoreGoal, Player: player})
}

// AnnounceGameOver relays a match-end notice straight to the peer. Host
// only.
func (s *Session) AnnounceGameOver(winner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != protocol.PlayerLeft {
		return ErrNotHost
	}
	return s.send(protocol.GameOverMessage{Type: protocol.TypeGameOver, Winner: winner})
}

// Run applies relay events to the game until the connection closes.
func (s *Session) Run() error {
	for {
		raw, err := wsutil.ReadServerText(s.conn)
		if err != nil {
			return err
		}
		s.handle(raw)
	}
}

func (s *Session) Close() error {
	return s.conn.Close()
}

// send must be called with mu held.
func (s *Session) send(message any) error {
	return wsutil.WriteClientText(s.conn, protocol.Marshal(message))
}

func (s *Session) handle(raw []byte) {
	switch protocol.Unmarshal[protocol.Envelope](raw).Type {
	case protocol.TypeRoomCreated:
		m := protocol.Unmarshal[protocol.RoomCreatedMessage](raw)
		s.game.RoomCreated(m.Code)
	case protocol.TypeRoomJoined:
		m := protocol.Unmarshal[protocol.RoomJoinedMessage](raw)
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
		s.game.MatchReady(m.Left, m.Right)
	case protocol.TypeJoinError:
		m := protocol.Unmarshal[protocol.JoinErrorMessage](raw)
		s.mu.Lock()
		s.role = ""
		s.mu.Unlock()
		s.game.JoinRejected(m.Message)
	case protocol.TypePaddleUpdate:
		m := protocol.Unmarshal[protocol.PaddleMoveMessage](raw)
		s.game.PaddleMoved(m.Player, m.Y)
	case protocol.TypeBallUpdate:
		m := protocol.Unmarshal[protocol.BallUpdateMessage](raw)
		s.game.BallMoved(m.X, m.Y, m.VelocityX, m.VelocityY)
	case protocol.TypeScoreGoal:
		m := protocol.Unmarshal[protocol.ScoreUpdateMessage](raw)
		s.game.ScoreChanged(m.LeftScore, m.RightScore, m.Scorer)
	case protocol.TypeGameOver:
		m := protocol.Unmarshal[protocol.GameOverMessage](raw)
		s.mu.Lock()
		s.ready = false
		s.mu.Unlock()
		s.game.MatchOver(m.Winner)
	case protocol.TypePlayerDisconnected:
		s.mu.Lock()
		s.ready = false
		s.mu.Unlock()
		s.game.PeerDisconnected()
	}
}
