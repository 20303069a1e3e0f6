// Package protocol defines the JSON events exchanged between pong clients
// and the relay server. Every message carries a "type" tag; payload fields
// match what the browser client emits and expects.
package protocol

import "encoding/json"

const (
	TypeCreateRoom         = "createRoom"
	TypeRoomCreated        = "roomCreated"
	TypeJoinRoom           = "joinRoom"
	TypeRoomJoined         = "roomJoined"
	TypeJoinError          = "joinError"
	TypePaddleMove         = "paddleMove"
	TypePaddleUpdate       = "paddleUpdate"
	TypeBallUpdate         = "ballUpdate"
	TypeScoreGoal          = "scoreGoal"
	TypeGameOver           = "gameOver"
	TypePlayerDisconnected = "playerDisconnected"
)

// Player side tags. The room creator is always left, the joiner right.
const (
	PlayerLeft  = "left"
	PlayerRight = "right"
)

// Envelope is the minimal decode target used to dispatch on message type.
type Envelope struct {
	Type string `json:"type"`
}

type CreateRoomMessage struct {
	Type string `json:"type"`
}

type RoomCreatedMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type JoinRoomMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type RoomJoinedMessage struct {
	Type  string `json:"type"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type JoinErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PaddleMoveMessage reports a paddle's vertical position. Clients send it
// as TypePaddleMove; the relay forwards it to the peer as TypePaddleUpdate
// with the same shape.
type PaddleMoveMessage struct {
	Type   string  `json:"type"`
	Y      float64 `json:"y"`
	Player string  `json:"player"`
}

// BallUpdateMessage carries the host's authoritative ball state. The relay
// never interprets it.
type BallUpdateMessage struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
}

// ScoreGoalMessage is the host's report that a side scored.
type ScoreGoalMessage struct {
	Type   string `json:"type"`
	Player string `json:"player"`
}

// ScoreUpdateMessage is the score snapshot the relay broadcasts after a
// goal, under the same "scoreGoal" type tag.
type ScoreUpdateMessage struct {
	Type       string `json:"type"`
	LeftScore  int    `json:"leftScore"`
	RightScore int    `json:"rightScore"`
	Scorer     string `json:"scorer"`
}

type GameOverMessage struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
}

type PlayerDisconnectedMessage struct {
	Type string `json:"type"`
}

// Unmarshal decodes data into T. Malformed input yields the zero value;
// callers treat that as a dropped frame.
func Unmarshal[T any](data []byte) T {
	var parsed T
	json.Unmarshal(data, &parsed)
	return parsed
}

// Marshal encodes a message for the wire.
func Marshal(message any) []byte {
	encoded, _ := json.Marshal(message)
	return encoded
}
