package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type RoomLogger struct {
	zerolog zerolog.Logger
}

func GetRoomLogger(connID string, roomCode string) RoomLogger {
	return RoomLogger{log.With().Str("conn-id", connID).Str("room-code", roomCode).Logger()}
}

func (l RoomLogger) JoinedRoom() {
	l.zerolog.Info().Msg("Joined room")
}

func (l RoomLogger) JoinRejected() {
	l.zerolog.Info().Msg("Join rejected")
}

func (l RoomLogger) GoalScored(scoreLeft int, scoreRight int) {
	l.zerolog.Info().Int("left", scoreLeft).Int("right", scoreRight).Msg("Goal scored")
}

func (l RoomLogger) GameOver(winner string) {
	l.zerolog.Info().Str("winner", winner).Msg("Game over")
}

func (l RoomLogger) Disconnected() {
	l.zerolog.Info().Msg("Disconnected")
}

func (l RoomLogger) RemovingRoom() {
	l.zerolog.Info().Msg("Removing room")
}

func LogCreatedRoom(roomCode string) {
	log.Info().Str("room-code", roomCode).Msg("Created")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
