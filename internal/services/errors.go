package services

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room not found or game already in progress")
	ErrNotHost         = errors.New("only the host can do that")
	ErrCannotStart     = errors.New("cannot start game: need at least 2 players and be in lobby")
	ErrNoRoomCodes     = errors.New("could not allocate a unique room code")
	ErrGameInProgress  = errors.New("settings cannot be changed during a game")
	ErrInvalidSettings = errors.New("question count and time per question must be at least 1")
)
