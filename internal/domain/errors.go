package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRoom is returned when a room name does not exist in the registry.
	ErrInvalidRoom = errors.New("invalid room")
	// ErrAlreadyConnected is returned when a session id is already present in a room.
	ErrAlreadyConnected = errors.New("client already connected")
	// ErrNoRoom is returned when a session acts before joining any room.
	ErrNoRoom = errors.New("not connected to any room")
	// ErrInvalidSession is returned when a room-internal session lookup fails.
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidQuestion is returned when a submitted question id is unknown.
	ErrInvalidQuestion = errors.New("invalid question id")
	// ErrInvalidAnswer is returned when an answer index is out of bounds.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrMessageParse is returned for malformed incoming envelopes.
	ErrMessageParse = errors.New("failed to parse websocket message")
	// ErrRoomExists is returned by room creation when the name is taken.
	ErrRoomExists = errors.New("room already exists")
	// ErrRoomNotFound is returned by room deletion when the name is unknown.
	ErrRoomNotFound = errors.New("room not found")
)

// InvalidRoomError wraps ErrInvalidRoom with the offending room name.
func InvalidRoomError(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidRoom, name)
}

// InvalidQuestionError wraps ErrInvalidQuestion with the offending id.
func InvalidQuestionError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuestion, id)
}

// InvalidAnswerError wraps ErrInvalidAnswer with the offending index.
func InvalidAnswerError(index int) error {
	return fmt.Errorf("%w: index %d", ErrInvalidAnswer, index)
}
