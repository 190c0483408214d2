package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Task names a client request inside the {"task": ..., "payload": ...} envelope.
type Task string

const (
	TaskRoomConnect     Task = "RoomConnect"
	TaskChooseCup       Task = "ChooseCup"
	TaskCreateQuestion  Task = "CreateQuestion"
	TaskPublishQuestion Task = "PublishQuestion"
	TaskDeleteQuestion  Task = "DeleteQuestion"
	TaskModifyQuestion  Task = "ModifyQuestion"
	TaskAnswerQuestion  Task = "AnswerQuestion"
)

// ClientEnvelope is a parsed client request with its payload still raw;
// each dispatch arm decodes the payload type it expects.
type ClientEnvelope struct {
	Task    Task            `json:"task"`
	Payload json.RawMessage `json:"payload"`
}

// ParseClientEnvelope decodes an incoming text frame. Unknown tasks and
// malformed JSON both map to ErrMessageParse so dispatch never guesses.
func ParseClientEnvelope(data []byte) (ClientEnvelope, error) {
	var env ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ClientEnvelope{}, fmt.Errorf("%w: %v", ErrMessageParse, err)
	}
	switch env.Task {
	case TaskRoomConnect, TaskChooseCup, TaskCreateQuestion, TaskPublishQuestion,
		TaskDeleteQuestion, TaskModifyQuestion, TaskAnswerQuestion:
		return env, nil
	}
	return ClientEnvelope{}, fmt.Errorf("%w: unknown task %q", ErrMessageParse, string(env.Task))
}

// RoomConnectPayload joins a room with a self-declared role.
type RoomConnectPayload struct {
	RoomName       string         `json:"room_name"`
	ConnectionType ConnectionType `json:"connection_type"`
}

// CreateQuestionPayload creates a question; the server assigns the id.
type CreateQuestionPayload struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// PublishQuestionPayload shows a question to the room for Secs seconds.
type PublishQuestionPayload struct {
	ID   uuid.UUID `json:"id"`
	Secs int       `json:"secs"`
}

// ModifyQuestionPayload edits a question. A nil field leaves it untouched.
type ModifyQuestionPayload struct {
	ID      uuid.UUID `json:"id"`
	Title   *string   `json:"title,omitempty"`
	Options []string  `json:"options,omitempty"`
}

// AnswerQuestionPayload records a student's option choice.
type AnswerQuestionPayload struct {
	ID     uuid.UUID `json:"id"`
	Answer int       `json:"answer"`
}

// Kind names a server response inside the {"kind": ..., "payload": ...} envelope.
type Kind string

const (
	KindOk                  Kind = "Ok"
	KindRoomInfo            Kind = "RoomInfo"
	KindQuestionsInfo       Kind = "QuestionsInfo"
	KindQuestionPublication Kind = "QuestionPublication"
	KindQuestionDelete      Kind = "QuestionDelete"
	KindError               Kind = "Error"
)

// ServerMessage is the tagged envelope pushed to clients, both as direct
// replies and as broadcasts.
type ServerMessage struct {
	Kind    Kind `json:"kind"`
	Payload any  `json:"payload,omitempty"`
}

// ErrorPayload carries a human-readable error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// QuestionDeletePayload tells students a question is gone.
type QuestionDeletePayload struct {
	ID uuid.UUID `json:"id"`
}

func OkMessage() ServerMessage {
	return ServerMessage{Kind: KindOk}
}

func RoomInfoMessage(summary RoomSummary) ServerMessage {
	return ServerMessage{Kind: KindRoomInfo, Payload: summary}
}

func QuestionsInfoMessage(questions []QuestionInfo) ServerMessage {
	return ServerMessage{Kind: KindQuestionsInfo, Payload: questions}
}

func QuestionPublicationMessage(publication QuestionPublication) ServerMessage {
	return ServerMessage{Kind: KindQuestionPublication, Payload: publication}
}

func QuestionDeleteMessage(id uuid.UUID) ServerMessage {
	return ServerMessage{Kind: KindQuestionDelete, Payload: QuestionDeletePayload{ID: id}}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Kind: KindError, Payload: ErrorPayload{Message: err.Error()}}
}
