package http

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/renato145/interactive-class/internal/app"
	"github.com/renato145/interactive-class/internal/domain"
)

// session is the per-connection state machine: Connected (no room) ->
// InRoom -> Closed. It runs entirely on the connection's read goroutine;
// other sessions reach it only through its outbox, so none of its fields
// need locking.
type session struct {
	id       uuid.UUID
	registry *app.Registry
	outbox   *outbox

	// room is empty until a RoomConnect succeeds; role is only meaningful
	// while room is set.
	room string
	role domain.ConnectionType
}

func newSession(registry *app.Registry) *session {
	return &session{
		id:       uuid.New(),
		registry: registry,
		outbox:   newOutbox(),
	}
}

// reply queues a direct response on the session's own mailbox. Replies are
// always queued before any broadcast the same operation triggers, so a sender
// racing to read its own state sees at least its own effect.
func (s *session) reply(msg domain.ServerMessage) {
	if !s.outbox.Push(msg) {
		log.Printf("session %s: dropped %s reply", s.id, msg.Kind)
	}
}

// dispatch handles one text frame end to end. One message finishes before the
// next is read, so every arm below is atomic from the client's point of view.
func (s *session) dispatch(data []byte) {
	env, err := domain.ParseClientEnvelope(data)
	if err != nil {
		log.Printf("session %s: %v", s.id, err)
		s.reply(domain.ErrorMessage(err))
		return
	}

	switch env.Task {
	case domain.TaskRoomConnect:
		s.roomConnect(env.Payload)
	case domain.TaskChooseCup:
		s.chooseCup(env.Payload)
	case domain.TaskCreateQuestion:
		s.createQuestion(env.Payload)
	case domain.TaskPublishQuestion:
		s.publishQuestion(env.Payload)
	case domain.TaskDeleteQuestion:
		s.deleteQuestion(env.Payload)
	case domain.TaskModifyQuestion:
		s.modifyQuestion(env.Payload)
	case domain.TaskAnswerQuestion:
		s.answerQuestion(env.Payload)
	}
}

func (s *session) payloadError(err error) {
	parseErr := fmt.Errorf("%w: %v", domain.ErrMessageParse, err)
	log.Printf("session %s: %v", s.id, parseErr)
	s.reply(domain.ErrorMessage(parseErr))
}

// roomConnect joins a room. A failed join leaves the session exactly where it
// was; a successful join to a different room runs the leave cleanup against
// the previous room so a session never occupies two rooms.
func (s *session) roomConnect(payload json.RawMessage) {
	var p domain.RoomConnectPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.payloadError(err)
		return
	}
	if !p.ConnectionType.Valid() {
		s.payloadError(fmt.Errorf("unknown connection type %q", string(p.ConnectionType)))
		return
	}

	err := s.registry.WithRoom(p.RoomName, func(room *app.Room) error {
		var addErr error
		switch p.ConnectionType {
		case domain.Student:
			addErr = room.AddStudent(s.id, s.outbox)
		case domain.Teacher:
			addErr = room.AddTeacher(s.id, s.outbox)
		}
		if addErr != nil {
			return addErr
		}
		summary := room.Summary()
		s.reply(domain.RoomInfoMessage(summary))
		if p.ConnectionType == domain.Teacher {
			s.reply(domain.QuestionsInfoMessage(room.QuestionsInfo()))
		}
		if p.ConnectionType == domain.Student {
			room.Broadcast(domain.RoomInfoMessage(summary), domain.Teacher, s.id)
		}
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
		return
	}

	if s.room != "" && s.room != p.RoomName {
		s.leaveRoom(s.room)
	}
	s.room = p.RoomName
	s.role = p.ConnectionType
}

func (s *session) chooseCup(payload json.RawMessage) {
	var color domain.CupColor
	if err := json.Unmarshal(payload, &color); err != nil {
		s.payloadError(err)
		return
	}
	if !color.Valid() {
		s.payloadError(fmt.Errorf("unknown cup color %q", string(color)))
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		if err := room.SelectCup(s.id, color); err != nil {
			return err
		}
		s.reply(domain.OkMessage())
		room.Broadcast(domain.RoomInfoMessage(room.Summary()), domain.Teacher, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

func (s *session) createQuestion(payload json.RawMessage) {
	var p domain.CreateQuestionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.payloadError(err)
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		room.AddQuestion(p.Title, p.Options)
		msg := domain.QuestionsInfoMessage(room.QuestionsInfo())
		s.reply(msg)
		room.Broadcast(msg, domain.Teacher, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

func (s *session) publishQuestion(payload json.RawMessage) {
	var p domain.PublishQuestionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.payloadError(err)
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		question, ok := room.Question(p.ID)
		if !ok {
			return domain.InvalidQuestionError(p.ID)
		}
		msg := domain.QuestionPublicationMessage(domain.QuestionPublication{
			ID:      question.ID,
			Title:   question.Title,
			Options: append([]string(nil), question.Options...),
			Secs:    p.Secs,
		})
		s.reply(msg)
		room.BroadcastAll(msg, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

func (s *session) deleteQuestion(payload json.RawMessage) {
	var id uuid.UUID
	if err := json.Unmarshal(payload, &id); err != nil {
		s.payloadError(err)
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		if !room.DeleteQuestion(id) {
			return domain.InvalidQuestionError(id)
		}
		msg := domain.QuestionsInfoMessage(room.QuestionsInfo())
		s.reply(msg)
		room.Broadcast(msg, domain.Teacher, s.id)
		room.Broadcast(domain.QuestionDeleteMessage(id), domain.Student, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

func (s *session) modifyQuestion(payload json.RawMessage) {
	var p domain.ModifyQuestionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.payloadError(err)
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		question, ok := room.Question(p.ID)
		if !ok {
			return domain.InvalidQuestionError(p.ID)
		}
		question.Modify(p.Title, p.Options)
		msg := domain.QuestionsInfoMessage(room.QuestionsInfo())
		s.reply(msg)
		room.BroadcastAll(msg, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

func (s *session) answerQuestion(payload json.RawMessage) {
	var p domain.AnswerQuestionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.payloadError(err)
		return
	}
	if s.room == "" {
		s.reply(domain.ErrorMessage(domain.ErrNoRoom))
		return
	}

	err := s.registry.WithRoom(s.room, func(room *app.Room) error {
		question, ok := room.Question(p.ID)
		if !ok {
			return domain.InvalidQuestionError(p.ID)
		}
		if err := question.Answer(s.id, p.Answer); err != nil {
			return err
		}
		s.reply(domain.OkMessage())
		room.Broadcast(domain.QuestionsInfoMessage(room.QuestionsInfo()), domain.Teacher, s.id)
		return nil
	})
	if err != nil {
		s.reply(domain.ErrorMessage(err))
	}
}

// leaveRoom runs the disconnect cleanup against the named room: remove the
// connection (stripping a student's answers), then tell everyone the new room
// state and teachers the new answer counts.
func (s *session) leaveRoom(name string) {
	err := s.registry.WithRoom(name, func(room *app.Room) error {
		var removed bool
		switch s.role {
		case domain.Student:
			removed = room.RemoveStudent(s.id)
		case domain.Teacher:
			removed = room.RemoveTeacher(s.id)
		}
		if !removed {
			return domain.ErrInvalidSession
		}
		room.BroadcastAll(domain.RoomInfoMessage(room.Summary()), s.id)
		room.Broadcast(domain.QuestionsInfoMessage(room.QuestionsInfo()), domain.Teacher, s.id)
		return nil
	})
	if err != nil {
		// The room may have been deleted under us; nothing left to clean.
		log.Printf("session %s: leaving room %q: %v", s.id, name, err)
	}
}

// close transitions to Closed: leave the current room (if any) and shut the
// mailbox so later pushes from other sessions become no-ops.
func (s *session) close() {
	if s.room != "" {
		s.leaveRoom(s.room)
		s.room = ""
	}
	s.outbox.Close()
}
