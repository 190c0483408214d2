package app

import (
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/renato145/interactive-class/internal/domain"
)

// Sink is the outbound mailbox handle of one connection. Push is fire and
// forget: it reports false when the message was dropped (mailbox closed or
// full) and must never block.
type Sink interface {
	Push(msg domain.ServerMessage) bool
}

type studentConn struct {
	sink Sink
	cup  domain.CupColor // empty until the student picks one
}

// Room groups the student and teacher connections of one named class plus its
// questions. Rooms are owned by the Registry and only touched under its lock.
type Room struct {
	name      string
	students  map[uuid.UUID]*studentConn
	teachers  map[uuid.UUID]Sink
	questions map[uuid.UUID]*Question
}

func newRoom(name string) *Room {
	return &Room{
		name:      name,
		students:  make(map[uuid.UUID]*studentConn),
		teachers:  make(map[uuid.UUID]Sink),
		questions: make(map[uuid.UUID]*Question),
	}
}

// Name returns the room's registry key.
func (r *Room) Name() string {
	return r.name
}

func (r *Room) connected(id uuid.UUID) bool {
	if _, ok := r.students[id]; ok {
		return true
	}
	_, ok := r.teachers[id]
	return ok
}

// AddStudent registers a student connection. An id already present in either
// role map is rejected, so a session holds at most one slot per room.
func (r *Room) AddStudent(id uuid.UUID, sink Sink) error {
	if r.connected(id) {
		return domain.ErrAlreadyConnected
	}
	r.students[id] = &studentConn{sink: sink}
	return nil
}

// AddTeacher registers a teacher connection.
func (r *Room) AddTeacher(id uuid.UUID, sink Sink) error {
	if r.connected(id) {
		return domain.ErrAlreadyConnected
	}
	r.teachers[id] = sink
	return nil
}

// RemoveStudent drops a student connection and strips their answers from
// every question in the room. It reports whether the connection existed.
func (r *Room) RemoveStudent(id uuid.UUID) bool {
	if _, ok := r.students[id]; !ok {
		return false
	}
	delete(r.students, id)
	for _, question := range r.questions {
		question.removeAnswer(id)
	}
	return true
}

// RemoveTeacher drops a teacher connection, reporting whether it existed.
func (r *Room) RemoveTeacher(id uuid.UUID) bool {
	if _, ok := r.teachers[id]; !ok {
		return false
	}
	delete(r.teachers, id)
	return true
}

// SelectCup sets a student's cup color.
func (r *Room) SelectCup(id uuid.UUID, color domain.CupColor) error {
	student, ok := r.students[id]
	if !ok {
		return domain.ErrInvalidSession
	}
	student.cup = color
	return nil
}

// Summary folds over the student connections to produce the RoomInfo
// snapshot. Counts are recomputed from scratch each call so they can't drift.
func (r *Room) Summary() domain.RoomSummary {
	summary := domain.RoomSummary{Name: r.name, Connections: len(r.students)}
	for _, student := range r.students {
		switch student.cup {
		case domain.CupGreen:
			summary.Green++
		case domain.CupYellow:
			summary.Yellow++
		case domain.CupRed:
			summary.Red++
		}
	}
	return summary
}

// AddQuestion inserts a new question and returns its server-assigned id.
func (r *Room) AddQuestion(title string, options []string) uuid.UUID {
	question := NewQuestion(title, options)
	r.questions[question.ID] = question
	return question.ID
}

// Question looks up a question by id.
func (r *Room) Question(id uuid.UUID) (*Question, bool) {
	question, ok := r.questions[id]
	return question, ok
}

// DeleteQuestion removes a question, reporting whether it existed.
func (r *Room) DeleteQuestion(id uuid.UUID) bool {
	if _, ok := r.questions[id]; !ok {
		return false
	}
	delete(r.questions, id)
	return true
}

// QuestionsInfo serializes every question in the room, ordered by id so the
// payload is stable across calls.
func (r *Room) QuestionsInfo() []domain.QuestionInfo {
	infos := make([]domain.QuestionInfo, 0, len(r.questions))
	for _, question := range r.questions {
		infos = append(infos, question.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID.String() < infos[j].ID.String()
	})
	return infos
}

// Broadcast queues msg on every connection of the target role, skipping the
// excluded sender id. Delivery is best effort: a closed or full mailbox is
// logged and dropped, never surfaced to the caller.
func (r *Room) Broadcast(msg domain.ServerMessage, target domain.ConnectionType, exclude uuid.UUID) {
	switch target {
	case domain.Student:
		for id, student := range r.students {
			if id == exclude {
				continue
			}
			if !student.sink.Push(msg) {
				log.Printf("room %q: dropped %s broadcast to student %s", r.name, msg.Kind, id)
			}
		}
	case domain.Teacher:
		for id, sink := range r.teachers {
			if id == exclude {
				continue
			}
			if !sink.Push(msg) {
				log.Printf("room %q: dropped %s broadcast to teacher %s", r.name, msg.Kind, id)
			}
		}
	}
}

// BroadcastAll fans out to teachers and students alike.
func (r *Room) BroadcastAll(msg domain.ServerMessage, exclude uuid.UUID) {
	r.Broadcast(msg, domain.Teacher, exclude)
	r.Broadcast(msg, domain.Student, exclude)
}
