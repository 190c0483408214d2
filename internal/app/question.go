package app

import (
	"github.com/google/uuid"

	"github.com/renato145/interactive-class/internal/domain"
)

// Question is a single quiz item owned by a Room: a title, an ordered option
// list and the recorded per-student choices. All access goes through the
// registry lock, so the struct itself is not synchronized.
type Question struct {
	ID      uuid.UUID
	Title   string
	Options []string

	// answers maps student session id -> chosen option index.
	answers map[uuid.UUID]int
}

// NewQuestion builds a question with a fresh id and no recorded answers.
func NewQuestion(title string, options []string) *Question {
	return &Question{
		ID:      uuid.New(),
		Title:   title,
		Options: append([]string(nil), options...),
		answers: make(map[uuid.UUID]int),
	}
}

// Answer records or overwrites a student's choice. The index must be strictly
// below the option count; re-answering is idempotent and keeps the last call.
func (q *Question) Answer(studentID uuid.UUID, index int) error {
	if index < 0 || index >= len(q.Options) {
		return domain.InvalidAnswerError(index)
	}
	q.answers[studentID] = index
	return nil
}

// Modify replaces the title and/or the option list. Option replacement remaps
// recorded answers by option text: an answer survives only if its old option's
// text still appears in the new list, and it moves to the first index carrying
// that text. Text is the identity that survives reordering; remapping by index
// would scramble answers whenever options are rearranged.
func (q *Question) Modify(title *string, options []string) {
	if title != nil {
		q.Title = *title
	}
	if options == nil {
		return
	}

	remap := make(map[int]int)
	for _, oldIndex := range q.answers {
		if _, done := remap[oldIndex]; done {
			continue
		}
		if oldIndex < 0 || oldIndex >= len(q.Options) {
			continue
		}
		text := q.Options[oldIndex]
		for newIndex, option := range options {
			if option == text {
				remap[oldIndex] = newIndex
				break
			}
		}
	}

	rebuilt := make(map[uuid.UUID]int, len(q.answers))
	for studentID, oldIndex := range q.answers {
		if newIndex, ok := remap[oldIndex]; ok {
			rebuilt[studentID] = newIndex
		}
	}
	q.answers = rebuilt
	q.Options = append([]string(nil), options...)
}

// Summary counts recorded answers per option index.
func (q *Question) Summary() []int {
	counts := make([]int, len(q.Options))
	for _, index := range q.answers {
		if index >= 0 && index < len(counts) {
			counts[index]++
		}
	}
	return counts
}

// Info is the wire view of the question.
func (q *Question) Info() domain.QuestionInfo {
	return domain.QuestionInfo{
		ID:      q.ID,
		Title:   q.Title,
		Options: append([]string(nil), q.Options...),
		Answers: q.Summary(),
	}
}

func (q *Question) removeAnswer(studentID uuid.UUID) {
	delete(q.answers, studentID)
}
