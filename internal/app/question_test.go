package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/renato145/interactive-class/internal/domain"
)

func TestAnswerRecordsLastChoice(t *testing.T) {
	question := NewQuestion("q", []string{"a", "b", "c"})
	student := uuid.New()

	if err := question.Answer(student, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := question.Answer(student, 2); err != nil {
		t.Fatalf("re-answer: %v", err)
	}

	if got, want := question.Summary(), []int{0, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected one answer on last choice, got %v", got)
	}
}

func TestAnswerRejectsOutOfBounds(t *testing.T) {
	question := NewQuestion("q", []string{"a", "b", "c"})
	student := uuid.New()

	// The upper bound is strict: an index equal to the option count is invalid.
	for _, index := range []int{-1, 3, 10} {
		if err := question.Answer(student, index); !errors.Is(err, domain.ErrInvalidAnswer) {
			t.Fatalf("index %d: expected invalid answer, got %v", index, err)
		}
	}
	if got, want := question.Summary(), []int{0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected no recorded answers, got %v", got)
	}
}

func TestModifyRemapsAnswersByText(t *testing.T) {
	tests := []struct {
		name       string
		answer     int
		newOptions []string
		want       []int
	}{
		{"text kept at same index", 1, []string{"x", "b", "y"}, []int{0, 1, 0}},
		{"text moved to new index", 0, []string{"b", "a"}, []int{0, 1}},
		{"text removed drops answer", 1, []string{"a", "c"}, []int{0, 0}},
		{"duplicate text uses first match", 1, []string{"b", "b"}, []int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := NewQuestion("q", []string{"a", "b", "c"})
			if err := question.Answer(uuid.New(), tt.answer); err != nil {
				t.Fatalf("answer: %v", err)
			}

			question.Modify(nil, tt.newOptions)

			if got := question.Summary(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected summary %v, got %v", tt.want, got)
			}
		})
	}
}

func TestModifyTitleOnlyKeepsAnswers(t *testing.T) {
	question := NewQuestion("q", []string{"a", "b"})
	if err := question.Answer(uuid.New(), 1); err != nil {
		t.Fatalf("answer: %v", err)
	}

	title := "renamed"
	question.Modify(&title, nil)

	if question.Title != "renamed" {
		t.Fatalf("expected new title, got %q", question.Title)
	}
	if got, want := question.Summary(), []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected answers untouched, got %v", got)
	}
}

func TestModifyRemapsEveryStudent(t *testing.T) {
	question := NewQuestion("q", []string{"a", "b", "c"})
	for i := 0; i < 3; i++ {
		if err := question.Answer(uuid.New(), i); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	// "b" vanishes, "a" and "c" swap places.
	question.Modify(nil, []string{"c", "a"})

	if got, want := question.Summary(), []int{1, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected swapped counts, got %v", got)
	}
}
