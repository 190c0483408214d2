package domain

import "github.com/google/uuid"

// CupColor is the three-valued status signal a student shows to teachers.
type CupColor string

const (
	CupGreen  CupColor = "Green"
	CupYellow CupColor = "Yellow"
	CupRed    CupColor = "Red"
)

// Valid reports whether the color is one of the three known values.
func (c CupColor) Valid() bool {
	switch c {
	case CupGreen, CupYellow, CupRed:
		return true
	}
	return false
}

// ConnectionType is the self-declared role of a connection.
type ConnectionType string

const (
	Student ConnectionType = "Student"
	Teacher ConnectionType = "Teacher"
)

// Valid reports whether the connection type is a known role.
func (t ConnectionType) Valid() bool {
	return t == Student || t == Teacher
}

// RoomSummary is the snapshot sent out as RoomInfo: the student count plus
// cup color tallies, recomputed from the connections on every call.
type RoomSummary struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
	Green       int    `json:"green"`
	Yellow      int    `json:"yellow"`
	Red         int    `json:"red"`
}

// QuestionInfo is the wire view of one question: per-option answer counts,
// never the identity of who answered.
type QuestionInfo struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Options []string  `json:"options"`
	Answers []int     `json:"answers"`
}

// QuestionPublication is pushed to a room when a teacher publishes a question
// for secs seconds.
type QuestionPublication struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Options []string  `json:"options"`
	Secs    int       `json:"secs"`
}
