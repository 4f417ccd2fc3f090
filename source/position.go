package source

import "fmt"

// Position is a location within a source buffer. Line and Column are
// 1-based; Offset is the byte offset from the start of the buffer.
type Position struct {
	Line   int
	Column int
	Offset int
}

// NoPosition marks diagnostics that do not refer to a source location.
var NoPosition = Position{Offset: -1}

func (p Position) Valid() bool {
	return p.Offset >= 0
}

// Less orders positions by line, then column.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
