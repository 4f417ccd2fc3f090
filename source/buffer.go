package source

import "os"

// Buffer holds the text of one source file together with an index of
// line start offsets, so that error reporting can fetch individual
// lines by number.
type Buffer struct {
	name  string
	data  []byte
	lines []int // byte offset of the first character of each line
}

func NewBuffer(name string, data []byte) *Buffer {
	b := &Buffer{name: name, data: data}
	b.lines = append(b.lines, 0)
	for i, ch := range data {
		if ch == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
	return b
}

// ReadBuffer loads a source file from disk.
func ReadBuffer(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuffer(path, data), nil
}

func (b *Buffer) Name() string {
	return b.name
}

func (b *Buffer) Data() []byte {
	return b.data
}

// Line returns the text of the given 1-based line, without the
// trailing newline. Out-of-range line numbers yield "".
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	start := b.lines[n-1]
	end := len(b.data)
	if n < len(b.lines) {
		end = b.lines[n] - 1
	}
	for end > start && b.data[end-1] == '\r' {
		end--
	}
	return string(b.data[start:end])
}
