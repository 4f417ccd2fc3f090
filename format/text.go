package format

import (
	"io"

	"github.com/dhamidi/pl0/tree"
)

// TextEncoder writes the indented debugging dump of a tree.
type TextEncoder struct {
	w io.Writer
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(program *tree.Program) error {
	_, err := io.WriteString(e.w, tree.Dump(program))
	return err
}
