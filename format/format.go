package format

import "github.com/dhamidi/pl0/tree"

// Encoder renders a parse tree to some output representation.
type Encoder interface {
	Encode(program *tree.Program) error
}
