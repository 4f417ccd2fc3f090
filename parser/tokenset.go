package parser

import "strings"

// TokenSet is an immutable set of token kinds, used for the start and
// recovery sets of grammar rules. Union never mutates its receiver, so
// the static per-rule sets can be shared and extended per call site.
type TokenSet uint64

func NewTokenSet(kinds ...TokenKind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Union returns the set extended with the given kinds.
func (s TokenSet) Union(kinds ...TokenKind) TokenSet {
	return s | NewTokenSet(kinds...)
}

// UnionSet returns the union of two sets.
func (s TokenSet) UnionSet(other TokenSet) TokenSet {
	return s | other
}

func (s TokenSet) Contains(kind TokenKind) bool {
	return s&(1<<uint(kind)) != 0
}

func (s TokenSet) String() string {
	var names []string
	for k := TokenEOF; k <= TokenWrite; k++ {
		if s.Contains(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}
