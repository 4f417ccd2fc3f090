package parser

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/pl0/source"
)

var log = commonlog.GetLogger("pl0.parser")

// TokenStream wraps the lexer with one token of lookahead and the
// synchronized error-recovery protocol every grammar rule follows:
// BeginRule checks the head token against the rule's start set and
// skips to a resynchronization point on mismatch, EndRule checks the
// head against the rule's recovery set, and Expect recovers from a
// single missing token.
//
// Fatal conditions (rule frame mismatches, payload misuse) mark the
// stream broken: the head becomes end-of-file, further protocol calls
// are no-ops and Err reports source.ErrFatal. User syntax errors never
// break the stream.
type TokenStream struct {
	lexer  *Lexer
	errors *source.Diagnostics
	head   Token
	frames []string
	trace  bool
	err    error
}

func NewTokenStream(lexer *Lexer, errors *source.Diagnostics) *TokenStream {
	s := &TokenStream{lexer: lexer, errors: errors}
	s.head = lexer.NextToken()
	return s
}

// SetTrace turns on debug narration of every begin/end/match/skip
// action, indented by rule nesting depth. Turning it on raises the
// logger's level so the narration actually reaches the backend, which
// otherwise discards debug messages. Tracing never affects recovery
// decisions.
func (s *TokenStream) SetTrace(on bool) {
	s.trace = on
	if on {
		commonlog.SetMaxLevel(commonlog.Debug, "pl0", "parser")
	}
}

// Err reports whether a fatal internal error has broken the stream.
func (s *TokenStream) Err() error {
	return s.err
}

func (s *TokenStream) Kind() TokenKind {
	return s.head.Kind
}

func (s *TokenStream) Pos() source.Position {
	return s.head.Pos
}

// Name returns the identifier text of the head token. Calling it when
// the head is not an identifier is a bug in the parser and breaks the
// stream.
func (s *TokenStream) Name() string {
	if s.head.Kind != TokenIdent {
		s.fatal(fmt.Sprintf("Name called on %s token", s.head.Kind))
		return ""
	}
	return s.head.Literal
}

// IntValue returns the numeric value of the head token. Calling it when
// the head is not a number is a bug in the parser and breaks the
// stream.
func (s *TokenStream) IntValue() int {
	if s.head.Kind != TokenNumber {
		s.fatal(fmt.Sprintf("IntValue called on %s token", s.head.Kind))
		return 0
	}
	return s.head.Value
}

func (s *TokenStream) IsMatch(kind TokenKind) bool {
	return s.head.Kind == kind
}

func (s *TokenStream) IsIn(set TokenSet) bool {
	return set.Contains(s.head.Kind)
}

func (s *TokenStream) next() {
	s.head = s.lexer.NextToken()
}

// Match consumes the head token, whose kind the caller must already
// have verified. A mismatch is a bug in the parser and breaks the
// stream; it is never reported as a user syntax error.
func (s *TokenStream) Match(kind TokenKind) {
	if s.err != nil {
		return
	}
	if s.head.Kind != kind {
		s.fatal(fmt.Sprintf("Match(%s) with %s at head", kind, s.head.Kind))
		return
	}
	s.narrate("match %s", kind)
	s.next()
}

// Expect consumes the head token if it has the expected kind.
// Otherwise it reports one error, skips to the union of the follow set
// and the expected kind, and consumes the expected token if the skip
// landed exactly on it. This is the single recovery point for a missing
// expected token.
func (s *TokenStream) Expect(kind TokenKind, follow TokenSet) {
	if s.err != nil {
		return
	}
	if s.head.Kind == kind {
		s.narrate("match %s", kind)
		s.next()
		return
	}
	s.errors.Error("expecting "+kind.String(), s.head.Pos)
	s.SkipTo(follow.Union(kind))
	if s.head.Kind == kind {
		s.narrate("match %s after skip", kind)
		s.next()
	}
}

// SkipTo discards tokens until the head is in the given set. End of
// input is a member of every recovery set reachable from the top rule,
// which bounds the skip; the explicit end-of-file check below only
// guards against a malformed set.
func (s *TokenStream) SkipTo(set TokenSet) {
	if s.err != nil {
		return
	}
	for !set.Contains(s.head.Kind) && s.head.Kind != TokenEOF {
		s.narrate("skip %s", s.head.Kind)
		s.next()
	}
}

// BeginRule is the entry guard of a grammar rule. When the head token
// cannot start the rule, one error is reported and tokens are skipped
// to the union of the start and recovery sets: landing in the start set
// means the rule can retry (true), landing only in the recovery set
// means the caller must substitute a placeholder result (false).
func (s *TokenStream) BeginRule(name string, start, recoverSet TokenSet) bool {
	if s.err != nil {
		return false
	}
	if start.Contains(s.head.Kind) {
		s.push(name)
		return true
	}
	s.errors.Error(fmt.Sprintf("rule %s cannot start with %s", name, s.head.Kind), s.head.Pos)
	s.SkipTo(start.UnionSet(recoverSet))
	if start.Contains(s.head.Kind) {
		s.push(name)
		return true
	}
	s.narrate("abandon %s", name)
	return false
}

// BeginRuleNoRecover enters a rule that cannot fail because its caller
// has already verified the head token against the rule's start set.
func (s *TokenStream) BeginRuleNoRecover(name string, start TokenSet) {
	if s.err != nil {
		return
	}
	s.push(name)
}

// EndRule is the exit guard of a grammar rule. The frame pushed by the
// matching BeginRule is popped and verified; a mismatch indicates a
// begin/end pairing bug and breaks the stream. If the head token is not
// in the caller's recovery set, one error is reported and tokens are
// skipped, so every rule leaves the stream at a token its caller
// expects.
func (s *TokenStream) EndRule(name string, recoverSet TokenSet) {
	if s.err != nil {
		return
	}
	if len(s.frames) == 0 {
		s.fatal(fmt.Sprintf("EndRule(%s) with no active rule", name))
		return
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.narrate("end %s", name)
	if top != name {
		s.fatal(fmt.Sprintf("EndRule(%s) does not match active rule %s", name, top))
		return
	}
	if !recoverSet.Contains(s.head.Kind) {
		s.errors.Error(fmt.Sprintf("%s cannot follow rule %s", s.head.Kind, name), s.head.Pos)
		s.SkipTo(recoverSet)
	}
}

func (s *TokenStream) push(name string) {
	s.narrate("begin %s", name)
	s.frames = append(s.frames, name)
}

// Depth reports the number of active rule frames.
func (s *TokenStream) Depth() int {
	return len(s.frames)
}

func (s *TokenStream) fatal(message string) {
	if s.err != nil {
		return
	}
	s.err = s.errors.Fatal(message, s.head.Pos)
	s.head = Token{Kind: TokenEOF, Pos: s.head.Pos}
}

func (s *TokenStream) narrate(format string, args ...any) {
	if !s.trace {
		return
	}
	log.Debugf(strings.Repeat(" ", len(s.frames))+format, args...)
}
