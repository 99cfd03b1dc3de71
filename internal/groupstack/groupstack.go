// Package groupstack implements the LIFO of open delimiters used to check
// balance across the preprocessor and the parser (spec.md §4.1).
package groupstack

import "github.com/funvibe/ollie-front/internal/token"

// Stack tracks open (, [, { delimiters.
type Stack struct {
	items []token.Token
}

// New returns an empty grouping stack.
func New() *Stack {
	return &Stack{}
}

// Push records an opening delimiter.
func (s *Stack) Push(t token.Token) {
	s.items = append(s.items, t)
}

// Pop removes and returns the most recently pushed delimiter. ok is false if
// the stack was already empty.
func (s *Stack) Pop() (token.Token, bool) {
	if len(s.items) == 0 {
		return token.Token{}, false
	}
	n := len(s.items) - 1
	t := s.items[n]
	s.items = s.items[:n]
	return t, true
}

// Empty reports whether every pushed delimiter has been popped -- the
// grouping-balance testable property from spec.md §8.
func (s *Stack) Empty() bool {
	return len(s.items) == 0
}

// Len reports how many delimiters are currently open.
func (s *Stack) Len() int {
	return len(s.items)
}

// Matches reports whether close is the closing delimiter kind for the
// opening delimiter kind open. It does not consult any Stack.
func Matches(open, close token.Type) bool {
	switch open {
	case token.LPAREN:
		return close == token.RPAREN
	case token.LBRACKET:
		return close == token.RBRACKET
	case token.LBRACE:
		return close == token.RBRACE
	default:
		return false
	}
}
