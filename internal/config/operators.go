// Package config is the single source of truth for the front end's
// keyword/operator/primitive-type tables, grounded on the teacher's
// config/operators.go and config/constants.go ("SINGLE SOURCE OF TRUTH for
// all operators" / built-in name tables).
package config

import "github.com/funvibe/ollie-front/internal/token"

// PrecLevel names a rung of the expression precedence ladder from spec.md
// §4.5. Higher binds tighter.
type PrecLevel int

const (
	PrecNone PrecLevel = iota
	PrecLogicalOr
	PrecLogicalAnd
	PrecInclusiveOr
	PrecExclusiveOr
	PrecAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
)

// BinaryOp describes one operator usable at a given precedence level.
type BinaryOp struct {
	Type       token.Type
	Level      PrecLevel
	Chainable  bool // false => parser refuses chained use (relational, shift)
}

// LevelOperators is the single source of truth for which tokens belong to
// which precedence level; the parser's per-level grammar functions
// (parseLogicalOr, parseEquality, ...) consult this instead of hard-coding
// token sets, the way the teacher centralizes AllOperators.
var LevelOperators = []BinaryOp{
	{token.OR, PrecLogicalOr, true},
	{token.AND, PrecLogicalAnd, true},
	{token.PIPE, PrecInclusiveOr, true},
	{token.CARET, PrecExclusiveOr, true},
	{token.AMP, PrecAnd, true},
	{token.EQ, PrecEquality, true},
	{token.NEQ, PrecEquality, true},
	{token.LT, PrecRelational, false},
	{token.LTE, PrecRelational, false},
	{token.GT, PrecRelational, false},
	{token.GTE, PrecRelational, false},
	{token.LSHIFT, PrecShift, false},
	{token.RSHIFT, PrecShift, false},
	{token.PLUS, PrecAdditive, true},
	{token.MINUS, PrecAdditive, true},
	{token.STAR, PrecMultiplicative, true},
	{token.SLASH, PrecMultiplicative, true},
	{token.PERCENT, PrecMultiplicative, true},
}

// OpsAtLevel returns the operator set for a precedence level, and whether
// repeated use of an operator at that level is grammatically permitted
// (chainable), matching the non-chainable carve-out for relational/shift in
// spec.md §4.5 and §8.
func OpsAtLevel(level PrecLevel) (set map[token.Type]bool, chainable bool) {
	set = make(map[token.Type]bool)
	chainable = true
	for _, op := range LevelOperators {
		if op.Level == level {
			set[op.Type] = true
			if !op.Chainable {
				chainable = false
			}
		}
	}
	return set, chainable
}

// UnaryOperators is the set of prefix operators at precedence level 12
// (spec.md §4.5): & * + - ~ ! ++ --.
var UnaryOperators = map[token.Type]bool{
	token.AMP:   true,
	token.STAR:  true,
	token.PLUS:  true,
	token.MINUS: true,
	token.TILDE: true,
	token.BANG:  true,
	token.INC:   true,
	token.DEC:   true,
}

// MaxFunctionArity is the hard parameter-count cap from spec.md §9 ("Open
// Questions"): the source oscillates, the rewrite treats 6 as authoritative.
const MaxFunctionArity = 6
