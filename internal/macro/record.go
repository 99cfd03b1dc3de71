// Package macro implements the two-pass token-stream macro preprocessor of
// spec.md §4.2: pass 1 (Consume) extracts macro definitions and marks their
// defining tokens ignored; pass 2 (Expand) produces a fresh token stream
// with call sites replaced by parameter-substituted macro bodies. Grounded
// on the teacher's two-stage lexer.Processor -> parser.Processor pipeline
// shape (internal/pipeline/pipeline.go), generalized from "tokenize then
// parse" to "consume macro definitions then expand macro calls".
package macro

import "github.com/funvibe/ollie-front/internal/token"

// Record is a registered macro definition (spec.md §3 "Macro record").
type Record struct {
	Name             string
	Line             int
	Parameters       []token.Token // identifier tokens, remembered only for name comparison
	BodyTokens       []token.Token // copies between $macro and $endmacro
	TotalTokenCount  int
}

// ParamIndex returns the ordinal of a parameter name, or -1 if it is not
// one of this macro's parameters.
func (r *Record) ParamIndex(name string) int {
	for i, p := range r.Parameters {
		if p.Lexeme == name {
			return i
		}
	}
	return -1
}
