// Package diagnostics implements the error/warning taxonomy of spec.md §7:
// lexical/preprocessor errors, syntax errors, semantic errors, fatal
// internal errors, and warnings, each rendered in the wire format §6
// requires. Grounded on the teacher's internal/diagnostics/diagnostics.go
// (ErrorCode enum + template table + phase-tagged DiagnosticError).
package diagnostics

import (
	"fmt"

	"github.com/funvibe/ollie-front/internal/token"
)

// Phase identifies which pipeline stage raised a diagnostic.
type Phase string

const (
	PhasePreprocessor Phase = "preprocessor"
	PhaseParser       Phase = "parser"
)

// Severity distinguishes errors from warnings/info (spec.md §7 taxonomy
// items 1-5).
type Severity string

const (
	SevError   Severity = "ERROR"
	SevWarning Severity = "WARNING"
	SevInfo    Severity = "INFO"
)

// Code identifies a specific diagnosable condition.
type Code string

const (
	// Preprocessor (lexical) errors
	ErrDuplicateMacro     Code = "L001" // duplicate macro name
	ErrEmptyMacroBody     Code = "L002" // $endmacro with empty body
	ErrNestedMacro        Code = "L003" // nested $macro
	ErrUnterminatedMacro  Code = "L004" // EOF before $endmacro
	ErrFloatingEndmacro   Code = "L005" // $endmacro with no opening $macro
	ErrDuplicateParam     Code = "L006" // duplicate macro parameter name
	ErrMacroGroupMismatch Code = "L007" // mismatched delimiter in parameter list
	ErrUndefinedMacroCall Code = "L008" // call-site parenthesis expected

	// Syntax errors
	ErrUnexpectedToken  Code = "P001"
	ErrMissingTerminator Code = "P002"
	ErrUnmatchedDelim    Code = "P003"
	ErrNonChainableOp    Code = "P004"

	// Semantic errors
	ErrRedefinition      Code = "A001"
	ErrUndefinedIdent    Code = "A002"
	ErrUndefinedType     Code = "A003"
	ErrUndefinedFunction Code = "A004"
	ErrArityMismatch     Code = "A005"
	ErrArityOverCap      Code = "A006"
	ErrNotIntConstant    Code = "A007"
	ErrNonChainableRel   Code = "A008"
	ErrIncompatibleTypes Code = "A009"
	ErrUndeclaredLabel   Code = "A010"

	// Fatal internal errors
	ErrInternal Code = "F001"
)

var templates = map[Code]string{
	ErrDuplicateMacro:     "macro '%s' already defined at line %d",
	ErrEmptyMacroBody:     "macro '%s' has an empty body",
	ErrNestedMacro:        "nested $macro is not permitted",
	ErrUnterminatedMacro:  "unterminated macro definition for '%s'",
	ErrFloatingEndmacro:   "$endmacro without matching $macro",
	ErrDuplicateParam:     "duplicate macro parameter '%s'",
	ErrMacroGroupMismatch: "mismatched delimiter in macro parameter list",
	ErrUndefinedMacroCall: "expected '(' to begin arguments to macro '%s'",

	ErrUnexpectedToken:   "unexpected token: expected %s, got %s",
	ErrMissingTerminator: "expected '%s' to terminate statement, got %s",
	ErrUnmatchedDelim:    "unmatched '%s'",
	ErrNonChainableOp:    "'%s' cannot be chained",

	ErrRedefinition:      "redefinition of '%s' (originally defined at line %d)",
	ErrUndefinedIdent:    "use of undeclared identifier '%s'",
	ErrUndefinedType:     "undefined type '%s'",
	ErrUndefinedFunction: "call to undefined function '%s'",
	ErrArityMismatch:     "function '%s' expects %d argument(s), got %d",
	ErrArityOverCap:      "function '%s' declares %d parameters, exceeding the cap of 6",
	ErrNotIntConstant:    "array bound must be an integer constant",
	ErrNonChainableRel:   "relational operator '%s' is not chainable",
	ErrIncompatibleTypes: "incompatible types: %s",
	ErrUndeclaredLabel:   "jump to undeclared label '%s'",

	ErrInternal: "internal error: %s",
}

// Diagnostic is a single reportable condition.
type Diagnostic struct {
	Code     Code
	Phase    Phase
	Severity Severity
	Line     int
	File     string
	Args     []interface{}
}

func (d *Diagnostic) message() string {
	tmpl, ok := templates[d.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code %s", d.Code)
	}
	return fmt.Sprintf(tmpl, d.Args...)
}

// Error satisfies the error interface and renders the wire format from
// spec.md §6: parser diagnostics as "[LINE n: PARSER ERROR|WARNING|INFO]:
// message", preprocessor diagnostics as "[FILE f] --> [LINE n | OLLIE
// PREPROCESSOR ...]: message".
func (d *Diagnostic) Error() string {
	if d.Phase == PhasePreprocessor {
		return fmt.Sprintf("[FILE %s] --> [LINE %d | OLLIE PREPROCESSOR %s]: %s",
			d.File, d.Line, d.Severity, d.message())
	}
	return fmt.Sprintf("[LINE %d: PARSER %s]: %s", d.Line, d.Severity, d.message())
}

// NewError builds a parser-phase error diagnostic at tok's line.
func NewError(code Code, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhaseParser, Severity: SevError, Line: tok.Line, Args: args}
}

// NewErrorAt builds a parser-phase error diagnostic at an explicit line,
// for the (rare) case where no token is on hand.
func NewErrorAt(code Code, line int, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhaseParser, Severity: SevError, Line: line, Args: args}
}

// NewPreprocessorError builds a preprocessor-phase error diagnostic.
func NewPreprocessorError(code Code, file string, line int, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhasePreprocessor, Severity: SevError, File: file, Line: line, Args: args}
}

// NewWarning builds a parser-phase warning diagnostic.
func NewWarning(code Code, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhaseParser, Severity: SevWarning, Line: tok.Line, Args: args}
}

// Internal builds a fatal-internal diagnostic for an invariant violation
// (spec.md §7 taxonomy item 4); callers that hit one should abort the run.
func Internal(tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Code: ErrInternal, Phase: PhaseParser, Severity: SevError, Line: tok.Line, Args: []interface{}{message}}
}

// Counters tallies diagnostics and run statistics for the driver summary and
// for the testable properties of spec.md §8 (num_errors, num_warnings,
// lines_processed, found_main_function).
type Counters struct {
	NumErrors        int
	NumWarnings      int
	LinesProcessed   int
	FoundMainFunction bool

	Diagnostics []*Diagnostic
}

// Report records a diagnostic and bumps the matching counter.
func (c *Counters) Report(d *Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
	switch d.Severity {
	case SevError:
		c.NumErrors++
	case SevWarning:
		c.NumWarnings++
	}
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Counters) HasErrors() bool {
	return c.NumErrors > 0
}
