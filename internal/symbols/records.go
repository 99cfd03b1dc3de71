// Package symbols implements the three scoped name->record tables the
// parser maintains while it builds the AST/CFG in one pass (spec.md §3
// "Symbol records", §4.3): functions (flat), variables (scope stack), and
// types (scope stack). Grounded on the teacher's internal/symbols package
// (SymbolTable / NewEnclosedSymbolTable chaining), generalized from funxy's
// single trait-aware table down to the spec's three separate tables with
// explicit push/pop scope discipline.
package symbols

import (
	"github.com/funvibe/ollie-front/internal/cfg"
	"github.com/funvibe/ollie-front/internal/config"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// DeclKind distinguishes a declare-statement binding from a let-statement
// binding (spec.md §3 "declare_or_let").
type DeclKind int

const (
	DeclDeclare DeclKind = iota
	DeclLet
)

// Variable is the variable symbol record from spec.md §3.
type Variable struct {
	Name                string
	Storage             config.StorageClass
	Type                *typesystem.Type
	IsConstant          bool
	IsFunctionParameter bool
	IsStructMember      bool
	Initialized         bool
	DeclKind            DeclKind
	OwningFunction      string // set for parameters
	Line                int
}

// Function is the function symbol record from spec.md §3. Parameters are a
// fixed-capacity list (<= config.MaxFunctionArity).
type Function struct {
	Name       string
	Storage    config.StorageClass
	ReturnType *typesystem.Type
	Parameters []Variable
	Defined    bool
	Line       int

	// EntranceBlock is the function's CFG entry block, filled in by the
	// parser once func's compound-statement body has been parsed.
	EntranceBlock cfg.BlockID
}
