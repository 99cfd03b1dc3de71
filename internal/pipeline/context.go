// Package pipeline bundles the ambient state every grammar function in the
// parser needs (spec.md §5 "no hidden globals, a single threaded context
// object carries everything"). Grounded on the teacher's
// internal/pipeline/context.go PipelineContext, generalized from a
// one-shot AST+trait-table bundle to the macro table, three symbol tables,
// grouping stack, diagnostic counters, and CFG-under-construction that
// Ollie's single-pass front end threads through every call.
package pipeline

import (
	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/cfg"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/groupstack"
	"github.com/funvibe/ollie-front/internal/macro"
	"github.com/funvibe/ollie-front/internal/symbols"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// Context is the single object threaded through every grammar function
// (spec.md §5). It owns no goroutines and is not safe for concurrent use;
// a compilation unit gets exactly one Context (spec.md §5 "single-threaded
// per unit").
type Context struct {
	File string

	Types  *typesystem.Table
	Tables *symbols.Tables
	Macros *macro.Table
	Groups *groupstack.Stack

	Arena *ast.Arena
	CFG   *cfg.Graph

	Diagnostics *diagnostics.Counters

	// CurrentFunction names the function whose body is being parsed, empty
	// at top level. Used to tag Variable.OwningFunction and to find the
	// enclosing function's return type when checking a `ret` value.
	CurrentFunction string

	// CurrentBlock is the basic block new top-level statements are
	// appended to (spec.md §4.6).
	CurrentBlock cfg.BlockID

	// Line is the most recently consumed token's line, updated by the
	// parser on every token it consumes.
	Line int
}

// New assembles a fresh Context for a single compilation unit.
func New(file string) *Context {
	types := typesystem.NewTable()
	g := cfg.New()
	ctx := &Context{
		File:        file,
		Types:       types,
		Tables:      symbols.NewTables(types),
		Macros:      macro.NewTable(),
		Groups:      groupstack.New(),
		Arena:       ast.NewArena(),
		CFG:         g,
		Diagnostics: &diagnostics.Counters{},
	}
	entry := g.AllocateBlock()
	entry.IsLeader = true
	ctx.CurrentBlock = entry.ID
	return ctx
}

// Report records a diagnostic against the shared counters.
func (c *Context) Report(d *diagnostics.Diagnostic) {
	c.Diagnostics.Report(d)
}

// EnterFunction opens a variable scope and records the enclosing function
// name, returning a closure that restores the previous state (spec.md
// §4.3 scope discipline paired with §4.6 "one entrance block per
// function").
func (c *Context) EnterFunction(name string) func() {
	prevFn := c.CurrentFunction
	c.CurrentFunction = name
	c.Tables.Variables.InitializeScope()
	return func() {
		c.Tables.Variables.FinalizeScope()
		c.CurrentFunction = prevFn
	}
}

// EnterBlockScope opens a lexical block (compound statement) and returns a
// closer pairing InitializeScope with FinalizeScope (spec.md §8 "scope
// conservation").
func (c *Context) EnterBlockScope() func() {
	c.Tables.Variables.InitializeScope()
	c.Tables.Types.InitializeScope()
	return func() {
		c.Tables.Variables.FinalizeScope()
		c.Tables.Types.FinalizeScope()
	}
}
