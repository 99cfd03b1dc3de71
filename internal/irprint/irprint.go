// Package irprint renders the parser's two intermediate representations --
// the expression/declaration AST and the CFG -- as indented text, for the
// compiler driver's print_irs/enable_debug_printing options (spec.md §6).
// Grounded on the teacher's internal/prettyprinter.TreePrinter (a
// bytes.Buffer plus an indent counter, one write-method per node kind);
// Ollie's AST is a Kind-tagged arena rather than a typed node hierarchy, so
// the per-Kind dispatch here is a switch over ast.Kind instead of a visitor
// interface.
package irprint

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/cfg"
)

// TreePrinter renders an AST subtree as an indented listing.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
	arena  *ast.Arena
}

// NewTreePrinter returns a printer bound to arena, the node store the ids
// passed to Print will be resolved against.
func NewTreePrinter(arena *ast.Arena) *TreePrinter {
	return &TreePrinter{arena: arena}
}

func (p *TreePrinter) String() string { return p.buf.String() }

func (p *TreePrinter) write(s string) { p.buf.WriteString(s) }

func (p *TreePrinter) writeIndent() { p.write(strings.Repeat("  ", p.indent)) }

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.writeIndent()
	p.write(fmt.Sprintf(format, args...))
	p.write("\n")
}

// Print renders id and, for the node classes that carry them, its children.
func (p *TreePrinter) Print(id ast.NodeID) {
	if id == ast.InvalidNode {
		p.line("<none>")
		return
	}
	n := p.arena.Get(id)
	if n == nil {
		p.line("<dangling %d>", id)
		return
	}

	switch n.Kind {
	case ast.KindError:
		p.line("Error(%s) @%d", n.ErrMessage, n.Tok.Line)

	case ast.KindIdentifier:
		p.line("Identifier(%s)", n.Name)

	case ast.KindConstant:
		p.line("Constant(%s %q)", n.ConstKind, n.Tok.Lexeme)

	case ast.KindBinaryExpr:
		p.line("Binary(%s)", n.Operator)
		p.indent++
		p.line("Left:")
		p.indent++
		p.Print(n.Left)
		p.indent--
		p.line("Right:")
		p.indent++
		p.Print(n.Right)
		p.indent--
		p.indent--

	case ast.KindUnaryExpr:
		p.line("Unary(%s)", n.Operator)
		p.indent++
		p.Print(n.Operand)
		p.indent--

	case ast.KindCastExpr:
		p.line("Cast")
		p.indent++
		p.line("To:")
		p.indent++
		p.Print(n.DeclType)
		p.indent--
		p.line("Operand:")
		p.indent++
		p.Print(n.Operand)
		p.indent--
		p.indent--

	case ast.KindPostfixExpr:
		p.line("Postfix(%s)", n.Operator)
		p.indent++
		p.Print(n.Operand)
		p.indent--

	case ast.KindFunctionCall:
		p.line("Call(@%s)", n.Name)
		p.indent++
		for i, arg := range n.Args {
			p.line("arg[%d]:", i)
			p.indent++
			p.Print(arg)
			p.indent--
		}
		p.indent--

	case ast.KindStructAccessor:
		op := ":"
		if n.IsPointerAccess {
			op = "=>"
		}
		p.line("Member(%s%s)", op, n.Member)
		p.indent++
		p.Print(n.Base)
		p.indent--

	case ast.KindArrayAccessor:
		p.line("Index")
		p.indent++
		p.line("Base:")
		p.indent++
		p.Print(n.Base)
		p.indent--
		p.line("Index:")
		p.indent++
		p.Print(n.Index)
		p.indent--
		p.indent--

	case ast.KindAssignmentExpr:
		p.line("Assign")
		p.indent++
		p.line("Left:")
		p.indent++
		p.Print(n.Left)
		p.indent--
		p.line("Right:")
		p.indent++
		p.Print(n.Right)
		p.indent--
		p.indent--

	case ast.KindDeclStmt:
		p.line("Declare(%s)", n.Name)
		p.indent++
		p.Print(n.DeclType)
		p.indent--

	case ast.KindLetStmt:
		p.line("Let(%s)", n.Name)
		p.indent++
		p.line("Type:")
		p.indent++
		p.Print(n.DeclType)
		p.indent--
		p.line("Init:")
		p.indent++
		p.Print(n.InitValue)
		p.indent--
		p.indent--

	case ast.KindLabelStmt:
		p.line("Label(%s)", n.Name)

	case ast.KindCaseStmt:
		p.line("Case")
		p.indent++
		p.Print(n.CaseValue)
		p.indent--

	case ast.KindDefaultStmt:
		p.line("Default")

	case ast.KindReturnStmt:
		p.line("Return")
		if n.Value != ast.InvalidNode {
			p.indent++
			p.Print(n.Value)
			p.indent--
		}

	case ast.KindBreakStmt, ast.KindContinueStmt:
		kw := "Break"
		if n.Kind == ast.KindContinueStmt {
			kw = "Continue"
		}
		p.line("%s", kw)
		if n.WhenGuard != ast.InvalidNode {
			p.indent++
			p.line("When:")
			p.indent++
			p.Print(n.WhenGuard)
			p.indent--
			p.indent--
		}

	case ast.KindJumpStmt:
		p.line("Jump($%s)", n.Name)

	case ast.KindIfStmt:
		p.line("If")
		p.indent++
		p.line("Cond:")
		p.indent++
		p.Print(n.Cond)
		p.indent--
		p.line("ThenBlock: %s", n.ThenBlock)
		if n.ElseBlock != "" {
			p.line("ElseBlock: %s", n.ElseBlock)
		}
		if n.Else != ast.InvalidNode {
			p.line("ElseIf:")
			p.indent++
			p.Print(n.Else)
			p.indent--
		}
		p.indent--

	case ast.KindWhileStmt, ast.KindDoWhileStmt:
		p.line("%s", n.Kind)
		p.indent++
		p.line("Cond:")
		p.indent++
		p.Print(n.Cond)
		p.indent--
		p.line("BodyBlock: %s", n.BodyBlockID)
		p.indent--

	case ast.KindForStmt:
		p.line("For")
		p.indent++
		p.line("Init:")
		p.indent++
		p.Print(n.Init)
		p.indent--
		p.line("Cond:")
		p.indent++
		p.Print(n.Cond)
		p.indent--
		p.line("Step:")
		p.indent++
		p.Print(n.Step)
		p.indent--
		p.line("HeaderBlock: %s", n.HeaderBlockID)
		p.line("BodyBlock: %s", n.BodyBlockID)
		p.indent--

	case ast.KindSwitchStmt:
		p.line("Switch")
		p.indent++
		p.line("Cond:")
		p.indent++
		p.Print(n.Cond)
		p.indent--
		for i, c := range n.Cases {
			p.line("case[%d]:", i)
			p.indent++
			p.Print(c)
			p.indent--
		}
		p.indent--

	case ast.KindTypeSpecifier, ast.KindTypeName, ast.KindTypeAddressSpecifier:
		if n.ResolvedType != nil {
			p.line("Type(%s)", n.ResolvedType.TypeName)
		} else {
			p.line("Type(?)")
		}

	case ast.KindParameterDecl:
		p.line("Param(%s)", n.Name)

	case ast.KindStructMember, ast.KindEnumMember:
		p.line("Member(%s)", n.Name)

	default:
		p.line("%s", n.Kind)
	}
}

// PrintCFG renders every block in g in allocation order, with its
// statement roots and successor/predecessor ids (the driver's print_irs
// dump).
func PrintCFG(arena *ast.Arena, g *cfg.Graph) string {
	var buf bytes.Buffer
	for _, b := range g.Blocks() {
		fmt.Fprintf(&buf, "block %s", shortID(b.ID))
		if b.ID == g.Root {
			buf.WriteString(" (root)")
		}
		if b.IsLeader {
			buf.WriteString(" [leader]")
		}
		if b.IsMerged {
			buf.WriteString(" [merged]")
		}
		buf.WriteString("\n")

		for _, stmt := range b.Statements {
			tp := NewTreePrinter(arena)
			tp.indent = 1
			tp.Print(stmt.Root)
			buf.WriteString(tp.String())
		}

		succs := blockIDsToStrings(b.Successors)
		preds := blockIDsToStrings(b.Predecessors)
		fmt.Fprintf(&buf, "  successors: %s\n", strings.Join(succs, ", "))
		fmt.Fprintf(&buf, "  predecessors: %s\n", strings.Join(preds, ", "))
	}
	return buf.String()
}

func blockIDsToStrings(ids []cfg.BlockID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, shortID(id))
	}
	sort.Strings(out)
	return out
}

// shortID truncates a uuid-based BlockID to a readable prefix; full
// uniqueness is preserved in the underlying graph, this is display-only.
func shortID(id cfg.BlockID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
