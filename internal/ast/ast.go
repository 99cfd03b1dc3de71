// Package ast implements the expression/declaration AST of spec.md §3
// ("AST node") and applies the two explicit redesigns from §9:
//
//   - Raw child/sibling pointers → arena + index. Nodes are allocated from
//     a single Arena and referenced by NodeID rather than by pointer; the
//     spec's first-child/next-sibling n-ary shape is preserved as two index
//     fields populated by Arena.Chain, so a generic tree walker can traverse
//     without per-Kind knowledge.
//   - Tag-dispatched payload unions → sum types. Kind is the discriminant;
//     the payload fields below are grouped by the Kind(s) that use them, and
//     consumers switch on Kind (irprint falls back to printing the Kind name
//     for a Kind it has no case for; nothing panics on an unhandled Kind).
//
// Grounded on the teacher's internal/ast/ast.go node catalogue (identifier,
// binary/unary/cast/postfix expressions, decl/let/if/while/for/switch
// statements, ...), generalized from funxy's ML-flavored expression forms
// down to Ollie's C-like ones.
package ast

import (
	"github.com/funvibe/ollie-front/internal/token"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// NodeID indexes into an Arena. InvalidNode (-1) means "no node" (e.g. an
// omitted for-loop condition, or an else-less if).
type NodeID int

const InvalidNode NodeID = -1

// Kind discriminates the ~35 AST node classes of spec.md §3.
type Kind int

const (
	KindError Kind = iota

	KindIdentifier
	KindConstant
	KindBinaryExpr
	KindUnaryExpr
	KindCastExpr
	KindPostfixExpr
	KindFunctionCall
	KindStructAccessor
	KindArrayAccessor
	KindAssignmentExpr

	KindDeclStmt
	KindLetStmt
	KindLabelStmt
	KindCaseStmt
	KindDefaultStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindJumpStmt
	KindIfStmt
	KindWhileStmt
	KindDoWhileStmt
	KindForStmt
	KindSwitchStmt

	KindTypeSpecifier
	KindTypeName
	KindTypeAddressSpecifier

	KindParameterList
	KindParameterDecl
	KindStructMemberList
	KindStructMember
	KindEnumMemberList
	KindEnumMember
)

func (k Kind) String() string {
	names := [...]string{
		"error", "identifier", "constant", "binary_expr", "unary_expr",
		"cast_expr", "postfix_expr", "function_call", "struct_accessor",
		"array_accessor", "assignment_expr", "decl_stmt", "let_stmt",
		"label_stmt", "case_stmt", "default_stmt", "return_stmt",
		"break_stmt", "continue_stmt", "jump_stmt", "if_stmt", "while_stmt",
		"do_while_stmt", "for_stmt", "switch_stmt", "type_specifier",
		"type_name", "type_address_specifier", "parameter_list",
		"parameter_decl", "struct_member_list", "struct_member",
		"enum_member_list", "enum_member",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "?"
	}
	return names[k]
}

// Node is the arena-owned AST node. Kind selects which payload fields below
// are meaningful; unused fields are left zero/InvalidNode.
type Node struct {
	ID   NodeID
	Kind Kind
	Tok  token.Token

	// InferredType is the type reference an expression node resolves to
	// (spec.md §3 "inferred type reference").
	InferredType *typesystem.Type

	// Generic first-child/next-sibling chain, populated by Arena.Chain for
	// nodes with list-like contents (parameter_list, struct_member_list,
	// enum_member_list); a generic walker can use this without knowing Kind.
	FirstChild  NodeID
	NextSibling NodeID

	// binary_expr, assignment_expr
	Left, Right NodeID
	Operator    token.Type

	// unary_expr, cast_expr, postfix_expr (trailing ++/--)
	Operand NodeID

	// function_call
	Callee NodeID
	Args   []NodeID

	// struct_accessor (:ident), array_accessor ([expr])
	Base            NodeID
	Index           NodeID
	Member          string
	IsPointerAccess bool // true for => (dereference-then-member)

	// identifier, label_stmt, jump_stmt, struct_member, enum_member,
	// type_name, parameter_decl, decl_stmt/let_stmt name
	Name string

	// constant
	ConstKind  token.Type
	IntValue   int64
	FloatValue float64
	StrValue   string

	// decl_stmt / let_stmt / parameter_decl
	DeclType  NodeID // a type_specifier node
	InitValue NodeID // let_stmt's initializer expression

	// if_stmt / while_stmt / do_while_stmt / for_stmt / switch_stmt.
	// Complex statements are opaque control-flow regions (spec.md §4.5):
	// their branches are basic blocks, not expression subtrees, so they are
	// recorded as the cfg package's BlockID underlying string rather than a
	// NodeID (ast intentionally does not import cfg -- cfg already imports
	// ast for TopLevelStmt.Root, and a reverse import would cycle).
	Cond             NodeID
	Init, Step       NodeID // for_stmt header clauses
	Else             NodeID // if_stmt's "else if" chain only; a plain else is ElseBlock
	ThenBlock        string
	ElseBlock        string
	BodyBlockID      string
	HeaderBlockID    string
	Cases            []NodeID // switch_stmt's case/default/statement list

	// case_stmt
	CaseValue NodeID

	// return_stmt / break_stmt / continue_stmt (optional "when" guard)
	Value     NodeID
	WhenGuard NodeID

	// type_specifier / type_name / type_address_specifier
	ResolvedType *typesystem.Type
	PointerDepth int
	ArrayBound   NodeID // constant node, or InvalidNode for a bare pointer

	// parameter_list / struct_member_list / enum_member_list
	Children []NodeID

	// error
	ErrMessage string
}

// Arena owns every node created during a single front-end run; all of it is
// freed together at the end of the run (spec.md §5 "arena-style" allocations).
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty node arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a node of the given kind at the given token, returning its
// id.
func (a *Arena) New(kind Kind, tok token.Token) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, &Node{ID: id, Kind: kind, Tok: tok, Left: InvalidNode, Right: InvalidNode,
		Operand: InvalidNode, Callee: InvalidNode, Base: InvalidNode, Index: InvalidNode,
		DeclType: InvalidNode, InitValue: InvalidNode, Cond: InvalidNode,
		Else: InvalidNode, Init: InvalidNode, Step: InvalidNode,
		CaseValue: InvalidNode, Value: InvalidNode, WhenGuard: InvalidNode, ArrayBound: InvalidNode,
		FirstChild: InvalidNode, NextSibling: InvalidNode})
	return id
}

// NewError allocates the distinguished error node (spec.md §4.5 "Error node
// discipline"): every grammar function returns either a well-formed node or
// this sentinel, and callers that receive it propagate it without further
// diagnostics.
func (a *Arena) NewError(tok token.Token, message string) NodeID {
	id := a.New(KindError, tok)
	a.Get(id).ErrMessage = message
	return id
}

// Get returns a pointer to the node for in-place mutation (payload fields
// are usually filled in after New, once the grammar rule has parsed
// enough to know them).
func (a *Arena) Get(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// IsError reports whether id names the error sentinel (or is invalid).
func (a *Arena) IsError(id NodeID) bool {
	if id == InvalidNode {
		return true
	}
	n := a.Get(id)
	return n == nil || n.Kind == KindError
}

// Chain links a list of children as a first-child/next-sibling run starting
// at parent, implementing the generic n-ary shape spec.md §3 describes for
// list-bearing node classes.
func (a *Arena) Chain(parent NodeID, children []NodeID) {
	p := a.Get(parent)
	if p == nil || len(children) == 0 {
		return
	}
	p.FirstChild = children[0]
	for i := 0; i < len(children)-1; i++ {
		a.Get(children[i]).NextSibling = children[i+1]
	}
}

// Len reports how many nodes have been allocated (diagnostic/testing use).
func (a *Arena) Len() int { return len(a.nodes) }
