// Package typesystem implements the type descriptor catalogue of spec.md
// §3 ("Type descriptor (tagged)") and §4.4 ("Type system"): primitive,
// pointer, array, struct/union, enum, alias, and function-signature types
// with size/alignment and canonical-name equivalence. Grounded on the
// teacher's internal/typesystem/types.go (TCon/TApp/TFunc tagged union),
// generalized from an ML-style polymorphic system down to Ollie's flat
// nominal one.
package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/ollie-front/internal/config"
)

// Kind discriminates the variant a Type descriptor holds.
type Kind int

const (
	KindBasic Kind = iota
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindEnum
	KindAlias
	KindFunctionSignature
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindAlias:
		return "alias"
	case KindFunctionSignature:
		return "function_signature"
	default:
		return "?"
	}
}

// Member is an ordered struct/union/enum field. Ordinal is fixed at
// definition time (spec.md §3 invariant 5): later passes rely on it.
type Member struct {
	Name    string
	Type    *Type
	Ordinal int
}

// Param is one parameter slot of a function-signature type.
type Param struct {
	Type      *Type
	IsMutable bool
}

// Type is the tagged type descriptor. Every descriptor carries a canonical
// TypeName used as the symbol-table key (spec.md §3 invariant 1).
type Type struct {
	Kind     Kind
	TypeName string

	// KindBasic
	BasicSize config.SizeClass
	IsFloat   bool

	// KindPointer
	PointsTo    *Type
	IsVoidPtr   bool

	// KindArray
	ElementType *Type
	Count       int

	// KindStruct / KindUnion
	Members []Member

	// KindEnum
	EnumMembers  []Member
	IntegerType  *Type

	// KindAlias
	Aliased *Type

	// KindFunctionSignature
	Params     []Param
	ReturnType *Type
	IsPublic   bool

	// registered is true once a struct/union/enum has had every member
	// collected and the type has been added to the table (invariant 4:
	// partial registration is forbidden).
	registered bool
}

// PointerName deterministically names a pointer-to-T type so repeated
// construction hits the same table entry (spec.md §3 invariant 1, §8
// "Type-name canonicality").
func PointerName(to string) string { return to + "*" }

// ArrayName deterministically names an array-of-N-of-T type.
func ArrayName(of string, count int) string { return fmt.Sprintf("%s[%d]", of, count) }

// FunctionSignatureName deterministically names a function-signature type
// from its parameter types and return type, so two syntactically identical
// signatures intern to the same descriptor.
func FunctionSignatureName(params []Param, ret string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.TypeName
	}
	return "func(" + strings.Join(parts, ",") + ")->" + ret
}

// IsScalar reports whether the type is a basic numeric/char/bool type
// suitable for use as an array bound or loop counter.
func (t *Type) IsScalar() bool {
	return t != nil && t.Kind == KindBasic
}

// IsInteger reports whether t is a non-floating basic type. t is not
// dealiased first, so an alias of an integer type reports false.
func (t *Type) IsInteger() bool {
	return t != nil && t.Kind == KindBasic && !t.IsFloat
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	return t.TypeName
}
