package typesystem

import "github.com/funvibe/ollie-front/internal/config"

// Dealias strips Alias wrappers recursively (spec.md §4.4 "dealias").
func Dealias(t *Type) *Type {
	for t != nil && t.Kind == KindAlias {
		t = t.Aliased
	}
	return t
}

// integerRank orders integer types for promotion purposes; wider types
// have a higher rank. Floats are ranked above every integer.
func integerRank(t *Type) int {
	t = Dealias(t)
	if t == nil || t.Kind != KindBasic {
		return -1
	}
	if t.IsFloat {
		return 100 + int(t.BasicSize)
	}
	return int(t.BasicSize)
}

// TypesAssignable returns the coerced destination type if src can be
// assigned to a location of type dest, or nil if not (spec.md §4.4
// "types_assignable"). Identity and pointer/array name-equivalence are
// exact; basic types of the same numeric family (integer or float) are
// assignable to each other whatever their widths, and an integer is
// assignable to a float but not the reverse.
func TypesAssignable(dest, src *Type) *Type {
	d, s := Dealias(dest), Dealias(src)
	if d == nil || s == nil {
		return nil
	}
	if d.TypeName == s.TypeName {
		return dest
	}
	switch d.Kind {
	case KindBasic:
		if s.Kind != KindBasic {
			return nil
		}
		if d.IsFloat == s.IsFloat || d.IsFloat {
			// same numeric family (any width), or int->float
			return dest
		}
		return nil
	case KindPointer:
		if s.Kind == KindPointer && (d.IsVoidPtr || s.IsVoidPtr) {
			return dest
		}
		return nil
	default:
		return nil
	}
}

// Op identifies a binary operator for compatibility purposes.
type Op string

const (
	OpArithmetic Op = "arith" // + - * / %
	OpBitwise    Op = "bitwise"
	OpShift      Op = "shift"
	OpRelational Op = "rel"
	OpEquality   Op = "eq"
	OpLogical    Op = "logic"
)

// CoercionResult is the outcome of DetermineCompatibilityAndCoerce: the
// common type both operands coerce to, and whether the pairing is
// mutable-propagating (spec.md §4.4 "determine_compatibility_and_coerce").
type CoercionResult struct {
	Result    *Type
	IsMutable bool
}

// DetermineCompatibilityAndCoerce is the binary-operator compatibility
// oracle: integer rank promotion, pointer/integer validity per operator,
// and mutability propagation.
func DetermineCompatibilityAndCoerce(a, b *Type, op Op) (*CoercionResult, bool) {
	da, db := Dealias(a), Dealias(b)
	if da == nil || db == nil {
		return nil, false
	}

	switch op {
	case OpArithmetic:
		if da.Kind == KindPointer && db.IsInteger() {
			return &CoercionResult{Result: a}, true
		}
		if db.Kind == KindPointer && da.IsInteger() {
			return &CoercionResult{Result: b}, true
		}
		if da.Kind == KindPointer || db.Kind == KindPointer {
			return nil, false
		}
		return numericCoerce(a, da, b, db)
	case OpBitwise, OpShift:
		if !da.IsInteger() || !db.IsInteger() {
			return nil, false
		}
		return numericCoerce(a, da, b, db)
	case OpRelational, OpEquality:
		if da.Kind == KindPointer && db.Kind == KindPointer {
			return &CoercionResult{Result: boolResult()}, true
		}
		if da.Kind == KindBasic && db.Kind == KindBasic {
			return &CoercionResult{Result: boolResult()}, true
		}
		return nil, false
	case OpLogical:
		if da.Kind == KindBasic && db.Kind == KindBasic {
			return &CoercionResult{Result: boolResult()}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func numericCoerce(a, da, b, db *Type) (*CoercionResult, bool) {
	if da.Kind != KindBasic || db.Kind != KindBasic {
		return nil, false
	}
	if integerRank(da) >= integerRank(db) {
		return &CoercionResult{Result: a}, true
	}
	return &CoercionResult{Result: b}, true
}

// cachedBool is the canonical basic type used to type relational/equality
// and logical expressions; NewTable sets it once to the interned "bool"
// primitive so relational operators don't need a Table reference to reuse
// the same *Type every pipeline.Context mints.
var cachedBool *Type

func SetBoolType(t *Type) { cachedBool = t }

func boolResult() *Type {
	if cachedBool != nil {
		return cachedBool
	}
	return &Type{Kind: KindBasic, TypeName: "bool", BasicSize: config.SizeByte}
}

// GetTypeSize returns the size class of t (spec.md §4.4 "get_type_size").
func GetTypeSize(t *Type) config.SizeClass {
	d := Dealias(t)
	if d == nil {
		return 0
	}
	switch d.Kind {
	case KindBasic:
		return d.BasicSize
	case KindPointer:
		return config.SizeQuadWord
	case KindStruct, KindUnion:
		return d.BasicSize
	case KindEnum:
		if d.IntegerType != nil {
			return GetTypeSize(d.IntegerType)
		}
		return config.SizeDoubleWord
	case KindArray:
		return sizeClassForBytes(d.sizeBytes())
	default:
		return config.SizeQuadWord
	}
}
