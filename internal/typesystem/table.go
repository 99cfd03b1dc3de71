package typesystem

import "github.com/funvibe/ollie-front/internal/config"

// Table is the type-system's own catalogue of interned type descriptors,
// keyed by canonical name. It is distinct from symbols.TypeTable (the
// scoped name->record lookup the parser uses): Table is the flat registry
// the constructors below consult so that, e.g., every "s_int32*" ever
// constructed is the same *Type (spec.md §8 "Type-name canonicality").
type Table struct {
	byName map[string]*Type
}

// NewTable pre-populates the primitive catalogue (spec.md §3 invariant 2):
// primitive types must be resolvable before any user code is parsed.
func NewTable() *Table {
	t := &Table{byName: make(map[string]*Type)}
	for _, p := range config.Primitives {
		t.byName[p.Name] = &Type{
			Kind:      KindBasic,
			TypeName:  p.Name,
			BasicSize: p.Size,
			IsFloat:   p.Float,
		}
	}
	if b, ok := t.byName["bool"]; ok {
		SetBoolType(b)
	}
	return t
}

// Lookup returns the interned type for a canonical name, if any.
func (t *Table) Lookup(name string) (*Type, bool) {
	ty, ok := t.byName[name]
	return ty, ok
}

// AllPrimitives returns every basic type currently interned, used to seed
// the outermost scope of symbols.TypeTable at startup.
func (t *Table) AllPrimitives() []*Type {
	out := make([]*Type, 0, len(t.byName))
	for _, ty := range t.byName {
		if ty.Kind == KindBasic {
			out = append(out, ty)
		}
	}
	return out
}

// CreateBasic registers (or returns the existing) primitive basic type.
func (t *Table) CreateBasic(name string, size config.SizeClass, isFloat bool) *Type {
	if existing, ok := t.byName[name]; ok {
		return existing
	}
	ty := &Type{Kind: KindBasic, TypeName: name, BasicSize: size, IsFloat: isFloat}
	t.byName[name] = ty
	return ty
}

// CreatePointer constructs (or deduplicates) a pointer-to-to type.
func (t *Table) CreatePointer(to *Type) *Type {
	name := PointerName(to.TypeName)
	if existing, ok := t.byName[name]; ok {
		return existing
	}
	ty := &Type{
		Kind:      KindPointer,
		TypeName:  name,
		PointsTo:  to,
		IsVoidPtr: to.TypeName == config.VoidTypeName,
	}
	t.byName[name] = ty
	return ty
}

// CreateArray constructs (or deduplicates) an array-of-count-of-element
// type.
func (t *Table) CreateArray(element *Type, count int) *Type {
	name := ArrayName(element.TypeName, count)
	if existing, ok := t.byName[name]; ok {
		return existing
	}
	ty := &Type{Kind: KindArray, TypeName: name, ElementType: element, Count: count}
	t.byName[name] = ty
	return ty
}

// CreateStruct begins a struct type registration. The returned *Type is not
// added to the table until FinishStruct is called with its members (§3
// invariant 4: partial registration is forbidden).
func (t *Table) CreateStruct(name string) *Type {
	return &Type{Kind: KindStruct, TypeName: name}
}

// AddStructMember appends a member to a struct-in-progress, fixing its
// ordinal (§3 invariant 5).
func AddStructMember(s *Type, name string, memberType *Type) {
	s.Members = append(s.Members, Member{Name: name, Type: memberType, Ordinal: len(s.Members)})
}

// FinishStruct computes size/alignment and registers the struct in the
// table. Calling it twice on the same name is a caller error (redefinition
// is caught earlier, at the symbol-table level).
func (t *Table) FinishStruct(s *Type) *Type {
	s.BasicSize, _ = structSizeAlignment(s.Members)
	s.registered = true
	t.byName[s.TypeName] = s
	return s
}

// CreateUnion mirrors CreateStruct/FinishStruct for unions: size is the
// largest member, not the sum.
func (t *Table) CreateUnion(name string) *Type {
	return &Type{Kind: KindUnion, TypeName: name}
}

func (t *Table) FinishUnion(u *Type) *Type {
	maxBytes := 0
	for _, m := range u.Members {
		if m.Type != nil {
			maxBytes = maxOf(maxBytes, m.Type.sizeBytes())
		}
	}
	u.BasicSize = sizeClassForBytes(maxBytes)
	u.registered = true
	t.byName[u.TypeName] = u
	return u
}

// CreateEnum begins an enum type registration backed by integerType.
func (t *Table) CreateEnum(name string, integerType *Type) *Type {
	return &Type{Kind: KindEnum, TypeName: name, IntegerType: integerType}
}

// AddEnumMember appends a tagged member, fixing its ordinal (§3 invariant 5).
func AddEnumMember(e *Type, name string) {
	e.EnumMembers = append(e.EnumMembers, Member{Name: name, Ordinal: len(e.EnumMembers)})
}

func (t *Table) FinishEnum(e *Type) *Type {
	e.registered = true
	t.byName[e.TypeName] = e
	return e
}

// CreateAlias registers name as an alias for of.
func (t *Table) CreateAlias(name string, of *Type) *Type {
	ty := &Type{Kind: KindAlias, TypeName: name, Aliased: of, registered: true}
	t.byName[name] = ty
	return ty
}

// CreateFunctionSignature begins a function-signature registration.
func (t *Table) CreateFunctionSignature() *Type {
	return &Type{Kind: KindFunctionSignature}
}

// AddParameter appends a parameter slot to a function-signature-in-progress.
func AddParameter(fn *Type, paramType *Type, isMutable bool) {
	fn.Params = append(fn.Params, Param{Type: paramType, IsMutable: isMutable})
}

// FinishFunctionSignature names and interns the completed signature.
func (t *Table) FinishFunctionSignature(fn *Type, returnType *Type, isPublic bool) *Type {
	fn.ReturnType = returnType
	fn.IsPublic = isPublic
	fn.TypeName = FunctionSignatureName(fn.Params, returnType.TypeName)
	fn.registered = true
	if existing, ok := t.byName[fn.TypeName]; ok {
		return existing
	}
	t.byName[fn.TypeName] = fn
	return fn
}

func (t *Type) sizeBytes() int {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case KindBasic:
		return t.BasicSize.Bytes()
	case KindPointer:
		return 8
	case KindArray:
		return t.ElementType.sizeBytes() * t.Count
	case KindStruct:
		return t.BasicSize.Bytes()
	case KindUnion:
		return t.BasicSize.Bytes()
	case KindEnum:
		if t.IntegerType != nil {
			return t.IntegerType.sizeBytes()
		}
		return config.SizeDoubleWord.Bytes()
	case KindAlias:
		return t.Aliased.sizeBytes()
	default:
		return 8
	}
}

// structSizeAlignment sums member sizes (no padding modeled -- the spec
// does not require ABI-accurate layout, only that size/alignment exist) and
// reports the struct's natural alignment as the widest member.
func structSizeAlignment(members []Member) (config.SizeClass, int) {
	total := 0
	widest := 1
	for _, m := range members {
		sz := m.Type.sizeBytes()
		total = align(total+sz, 1)
		widest = maxOf(widest, sz)
	}
	return sizeClassForBytes(total), widest
}

func sizeClassForBytes(n int) config.SizeClass {
	switch {
	case n <= 1:
		return config.SizeByte
	case n <= 2:
		return config.SizeWord
	case n <= 4:
		return config.SizeDoubleWord
	default:
		return config.SizeQuadWord
	}
}
