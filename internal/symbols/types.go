package symbols

import "github.com/funvibe/ollie-front/internal/typesystem"

// TypeRecord wraps a type descriptor in the type symbol table (spec.md §3
// "Type record").
type TypeRecord struct {
	Name string
	Type *typesystem.Type
	Line int
}

type typeScope map[string]TypeRecord

// TypeTable is the scoped stack of type records (spec.md §4.3). It is
// distinct from typesystem.Table: the Table interns type descriptors by
// canonical name globally (so "s_int32*" is always the same *Type); this
// table additionally tracks *where in scope* a name was introduced, so
// shadowing and redeclaration-within-scope behave the way the variable
// table does.
type TypeTable struct {
	scopes []typeScope
}

// NewTypeTable opens the outermost scope and pre-populates it with the
// primitive catalogue (spec.md §3 invariant 2): primitives must resolve
// before any user code is parsed.
func NewTypeTable(primitives *typesystem.Table) *TypeTable {
	t := &TypeTable{}
	t.InitializeScope()
	for _, ty := range primitives.AllPrimitives() {
		t.Insert(TypeRecord{Name: ty.TypeName, Type: ty})
	}
	return t
}

func (t *TypeTable) InitializeScope() {
	t.scopes = append(t.scopes, typeScope{})
}

func (t *TypeTable) FinalizeScope() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *TypeTable) Depth() int { return len(t.scopes) }

// Insert adds a type record to the current top scope; it returns false if
// one already exists there.
func (t *TypeTable) Insert(r TypeRecord) bool {
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top[r.Name]; exists {
		return false
	}
	top[r.Name] = r
	return true
}

func (t *TypeTable) LookupLocalScope(name string) (TypeRecord, bool) {
	r, ok := t.scopes[len(t.scopes)-1][name]
	return r, ok
}

func (t *TypeTable) LookupAnyScope(name string) (TypeRecord, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if r, ok := t.scopes[i][name]; ok {
			return r, true
		}
	}
	return TypeRecord{}, false
}
