package symbols

import "github.com/funvibe/ollie-front/internal/typesystem"

// Tables bundles the three symbol tables the parser threads through every
// grammar function (spec.md §4.3 "Cross-table uniqueness").
type Tables struct {
	Functions *FunctionTable
	Variables *VariableTable
	Types     *TypeTable
}

// NewTables wires a fresh set of tables against a shared type-descriptor
// catalogue.
func NewTables(typeCatalogue *typesystem.Table) *Tables {
	return &Tables{
		Functions: NewFunctionTable(),
		Variables: NewVariableTable(),
		Types:     NewTypeTable(typeCatalogue),
	}
}

// Collision identifies which table already holds a conflicting name, for
// a redefinition diagnostic that cites the original's line (spec.md §7
// "redefinition").
type Collision struct {
	Kind string // "function", "variable", "type"
	Line int
}

// CheckDeclaration enforces the cross-table uniqueness rule (spec.md §4.3):
// a given identifier, when introduced as a declaration, must not collide
// with an existing function, variable (at the current scope), or type.
func (t *Tables) CheckDeclaration(name string) (Collision, bool) {
	if fn, ok := t.Functions.Lookup(name); ok {
		return Collision{Kind: "function", Line: fn.Line}, true
	}
	if v, ok := t.Variables.LookupLocalScope(name); ok {
		return Collision{Kind: "variable", Line: v.Line}, true
	}
	if r, ok := t.Types.LookupAnyScope(name); ok {
		return Collision{Kind: "type", Line: r.Line}, true
	}
	return Collision{}, false
}

// ResolveType looks up a type by name across scopes. An alias resolves to
// the alias type itself; it is not dealiased.
func (t *Tables) ResolveType(name string) (*typesystem.Type, bool) {
	r, ok := t.Types.LookupAnyScope(name)
	if !ok {
		return nil, false
	}
	return r.Type, true
}
