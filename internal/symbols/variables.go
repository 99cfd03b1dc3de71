package symbols

// variableScope is one hash scope of the variable-table stack.
type variableScope map[string]Variable

// VariableTable is the scoped stack of variable records (spec.md §4.3).
type VariableTable struct {
	scopes []variableScope
}

// NewVariableTable returns a table with a single (global) scope already
// open, matching the parser's top-level program scope.
func NewVariableTable() *VariableTable {
	t := &VariableTable{}
	t.InitializeScope()
	return t
}

// InitializeScope pushes a new lexical scope (spec.md §4.3).
func (t *VariableTable) InitializeScope() {
	t.scopes = append(t.scopes, variableScope{})
}

// FinalizeScope pops the current lexical scope. Calling it with no open
// scope is a caller error (the spec.md §8 scope-conservation property
// requires callers to pair every InitializeScope with exactly one
// FinalizeScope).
func (t *VariableTable) FinalizeScope() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports how many scopes are currently open (used by tests to check
// scope conservation).
func (t *VariableTable) Depth() int { return len(t.scopes) }

// Insert adds v to the current top scope. It returns false if a record with
// the same name already exists at that scope (spec.md §3 invariant 3,
// §4.3): shadowing an outer scope is permitted, but redeclaring within the
// same scope is not.
func (t *VariableTable) Insert(v Variable) bool {
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top[v.Name]; exists {
		return false
	}
	top[v.Name] = v
	return true
}

// LookupLocalScope consults only the top scope (spec.md §4.3
// "lookup_local_scope").
func (t *VariableTable) LookupLocalScope(name string) (Variable, bool) {
	v, ok := t.scopes[len(t.scopes)-1][name]
	return v, ok
}

// LookupAnyScope walks the stack outward from the top (spec.md §4.3
// "lookup_any_scope").
func (t *VariableTable) LookupAnyScope(name string) (Variable, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if v, ok := t.scopes[i][name]; ok {
			return v, true
		}
	}
	return Variable{}, false
}

// Update overwrites an existing record in the innermost scope that holds
// its name; a name held by no scope is ignored. The parser does not call
// it, so an `asn` to a declared variable leaves Initialized unchanged.
func (t *VariableTable) Update(v Variable) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i][v.Name]; ok {
			t.scopes[i][v.Name] = v
			return
		}
	}
}
