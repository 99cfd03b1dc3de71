package macro

// Table is the macro definition registry built by pass 1 and consulted by
// pass 2 (spec.md §4.2).
type Table struct {
	byName map[string]*Record
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Record)}
}

// Lookup returns the macro definition for name, if any.
func (t *Table) Lookup(name string) (*Record, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Register adds r to the table. Callers must check Lookup first; Register
// itself does not enforce uniqueness (pass 1 reports the duplicate-name
// diagnostic before ever calling Register).
func (t *Table) Register(r *Record) {
	t.byName[r.Name] = r
}
