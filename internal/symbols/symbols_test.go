package symbols

import (
	"testing"

	"github.com/funvibe/ollie-front/internal/typesystem"
)

func TestVariableScopeShadowingVsRedeclaration(t *testing.T) {
	vt := NewVariableTable()
	if !vt.Insert(Variable{Name: "x", Line: 1}) {
		t.Fatal("expected first insert of x to succeed")
	}
	if vt.Insert(Variable{Name: "x", Line: 2}) {
		t.Fatal("expected redeclaration of x in the same scope to fail")
	}

	vt.InitializeScope()
	if !vt.Insert(Variable{Name: "x", Line: 3}) {
		t.Fatal("expected shadowing x in an inner scope to succeed")
	}
	if v, ok := vt.LookupLocalScope("x"); !ok || v.Line != 3 {
		t.Fatalf("expected local lookup to see the shadowing record, got %+v, %v", v, ok)
	}
	vt.FinalizeScope()

	if v, ok := vt.LookupAnyScope("x"); !ok || v.Line != 1 {
		t.Fatalf("expected the outer x to reappear after the shadow's scope closed, got %+v, %v", v, ok)
	}
	if vt.Depth() != 1 {
		t.Fatalf("expected depth 1 after closing the inner scope, got %d", vt.Depth())
	}
}

func TestCheckDeclarationCrossTableUniqueness(t *testing.T) {
	types := typesystem.NewTable()
	tables := NewTables(types)

	tables.Functions.Insert(Function{Name: "area", Line: 5})
	if c, ok := tables.CheckDeclaration("area"); !ok || c.Kind != "function" || c.Line != 5 {
		t.Fatalf("expected a function collision at line 5, got %+v, %v", c, ok)
	}

	tables.Variables.Insert(Variable{Name: "count", Line: 7})
	if c, ok := tables.CheckDeclaration("count"); !ok || c.Kind != "variable" || c.Line != 7 {
		t.Fatalf("expected a variable collision at line 7, got %+v, %v", c, ok)
	}

	tables.Types.Insert(TypeRecord{Name: "point_t", Line: 9})
	if c, ok := tables.CheckDeclaration("point_t"); !ok || c.Kind != "type" || c.Line != 9 {
		t.Fatalf("expected a type collision at line 9, got %+v, %v", c, ok)
	}

	if _, ok := tables.CheckDeclaration("fresh_name"); ok {
		t.Fatal("expected no collision for an unused name")
	}
}

func TestTypeTableSeededWithPrimitives(t *testing.T) {
	types := typesystem.NewTable()
	tt := NewTypeTable(types)

	for _, p := range types.AllPrimitives() {
		if _, ok := tt.LookupAnyScope(p.TypeName); !ok {
			t.Fatalf("expected primitive %s to be pre-resolvable", p.TypeName)
		}
	}
}

func TestFunctionTableInsertThenUpdate(t *testing.T) {
	ft := NewFunctionTable()
	if !ft.Insert(Function{Name: "main", Line: 1}) {
		t.Fatal("expected first insert of main to succeed")
	}
	if ft.Insert(Function{Name: "main", Line: 2}) {
		t.Fatal("expected a second insert of main to fail")
	}

	fn, _ := ft.Lookup("main")
	fn.Defined = true
	fn.EntranceBlock = "block-1"
	ft.Update(fn)

	got, ok := ft.Lookup("main")
	if !ok || !got.Defined || got.EntranceBlock != "block-1" {
		t.Fatalf("expected the update to stick, got %+v, %v", got, ok)
	}
}
