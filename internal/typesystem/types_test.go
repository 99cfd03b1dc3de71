package typesystem

import "testing"

func TestPointerNameCanonicality(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")

	p1 := table.CreatePointer(i32)
	p2 := table.CreatePointer(i32)

	if p1 != p2 {
		t.Fatalf("expected repeated CreatePointer to return the same *Type, got %p and %p", p1, p2)
	}
	if p1.TypeName != "s_int32*" {
		t.Fatalf("unexpected pointer type name: %s", p1.TypeName)
	}
}

func TestArrayNameCanonicality(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")

	a1 := table.CreateArray(i32, 10)
	a2 := table.CreateArray(i32, 10)
	a3 := table.CreateArray(i32, 11)

	if a1 != a2 {
		t.Fatalf("expected repeated CreateArray to return the same *Type")
	}
	if a1 == a3 {
		t.Fatalf("expected different counts to produce distinct types")
	}
}

func TestDealias(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")
	alias := table.CreateAlias("MyInt", i32)

	if got := Dealias(alias); got != i32 {
		t.Fatalf("expected Dealias(alias) == s_int32, got %v", got)
	}
}

func TestTypesAssignable(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")
	i64, _ := table.Lookup("s_int64")
	dbl, _ := table.Lookup("double")

	if TypesAssignable(i32, i32) == nil {
		t.Fatalf("identical types should be assignable")
	}
	if TypesAssignable(i64, i32) == nil {
		t.Fatalf("widening int assignment should be permitted")
	}
	if TypesAssignable(i32, dbl) != nil {
		t.Fatalf("narrowing float-to-int should be rejected")
	}
}

func TestDetermineCompatibilityAndCoercePointerArithmetic(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")
	ptr := table.CreatePointer(i32)

	res, _ := DetermineCompatibilityAndCoerce(ptr, i32, OpArithmetic)
	if res == nil || res.Result != ptr {
		t.Fatalf("pointer + integer should coerce to the pointer type")
	}

	if res2, ok := DetermineCompatibilityAndCoerce(ptr, ptr, OpArithmetic); ok || res2 != nil {
		t.Fatalf("pointer + pointer should be rejected for arithmetic")
	}
}

func TestStructSizeRequiresFullRegistration(t *testing.T) {
	table := NewTable()
	i32, _ := table.Lookup("s_int32")

	s := table.CreateStruct("Foo")
	AddStructMember(s, "a", i32)
	AddStructMember(s, "b", i32)
	table.FinishStruct(s)

	if GetTypeSize(s).Bytes() != 8 {
		t.Fatalf("expected 8-byte struct, got %d", GetTypeSize(s).Bytes())
	}
	if s.Members[0].Ordinal != 0 || s.Members[1].Ordinal != 1 {
		t.Fatalf("member ordinals must be fixed at definition order")
	}
}
