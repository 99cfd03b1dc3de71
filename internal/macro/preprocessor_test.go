package macro

import (
	"testing"

	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/token"
)

func toks(items ...token.Token) *token.Stream {
	return token.NewStream(items)
}

func ident(lexeme string, line int) token.Token {
	return token.New(token.IDENT, lexeme, line)
}

func sym(tt token.Type, lexeme string, line int) token.Token {
	return token.New(tt, lexeme, line)
}

func lexemesOf(items []token.Token) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Lexeme
	}
	return out
}

func TestConsumeRegistersParameterlessMacro(t *testing.T) {
	// $macro GREETING hello $endmacro
	stream := toks(
		sym(token.MACRO, "$macro", 1),
		ident("GREETING", 1),
		ident("hello", 1),
		sym(token.ENDMACRO, "$endmacro", 1),
	)
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)

	if err := pp.Consume(stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if counters.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", counters.Diagnostics)
	}
	rec, ok := pp.Table.Lookup("GREETING")
	if !ok {
		t.Fatal("GREETING not registered")
	}
	if len(rec.Parameters) != 0 {
		t.Fatalf("expected no parameters, got %d", len(rec.Parameters))
	}
	for i, tok := range stream.Items() {
		if !tok.Ignore {
			t.Fatalf("expected token %d (%v) to be ignored after consume", i, tok)
		}
	}
}

func TestConsumeDuplicateMacroName(t *testing.T) {
	stream := toks(
		sym(token.MACRO, "$macro", 1),
		ident("M", 1),
		ident("a", 1),
		sym(token.ENDMACRO, "$endmacro", 1),
		sym(token.MACRO, "$macro", 3),
		ident("M", 3),
		ident("b", 3),
		sym(token.ENDMACRO, "$endmacro", 3),
	)
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)

	err := pp.Consume(stream)
	if err == nil {
		t.Fatal("expected an error on duplicate macro name")
	}
	if counters.NumErrors != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", counters.NumErrors)
	}
}

func TestExpandParameterlessMacro(t *testing.T) {
	// $macro TWO 2 $endmacro  ret TWO ;
	stream := toks(
		sym(token.MACRO, "$macro", 1),
		ident("TWO", 1),
		sym(token.INT_CONST, "2", 1),
		sym(token.ENDMACRO, "$endmacro", 1),
		sym(token.RET, "ret", 2),
		ident("TWO", 2),
		sym(token.SEMI, ";", 2),
	)
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)
	if err := pp.Consume(stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	out, err := pp.Expand(stream)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := lexemesOf(out.Items())
	want := []string{"ret", "2", ";"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestExpandParameterizedMacroSubstitutesArguments(t *testing.T) {
	// $macro ADD(a, b) a + b $endmacro   x := ADD(1, 2) ;
	stream := toks(
		sym(token.MACRO, "$macro", 1),
		ident("ADD", 1),
		sym(token.LPAREN, "(", 1),
		ident("a", 1),
		sym(token.COMMA, ",", 1),
		ident("b", 1),
		sym(token.RPAREN, ")", 1),
		ident("a", 1),
		sym(token.PLUS, "+", 1),
		ident("b", 1),
		sym(token.ENDMACRO, "$endmacro", 1),
		ident("x", 2),
		sym(token.ASSIGN, ":=", 2),
		ident("ADD", 2),
		sym(token.LPAREN, "(", 2),
		sym(token.INT_CONST, "1", 2),
		sym(token.COMMA, ",", 2),
		sym(token.INT_CONST, "2", 2),
		sym(token.RPAREN, ")", 2),
		sym(token.SEMI, ";", 2),
	)
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)
	if err := pp.Consume(stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	out, err := pp.Expand(stream)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := lexemesOf(out.Items())
	want := []string{"x", ":=", "1", "+", "2", ";"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFloatingEndmacroReported(t *testing.T) {
	stream := toks(sym(token.ENDMACRO, "$endmacro", 1))
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)

	if err := pp.Consume(stream); err == nil {
		t.Fatal("expected an error for a floating $endmacro")
	}
}

func TestEmptyMacroBodyRejected(t *testing.T) {
	stream := toks(
		sym(token.MACRO, "$macro", 1),
		ident("EMPTY", 1),
		sym(token.ENDMACRO, "$endmacro", 1),
	)
	counters := &diagnostics.Counters{}
	pp := New("t.ollie", counters)

	if err := pp.Consume(stream); err == nil {
		t.Fatal("expected an error for an empty macro body")
	}
}
