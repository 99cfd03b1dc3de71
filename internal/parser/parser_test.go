package parser

import (
	"testing"

	"github.com/funvibe/ollie-front/internal/pipeline"
	"github.com/funvibe/ollie-front/internal/token"
)

func tt(typ token.Type, lexeme string, line int) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: line}
}

func intConst(v int64, line int) token.Token {
	tok := tt(token.INT_CONST, "int", line)
	tok.Constants.I64 = v
	return tok
}

func done(line int) token.Token { return tt(token.DONE, "", line) }

func run(t *testing.T, tokens []token.Token) *pipeline.Context {
	t.Helper()
	ctx := pipeline.New("test.ol")
	stream := token.NewStream(tokens)
	New(ctx, stream).Parse()
	return ctx
}

// Scenario from spec.md §8: `func main() -> s_int32 { ret 0; }` parses
// clean and flags found_main_function.
func TestMainFunctionDetection(t *testing.T) {
	toks := []token.Token{
		tt(token.FUNC, "func", 1),
		tt(token.IDENT, "main", 1),
		tt(token.LPAREN, "(", 1),
		tt(token.RPAREN, ")", 1),
		tt(token.ARROW, "->", 1),
		tt(token.IDENT, "s_int32", 1),
		tt(token.LBRACE, "{", 1),
		tt(token.RET, "ret", 1),
		intConst(0, 1),
		tt(token.SEMI, ";", 1),
		tt(token.RBRACE, "}", 1),
		done(2),
	}
	ctx := run(t, toks)

	if ctx.Diagnostics.NumErrors != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Diagnostics.Diagnostics)
	}
	if !ctx.Diagnostics.FoundMainFunction {
		t.Fatal("expected found_main_function")
	}
	fn, ok := ctx.Tables.Functions.Lookup("main")
	if !ok {
		t.Fatal("expected main in function table")
	}
	if fn.ReturnType == nil || fn.ReturnType.TypeName != "s_int32" {
		t.Fatalf("expected main to return s_int32, got %v", fn.ReturnType)
	}
	if fn.EntranceBlock == "" {
		t.Fatal("expected a non-empty entrance block")
	}
}

// Scenario from spec.md §8: redeclaring a name at the same scope is an
// error citing the original line.
func TestDuplicateDeclareRejected(t *testing.T) {
	toks := []token.Token{
		tt(token.DECLARE, "declare", 1),
		tt(token.IDENT, "s_int32", 1),
		tt(token.IDENT, "x", 1),
		tt(token.SEMI, ";", 1),
		tt(token.DECLARE, "declare", 2),
		tt(token.IDENT, "s_int32", 2),
		tt(token.IDENT, "x", 2),
		tt(token.SEMI, ";", 2),
		done(3),
	}
	ctx := run(t, toks)

	if ctx.Diagnostics.NumErrors != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", ctx.Diagnostics.NumErrors, ctx.Diagnostics.Diagnostics)
	}
}

// Scenario from spec.md §8: calling a one-parameter function with two
// arguments is rejected as an arity mismatch.
func TestArityMismatch(t *testing.T) {
	toks := []token.Token{
		// func f(s_int32 a) -> s_int32 { ret a; }
		tt(token.FUNC, "func", 1),
		tt(token.IDENT, "f", 1),
		tt(token.LPAREN, "(", 1),
		tt(token.IDENT, "s_int32", 1),
		tt(token.IDENT, "a", 1),
		tt(token.RPAREN, ")", 1),
		tt(token.ARROW, "->", 1),
		tt(token.IDENT, "s_int32", 1),
		tt(token.LBRACE, "{", 1),
		tt(token.RET, "ret", 1),
		tt(token.IDENT, "a", 1),
		tt(token.SEMI, ";", 1),
		tt(token.RBRACE, "}", 1),
		// func main() -> s_int32 { ret @f(1,2); }
		tt(token.FUNC, "func", 2),
		tt(token.IDENT, "main", 2),
		tt(token.LPAREN, "(", 2),
		tt(token.RPAREN, ")", 2),
		tt(token.ARROW, "->", 2),
		tt(token.IDENT, "s_int32", 2),
		tt(token.LBRACE, "{", 2),
		tt(token.RET, "ret", 2),
		tt(token.AT, "@", 2),
		tt(token.IDENT, "f", 2),
		tt(token.LPAREN, "(", 2),
		intConst(1, 2),
		tt(token.COMMA, ",", 2),
		intConst(2, 2),
		tt(token.RPAREN, ")", 2),
		tt(token.SEMI, ";", 2),
		tt(token.RBRACE, "}", 2),
		done(3),
	}
	ctx := run(t, toks)

	if ctx.Diagnostics.NumErrors == 0 {
		t.Fatal("expected an arity-mismatch error")
	}
}

// A for loop with a non-empty body produces the entry/header/body shape
// with a back-edge from body to header (spec.md §8 "Control-flow shape").
func TestForLoopControlFlowShape(t *testing.T) {
	toks := []token.Token{
		tt(token.FOR, "for", 1),
		tt(token.LPAREN, "(", 1),
		tt(token.SEMI, ";", 1),
		tt(token.SEMI, ";", 1),
		tt(token.RPAREN, ")", 1),
		tt(token.DO, "do", 1),
		tt(token.LBRACE, "{", 1),
		tt(token.RBRACE, "}", 1),
		done(2),
	}
	ctx := pipeline.New("test.ol")
	stream := token.NewStream(toks)
	p := New(ctx, stream)
	p.parseForStatement()

	if ctx.Diagnostics.NumErrors != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Diagnostics.Diagnostics)
	}
	// program root -> for-entry -> header -> body -> header (back-edge)
	//                                            \-> merge
	blocks := ctx.CFG.Blocks()
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks (root, entry, header, body, merge), got %d", len(blocks))
	}
	header := blocks[2]
	body := blocks[3]
	backEdge := false
	for _, s := range body.Successors {
		if s == header.ID {
			backEdge = true
		}
	}
	if !backEdge {
		t.Fatal("expected a back-edge from the body block to the header block")
	}
}
