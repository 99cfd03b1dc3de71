package token

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Token{Type: INT_CONST, Lexeme: "42", Line: 3}
	in.Constants.I32 = 42
	str := Token{Type: STR_CONST, Lexeme: `"hi"`, Line: 4}
	str.Constants.Str = "hi"

	src := NewStream([]Token{
		New(FUNC, "func", 1),
		New(IDENT, "main", 1),
		in,
		str,
		New(DONE, "", 5),
	})

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.Len() != src.Len() {
		t.Fatalf("expected %d tokens, got %d", src.Len(), out.Len())
	}
	got := out.At(2)
	if got.Type != INT_CONST || got.Constants.I32 != 42 {
		t.Fatalf("expected the int constant to round-trip, got %+v", got)
	}
	gotStr := out.At(3)
	if gotStr.Type != STR_CONST || gotStr.Constants.Str != "hi" {
		t.Fatalf("expected the string constant to round-trip, got %+v", gotStr)
	}
}

func TestDecodeSynthesizesMissingDone(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`[{"type":"IDENT","lexeme":"x","line":1}]`)

	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Len() != 2 || out.At(1).Type != DONE {
		t.Fatalf("expected a synthesized DONE token appended, got %d tokens ending in %v", out.Len(), out.At(out.Len()-1).Type)
	}
}
