package token

import (
	"encoding/json"
	"fmt"
	"io"
)

// wireToken is the JSON shape a token is read from and written in. The
// lexer is an external collaborator (spec.md §1, §6): this is the one
// concrete serialization of the "random-access sequence terminated by a
// synthetic DONE token" contract §6 describes, so that a lexer living
// outside this module (or a test fixture standing in for one) has a
// documented file format to hand tokens across in. No third-party codec
// is warranted here: this is the module's one external I/O boundary, not
// a domain concern, and nothing in the retrieval pack's dependency set
// exercises a JSON/serialization library.
type wireToken struct {
	Type   Type   `json:"type"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Ignore bool   `json:"ignore,omitempty"`

	I8  *int8    `json:"i8,omitempty"`
	I16 *int16   `json:"i16,omitempty"`
	I32 *int32   `json:"i32,omitempty"`
	I64 *int64   `json:"i64,omitempty"`
	U8  *uint8   `json:"u8,omitempty"`
	U16 *uint16  `json:"u16,omitempty"`
	U32 *uint32  `json:"u32,omitempty"`
	U64 *uint64  `json:"u64,omitempty"`
	F32 *float32 `json:"f32,omitempty"`
	F64 *float64 `json:"f64,omitempty"`
	Ch  *rune    `json:"ch,omitempty"`
	Str *string  `json:"str,omitempty"`

	ParamOrdinal int `json:"param_ordinal,omitempty"`
}

func toWire(t Token) wireToken {
	w := wireToken{Type: t.Type, Lexeme: t.Lexeme, Line: t.Line, Ignore: t.Ignore, ParamOrdinal: t.Constants.ParamOrdinal}
	switch t.Type {
	case INT_CONST:
		switch {
		case t.Constants.I64 != 0:
			v := t.Constants.I64
			w.I64 = &v
		case t.Constants.U64 != 0:
			v := t.Constants.U64
			w.U64 = &v
		case t.Constants.I32 != 0:
			v := t.Constants.I32
			w.I32 = &v
		case t.Constants.U32 != 0:
			v := t.Constants.U32
			w.U32 = &v
		case t.Constants.I16 != 0:
			v := t.Constants.I16
			w.I16 = &v
		case t.Constants.U16 != 0:
			v := t.Constants.U16
			w.U16 = &v
		case t.Constants.I8 != 0:
			v := t.Constants.I8
			w.I8 = &v
		case t.Constants.U8 != 0:
			v := t.Constants.U8
			w.U8 = &v
		}
	case FLOAT_CONST:
		if t.Constants.F64 != 0 {
			v := t.Constants.F64
			w.F64 = &v
		} else if t.Constants.F32 != 0 {
			v := t.Constants.F32
			w.F32 = &v
		}
	case CHAR_CONST:
		v := t.Constants.Ch
		w.Ch = &v
	case STR_CONST:
		v := t.Constants.Str
		w.Str = &v
	}
	return w
}

func fromWire(w wireToken) Token {
	t := Token{Type: w.Type, Lexeme: w.Lexeme, Line: w.Line, Ignore: w.Ignore}
	t.Constants.ParamOrdinal = w.ParamOrdinal
	switch {
	case w.I8 != nil:
		t.Constants.I8 = *w.I8
	case w.I16 != nil:
		t.Constants.I16 = *w.I16
	case w.I32 != nil:
		t.Constants.I32 = *w.I32
	case w.I64 != nil:
		t.Constants.I64 = *w.I64
	case w.U8 != nil:
		t.Constants.U8 = *w.U8
	case w.U16 != nil:
		t.Constants.U16 = *w.U16
	case w.U32 != nil:
		t.Constants.U32 = *w.U32
	case w.U64 != nil:
		t.Constants.U64 = *w.U64
	case w.F32 != nil:
		t.Constants.F32 = *w.F32
	case w.F64 != nil:
		t.Constants.F64 = *w.F64
	case w.Ch != nil:
		t.Constants.Ch = *w.Ch
	case w.Str != nil:
		t.Constants.Str = *w.Str
	}
	return t
}

// Decode reads a JSON array of tokens (the lexer-output file format) and
// returns a Stream wrapping them. It does not require a trailing DONE
// token; Decode appends one if the caller's array omits it.
func Decode(r io.Reader) (*Stream, error) {
	var wire []wireToken
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode token stream: %w", err)
	}
	items := make([]Token, 0, len(wire))
	for _, w := range wire {
		items = append(items, fromWire(w))
	}
	if len(items) == 0 || items[len(items)-1].Type != DONE {
		items = append(items, Token{Type: DONE, Line: lastLine(items)})
	}
	return NewStream(items), nil
}

func lastLine(items []Token) int {
	if len(items) == 0 {
		return 0
	}
	return items[len(items)-1].Line
}

// Encode writes stream's tokens as the JSON array Decode reads, for test
// fixtures and for a lexer-side tool to target.
func Encode(w io.Writer, s *Stream) error {
	items := s.Items()
	wire := make([]wireToken, 0, len(items))
	for _, t := range items {
		wire = append(wire, toWire(t))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}
