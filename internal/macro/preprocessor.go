package macro

import (
	"fmt"

	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/groupstack"
	"github.com/funvibe/ollie-front/internal/token"
)

// Preprocessor drives both passes over a token stream (spec.md §4.2).
type Preprocessor struct {
	File     string
	Table    *Table
	Counters *diagnostics.Counters
}

// New returns a preprocessor reporting into the given counters.
func New(file string, counters *diagnostics.Counters) *Preprocessor {
	return &Preprocessor{File: file, Table: NewTable(), Counters: counters}
}

func (p *Preprocessor) fail(code diagnostics.Code, line int, args ...interface{}) error {
	d := diagnostics.NewPreprocessorError(code, p.File, line, args...)
	p.Counters.Report(d)
	return d
}

// Consume runs pass 1: it extracts every $macro ... $endmacro region,
// registers it in p.Table, and marks every token that belongs to the
// definition Ignore=true. Any error aborts the pass and is returned
// (spec.md §4.2 "Failure semantics").
func (p *Preprocessor) Consume(stream *token.Stream) error {
	items := stream.Items()
	groups := groupstack.New()

	i := 0
	for i < len(items) {
		tok := items[i]

		switch tok.Type {
		case token.MACRO:
			if err := p.consumeOne(stream, groups, &i); err != nil {
				return err
			}
		case token.ENDMACRO:
			return p.fail(diagnostics.ErrFloatingEndmacro, tok.Line)
		default:
			i++
		}
	}
	return nil
}

// consumeOne parses a single $macro ... $endmacro definition starting at
// *i (pointing at the MACRO token) and advances *i past the matching
// ENDMACRO.
func (p *Preprocessor) consumeOne(stream *token.Stream, groups *groupstack.Stack, i *int) error {
	items := stream.Items()
	macroLine := items[*i].Line
	stream.SetIgnore(*i)
	*i++

	if *i >= len(items) || items[*i].Type != token.IDENT {
		return p.fail(diagnostics.ErrUnterminatedMacro, macroLine, "<missing name>")
	}
	name := items[*i].Lexeme
	if existing, dup := p.Table.Lookup(name); dup {
		return p.fail(diagnostics.ErrDuplicateMacro, items[*i].Line, name, existing.Line)
	}
	rec := &Record{Name: name, Line: macroLine}
	stream.SetIgnore(*i)
	*i++

	// Optional (param {, param}*) parameter list.
	if *i < len(items) && items[*i].Type == token.LPAREN {
		groups.Push(items[*i])
		stream.SetIgnore(*i)
		*i++

		for {
			if *i >= len(items) || items[*i].Type != token.IDENT {
				return p.fail(diagnostics.ErrMacroGroupMismatch, macroLine)
			}
			paramName := items[*i].Lexeme
			if rec.ParamIndex(paramName) >= 0 {
				return p.fail(diagnostics.ErrDuplicateParam, items[*i].Line, paramName)
			}
			rec.Parameters = append(rec.Parameters, items[*i])
			stream.SetIgnore(*i)
			*i++

			if *i < len(items) && items[*i].Type == token.COMMA {
				stream.SetIgnore(*i)
				*i++
				continue
			}
			break
		}

		if *i >= len(items) || items[*i].Type != token.RPAREN {
			return p.fail(diagnostics.ErrMacroGroupMismatch, macroLine)
		}
		if _, ok := groups.Pop(); !ok {
			return p.fail(diagnostics.ErrMacroGroupMismatch, macroLine)
		}
		stream.SetIgnore(*i)
		*i++
	}

	// Body: copy every token until ENDMACRO, rewriting parameter references.
	for {
		if *i >= len(items) {
			return p.fail(diagnostics.ErrUnterminatedMacro, macroLine, name)
		}
		cur := items[*i]
		if cur.Type == token.MACRO {
			return p.fail(diagnostics.ErrNestedMacro, cur.Line)
		}
		if cur.Type == token.ENDMACRO {
			break
		}

		stream.SetIgnore(*i)
		copyTok := cur
		if copyTok.Type == token.IDENT {
			if ord := rec.ParamIndex(copyTok.Lexeme); ord >= 0 {
				copyTok.Type = token.MACRO_PARAM
				copyTok.Constants.ParamOrdinal = ord
			}
		}
		rec.BodyTokens = append(rec.BodyTokens, copyTok)
		*i++
	}

	if len(rec.BodyTokens) == 0 {
		return p.fail(diagnostics.ErrEmptyMacroBody, macroLine, name)
	}

	rec.TotalTokenCount = len(rec.BodyTokens)
	stream.SetIgnore(*i) // the ENDMACRO token
	*i++

	p.Table.Register(rec)
	return nil
}

// Expand runs pass 2: it walks the original stream, skipping Ignore'd
// tokens, replacing macro-name identifiers with their (parameter-
// substituted) expansion, and appending every other token verbatim into a
// fresh stream (spec.md §4.2 "Pass 2 — replacement").
func (p *Preprocessor) Expand(stream *token.Stream) (*token.Stream, error) {
	items := stream.Items()
	out := token.NewStream(nil)

	i := 0
	for i < len(items) {
		tok := items[i]
		if tok.Ignore {
			i++
			continue
		}
		if tok.Type != token.IDENT {
			out.Append(tok)
			i++
			continue
		}
		rec, isMacro := p.Table.Lookup(tok.Lexeme)
		if !isMacro {
			out.Append(tok)
			i++
			continue
		}
		next, err := p.substitute(items, i, rec, out, 0)
		if err != nil {
			return nil, err
		}
		i = next
	}
	return out, nil
}

const maxExpansionDepth = 64

// substitute expands one macro call site starting at items[callIdx]
// (pointing at the macro-name identifier) and appends its expansion to out.
// It returns the index just past the call site (or just past the bare name,
// for a parameterless macro).
func (p *Preprocessor) substitute(items []token.Token, callIdx int, rec *Record, out *token.Stream, depth int) (int, error) {
	if depth > maxExpansionDepth {
		return 0, p.fail(diagnostics.ErrUndefinedMacroCall, items[callIdx].Line, rec.Name)
	}

	if len(rec.Parameters) == 0 {
		for _, bt := range rec.BodyTokens {
			out.Append(bt)
		}
		return callIdx + 1, nil
	}

	i := callIdx + 1
	if i >= len(items) || items[i].Type != token.LPAREN {
		return 0, p.fail(diagnostics.ErrUndefinedMacroCall, items[callIdx].Line, rec.Name)
	}
	i++ // consume '('

	args := make([][]token.Token, 0, len(rec.Parameters))
	for argN := 0; argN < len(rec.Parameters); argN++ {
		slice, next, err := readArgument(items, i)
		if err != nil {
			return 0, p.fail(diagnostics.ErrMacroGroupMismatch, items[callIdx].Line)
		}
		expanded, err := p.expandTokenSlice(slice, depth+1)
		if err != nil {
			return 0, err
		}
		args = append(args, expanded)
		i = next

		if argN < len(rec.Parameters)-1 {
			if i >= len(items) || items[i].Type != token.COMMA {
				return 0, p.fail(diagnostics.ErrMacroGroupMismatch, items[callIdx].Line)
			}
			i++ // consume ','
		}
	}

	if i >= len(items) || items[i].Type != token.RPAREN {
		return 0, p.fail(diagnostics.ErrMacroGroupMismatch, items[callIdx].Line)
	}
	i++ // consume ')'

	for _, bt := range rec.BodyTokens {
		if bt.Type == token.MACRO_PARAM {
			for _, at := range args[bt.Constants.ParamOrdinal] {
				out.Append(at)
			}
		} else {
			out.Append(bt)
		}
	}
	return i, nil
}

// readArgument reads one top-level-comma-separated argument slice starting
// at items[start], respecting nested (...)/[...]/{...} so commas inside a
// nested call don't split the argument early.
func readArgument(items []token.Token, start int) ([]token.Token, int, error) {
	depth := 0
	i := start
	for i < len(items) {
		t := items[i]
		switch t.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if depth == 0 {
				return items[start:i], i, nil
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				return items[start:i], i, nil
			}
		}
		i++
	}
	return nil, 0, fmt.Errorf("unterminated macro argument")
}

// expandTokenSlice recursively macro-expands an argument slice before it is
// spliced into a call site's body (spec.md §4.2 "each argument slice is
// itself recursively macro-expanded before being used").
func (p *Preprocessor) expandTokenSlice(items []token.Token, depth int) ([]token.Token, error) {
	out := token.NewStream(nil)
	i := 0
	for i < len(items) {
		t := items[i]
		if t.Type != token.IDENT {
			out.Append(t)
			i++
			continue
		}
		rec, isMacro := p.Table.Lookup(t.Lexeme)
		if !isMacro {
			out.Append(t)
			i++
			continue
		}
		next, err := p.substitute(items, i, rec, out, depth)
		if err != nil {
			return nil, err
		}
		i = next
	}
	return out.Items(), nil
}
