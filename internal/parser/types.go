package parser

import (
	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/token"
)

// parseTypeSpecifier parses a type-name followed by zero or more address
// specifiers (spec.md §4.5 "Type specifier"): each `*` constructs or
// deduplicates a pointer-to type, each `[const]` an array-of type. It
// returns a type_specifier node chaining a type_name node and one
// type_address_specifier node per decorator (spec.md §3 AST node classes).
func (p *Parser) parseTypeSpecifier() ast.NodeID {
	startTok := p.cur()
	nameTok, ok := p.expect(token.IDENT, "type name")
	if !ok {
		return p.errNode()
	}
	baseType, found := p.ctx.Tables.ResolveType(nameTok.Lexeme)
	if !found {
		p.reportAt(diagnostics.ErrUndefinedType, nameTok, nameTok.Lexeme)
		return p.ctx.Arena.NewError(nameTok, "undefined type")
	}

	nameNode := p.ctx.Arena.New(ast.KindTypeName, nameTok)
	nn := p.ctx.Arena.Get(nameNode)
	nn.Name = nameTok.Lexeme
	nn.ResolvedType = baseType

	children := []ast.NodeID{nameNode}
	current := baseType

	for {
		if p.curIs(token.STAR) {
			starTok := p.cur()
			p.advance()
			current = p.ctx.Types.CreatePointer(current)

			spec := p.ctx.Arena.New(ast.KindTypeAddressSpecifier, starTok)
			sn := p.ctx.Arena.Get(spec)
			sn.PointerDepth = 1
			sn.ResolvedType = current
			children = append(children, spec)
			continue
		}
		if p.curIs(token.LBRACKET) {
			lbTok := p.cur()
			p.advance()

			boundNode := p.parseConditional()
			bn := p.ctx.Arena.Get(boundNode)
			if bn == nil || bn.Kind != ast.KindConstant || bn.ConstKind == token.FLOAT_CONST {
				p.reportAt(diagnostics.ErrNotIntConstant, lbTok)
				return p.ctx.Arena.NewError(lbTok, "array bound must be an integer constant")
			}
			if _, ok := p.expect(token.RBRACKET, "]"); !ok {
				return p.errNode()
			}
			current = p.ctx.Types.CreateArray(current, int(bn.IntValue))

			spec := p.ctx.Arena.New(ast.KindTypeAddressSpecifier, lbTok)
			sn := p.ctx.Arena.Get(spec)
			sn.ArrayBound = boundNode
			sn.ResolvedType = current
			children = append(children, spec)
			continue
		}
		break
	}

	specNode := p.ctx.Arena.New(ast.KindTypeSpecifier, startTok)
	p.ctx.Arena.Chain(specNode, children)
	sp := p.ctx.Arena.Get(specNode)
	sp.ResolvedType = current
	return specNode
}

// isCastAhead reports whether, with the cursor on '(', the tokens ahead
// form a type specifier followed by ')' -- the disambiguation a C-family
// recursive-descent cast rule needs against a parenthesized expression
// (spec.md §4.5 level 11 "cast").
func (p *Parser) isCastAhead() bool {
	i := 1
	if p.at(i).Type != token.IDENT {
		return false
	}
	if _, ok := p.ctx.Tables.ResolveType(p.at(i).Lexeme); !ok {
		return false
	}
	i++
	for {
		switch p.at(i).Type {
		case token.STAR:
			i++
		case token.LBRACKET:
			i++
			for p.at(i).Type != token.RBRACKET && p.at(i).Type != token.DONE {
				i++
			}
			if p.at(i).Type == token.RBRACKET {
				i++
			}
		default:
			return p.at(i).Type == token.RPAREN
		}
	}
}
