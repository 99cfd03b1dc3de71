package parser

import (
	"fmt"

	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/config"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/token"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// parseConditional is level 0 of the precedence ladder (spec.md §4.5): a
// passthrough, since Ollie has no ternary conditional operator.
func (p *Parser) parseConditional() ast.NodeID { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() ast.NodeID {
	return p.parseBinaryLevel(config.PrecLogicalOr, p.parseLogicalAnd, typesystem.OpLogical)
}

func (p *Parser) parseLogicalAnd() ast.NodeID {
	return p.parseBinaryLevel(config.PrecLogicalAnd, p.parseInclusiveOr, typesystem.OpLogical)
}

func (p *Parser) parseInclusiveOr() ast.NodeID {
	return p.parseBinaryLevel(config.PrecInclusiveOr, p.parseExclusiveOr, typesystem.OpBitwise)
}

func (p *Parser) parseExclusiveOr() ast.NodeID {
	return p.parseBinaryLevel(config.PrecExclusiveOr, p.parseAnd, typesystem.OpBitwise)
}

func (p *Parser) parseAnd() ast.NodeID {
	return p.parseBinaryLevel(config.PrecAnd, p.parseEquality, typesystem.OpBitwise)
}

func (p *Parser) parseEquality() ast.NodeID {
	return p.parseBinaryLevel(config.PrecEquality, p.parseRelational, typesystem.OpEquality)
}

func (p *Parser) parseRelational() ast.NodeID {
	return p.parseBinaryLevel(config.PrecRelational, p.parseShift, typesystem.OpRelational)
}

func (p *Parser) parseShift() ast.NodeID {
	return p.parseBinaryLevel(config.PrecShift, p.parseAdditive, typesystem.OpShift)
}

func (p *Parser) parseAdditive() ast.NodeID {
	return p.parseBinaryLevel(config.PrecAdditive, p.parseMultiplicative, typesystem.OpArithmetic)
}

func (p *Parser) parseMultiplicative() ast.NodeID {
	return p.parseBinaryLevel(config.PrecMultiplicative, p.parseCast, typesystem.OpArithmetic)
}

// parseBinaryLevel is the shared shape of every binary precedence rung: it
// builds a left-leaning subtree as it consumes operators at `level`,
// refusing a second operator when the level is marked non-chainable
// (spec.md §4.5 relational/shift, §8 "Precedence").
func (p *Parser) parseBinaryLevel(level config.PrecLevel, next func() ast.NodeID, op typesystem.Op) ast.NodeID {
	left := next()
	if p.ctx.Arena.IsError(left) {
		return left
	}
	ops, chainable := config.OpsAtLevel(level)
	count := 0
	for ops[p.cur().Type] {
		if count > 0 && !chainable {
			opTok := p.cur()
			p.reportAt(diagnostics.ErrNonChainableOp, opTok, string(opTok.Type))
			return p.errNode()
		}
		opTok := p.cur()
		p.advance()
		right := next()
		if p.ctx.Arena.IsError(right) {
			return right
		}
		node := p.ctx.Arena.New(ast.KindBinaryExpr, opTok)
		n := p.ctx.Arena.Get(node)
		n.Left, n.Right, n.Operator = left, right, opTok.Type

		lt := p.ctx.Arena.Get(left).InferredType
		rt := p.ctx.Arena.Get(right).InferredType
		if lt != nil && rt != nil {
			if res, ok := typesystem.DetermineCompatibilityAndCoerce(lt, rt, op); ok {
				n.InferredType = res.Result
			} else {
				p.reportAt(diagnostics.ErrIncompatibleTypes, opTok, fmt.Sprintf("%s %s %s", lt, opTok.Type, rt))
			}
		}
		left = node
		count++
	}
	return left
}

// parseCast is level 11: `(type-specifier)unary-expression`, or a
// passthrough to unary when the parenthesized form does not name a type
// (spec.md §4.5).
func (p *Parser) parseCast() ast.NodeID {
	if p.curIs(token.LPAREN) && p.isCastAhead() {
		lp := p.cur()
		p.advance()
		typeSpec := p.parseTypeSpecifier()
		if _, ok := p.expect(token.RPAREN, ")"); !ok {
			return p.errNode()
		}
		operand := p.parseUnary()
		if p.ctx.Arena.IsError(operand) {
			return operand
		}
		node := p.ctx.Arena.New(ast.KindCastExpr, lp)
		n := p.ctx.Arena.Get(node)
		n.Operand = operand
		n.DeclType = typeSpec
		n.InferredType = p.ctx.Arena.Get(typeSpec).ResolvedType
		return node
	}
	return p.parseUnary()
}

// parseUnary is level 12: `& * + - ~ ! ++ --` prefix operators and
// `typesize(type-specifier)`.
func (p *Parser) parseUnary() ast.NodeID {
	if p.curIs(token.TYPESIZE) {
		tok := p.cur()
		p.advance()
		if _, ok := p.expect(token.LPAREN, "("); !ok {
			return p.errNode()
		}
		typeSpec := p.parseTypeSpecifier()
		if _, ok := p.expect(token.RPAREN, ")"); !ok {
			return p.errNode()
		}
		node := p.ctx.Arena.New(ast.KindUnaryExpr, tok)
		n := p.ctx.Arena.Get(node)
		n.Operator = token.TYPESIZE
		n.Operand = typeSpec
		if sizeType, ok := p.ctx.Tables.ResolveType("u_int64"); ok {
			n.InferredType = sizeType
		}
		return node
	}

	if config.UnaryOperators[p.cur().Type] {
		tok := p.cur()
		p.advance()
		operand := p.parseUnary()
		if p.ctx.Arena.IsError(operand) {
			return operand
		}
		node := p.ctx.Arena.New(ast.KindUnaryExpr, tok)
		n := p.ctx.Arena.Get(node)
		n.Operator = tok.Type
		n.Operand = operand

		operandType := p.ctx.Arena.Get(operand).InferredType
		switch tok.Type {
		case token.STAR:
			if operandType != nil {
				if deal := typesystem.Dealias(operandType); deal != nil && deal.Kind == typesystem.KindPointer {
					n.InferredType = deal.PointsTo
				}
			}
		case token.AMP:
			if operandType != nil {
				n.InferredType = p.ctx.Types.CreatePointer(operandType)
			}
		default:
			n.InferredType = operandType
		}
		return node
	}

	return p.parsePostfix()
}

// parsePostfix is level 13: chained `[expr]`, `:ident`, `=>ident`
// accessors, terminated by a single trailing `++`/`--` (spec.md §4.5).
func (p *Parser) parsePostfix() ast.NodeID {
	node := p.parsePrimary()
	if p.ctx.Arena.IsError(node) {
		return node
	}

	for {
		switch {
		case p.curIs(token.LBRACKET):
			lb := p.cur()
			p.advance()
			idx := p.parseConditional()
			if _, ok := p.expect(token.RBRACKET, "]"); !ok {
				return p.errNode()
			}
			acc := p.ctx.Arena.New(ast.KindArrayAccessor, lb)
			an := p.ctx.Arena.Get(acc)
			an.Base, an.Index = node, idx
			if baseType := p.ctx.Arena.Get(node).InferredType; baseType != nil {
				if deal := typesystem.Dealias(baseType); deal != nil && deal.Kind == typesystem.KindArray {
					an.InferredType = deal.ElementType
				}
			}
			node = acc

		case p.curIs(token.COLON):
			colon := p.cur()
			p.advance()
			memberTok, ok := p.expect(token.IDENT, "member name")
			if !ok {
				return p.errNode()
			}
			acc := p.ctx.Arena.New(ast.KindStructAccessor, colon)
			an := p.ctx.Arena.Get(acc)
			an.Base, an.Member = node, memberTok.Lexeme
			an.InferredType = p.resolveMemberType(node, memberTok, false)
			node = acc

		case p.curIs(token.DOUBLE_ARROW):
			arrow := p.cur()
			p.advance()
			memberTok, ok := p.expect(token.IDENT, "member name")
			if !ok {
				return p.errNode()
			}
			acc := p.ctx.Arena.New(ast.KindStructAccessor, arrow)
			an := p.ctx.Arena.Get(acc)
			an.Base, an.Member, an.IsPointerAccess = node, memberTok.Lexeme, true
			an.InferredType = p.resolveMemberType(node, memberTok, true)
			node = acc

		case p.curIs(token.INC), p.curIs(token.DEC):
			opTok := p.cur()
			p.advance()
			pf := p.ctx.Arena.New(ast.KindPostfixExpr, opTok)
			pn := p.ctx.Arena.Get(pf)
			pn.Operand = node
			pn.Operator = opTok.Type
			pn.InferredType = p.ctx.Arena.Get(node).InferredType
			return pf

		default:
			return node
		}
	}
}

// resolveMemberType looks up a struct/union member's type through base's
// inferred type, dereferencing one level first when deref is set (the
// `=>` operator, spec.md §4.4 "pointer-member access dereferences one
// level first").
func (p *Parser) resolveMemberType(base ast.NodeID, memberTok token.Token, deref bool) *typesystem.Type {
	baseType := p.ctx.Arena.Get(base).InferredType
	if baseType == nil {
		return nil
	}
	t := typesystem.Dealias(baseType)
	if deref {
		if t == nil || t.Kind != typesystem.KindPointer {
			p.reportAt(diagnostics.ErrIncompatibleTypes, memberTok, "=> requires a pointer operand")
			return nil
		}
		t = typesystem.Dealias(t.PointsTo)
	}
	if t == nil || (t.Kind != typesystem.KindStruct && t.Kind != typesystem.KindUnion) {
		p.reportAt(diagnostics.ErrIncompatibleTypes, memberTok, "member access on a non-struct/union type")
		return nil
	}
	for _, m := range t.Members {
		if m.Name == memberTok.Lexeme {
			return m.Type
		}
	}
	p.reportAt(diagnostics.ErrIncompatibleTypes, memberTok, fmt.Sprintf("no member '%s'", memberTok.Lexeme))
	return nil
}

// parsePrimary is level 14: identifiers, constants, parenthesized
// expressions, and `@ident(args)` function calls.
func (p *Parser) parsePrimary() ast.NodeID {
	switch p.cur().Type {
	case token.IDENT:
		tok := p.cur()
		p.advance()
		v, ok := p.ctx.Tables.Variables.LookupAnyScope(tok.Lexeme)
		if !ok {
			p.reportAt(diagnostics.ErrUndefinedIdent, tok, tok.Lexeme)
			return p.ctx.Arena.NewError(tok, "undefined identifier")
		}
		node := p.ctx.Arena.New(ast.KindIdentifier, tok)
		n := p.ctx.Arena.Get(node)
		n.Name = tok.Lexeme
		n.InferredType = v.Type
		return node

	case token.AT:
		return p.parseFunctionCall()

	case token.INT_CONST, token.FLOAT_CONST, token.CHAR_CONST, token.STR_CONST:
		return p.parseConstant()

	case token.LPAREN:
		p.advance()
		inner := p.parseConditional()
		if _, ok := p.expect(token.RPAREN, ")"); !ok {
			return p.errNode()
		}
		return inner

	default:
		p.reportUnexpected("expression")
		return p.errNode()
	}
}

func (p *Parser) parseConstant() ast.NodeID {
	tok := p.cur()
	p.advance()
	node := p.ctx.Arena.New(ast.KindConstant, tok)
	n := p.ctx.Arena.Get(node)
	n.ConstKind = tok.Type

	switch tok.Type {
	case token.INT_CONST:
		n.IntValue = tok.Constants.I64
		if ty, ok := p.ctx.Tables.ResolveType("s_int32"); ok {
			n.InferredType = ty
		}
	case token.FLOAT_CONST:
		n.FloatValue = tok.Constants.F64
		if ty, ok := p.ctx.Tables.ResolveType("double"); ok {
			n.InferredType = ty
		}
	case token.CHAR_CONST:
		n.IntValue = int64(tok.Constants.Ch)
		if ty, ok := p.ctx.Tables.ResolveType("char"); ok {
			n.InferredType = ty
		}
	case token.STR_CONST:
		n.StrValue = tok.Constants.Str
		if charTy, ok := p.ctx.Tables.ResolveType("char"); ok {
			n.InferredType = p.ctx.Types.CreatePointer(charTy)
		}
	}
	return node
}

// parseFunctionCall parses `@ident(args)`: the callee must already be a
// defined function, and argument count must match its declared arity
// (spec.md §4.5 "function-call targets must be defined functions with
// arity matching the argument count").
func (p *Parser) parseFunctionCall() ast.NodeID {
	atTok := p.cur()
	p.advance()
	nameTok, ok := p.expect(token.IDENT, "function name")
	if !ok {
		return p.errNode()
	}
	fn, found := p.ctx.Tables.Functions.Lookup(nameTok.Lexeme)
	if !found {
		p.reportAt(diagnostics.ErrUndefinedFunction, nameTok, nameTok.Lexeme)
		return p.ctx.Arena.NewError(nameTok, "undefined function")
	}
	if _, ok := p.expect(token.LPAREN, "("); !ok {
		return p.errNode()
	}

	var args []ast.NodeID
	if !p.curIs(token.RPAREN) {
		for {
			args = append(args, p.parseConditional())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expect(token.RPAREN, ")"); !ok {
		return p.errNode()
	}

	node := p.ctx.Arena.New(ast.KindFunctionCall, atTok)
	n := p.ctx.Arena.Get(node)
	n.Name = nameTok.Lexeme
	n.Args = args
	n.InferredType = fn.ReturnType

	if len(args) != len(fn.Parameters) {
		p.reportAt(diagnostics.ErrArityMismatch, nameTok, nameTok.Lexeme, len(fn.Parameters), len(args))
	}
	return node
}
