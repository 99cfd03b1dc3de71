package parser

import (
	"fmt"

	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/config"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/symbols"
	"github.com/funvibe/ollie-front/internal/token"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// parseStorageClass consumes an optional storage-class keyword, defaulting
// to NORMAL (spec.md §3 "storage class").
func (p *Parser) parseStorageClass() config.StorageClass {
	switch p.cur().Type {
	case token.STATIC:
		p.advance()
		return config.Static
	case token.REGISTER:
		p.advance()
		return config.Register
	case token.EXTERNAL:
		p.advance()
		return config.ExternalStorage
	default:
		return config.Normal
	}
}

// checkAndReportRedefinition applies the cross-table uniqueness rule
// (spec.md §4.3, §8 "Name uniqueness") and reports a redefinition
// diagnostic citing the original line if the name already exists.
func (p *Parser) checkAndReportRedefinition(tok token.Token) bool {
	if collision, bad := p.ctx.Tables.CheckDeclaration(tok.Lexeme); bad {
		p.reportAt(diagnostics.ErrRedefinition, tok, tok.Lexeme, collision.Line)
		return true
	}
	return false
}

// parseDeclareStatement parses `declare [const] [storage-class] <type>
// <ident>;` (spec.md §4.5 "Declarations").
func (p *Parser) parseDeclareStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	isConst := false
	if p.curIs(token.CONST) {
		isConst = true
		p.advance()
	}
	storage := p.parseStorageClass()

	typeSpec := p.parseTypeSpecifier()
	if p.ctx.Arena.IsError(typeSpec) {
		p.skipSemicolon()
		return typeSpec
	}
	nameTok, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return p.errNode()
	}

	if p.checkAndReportRedefinition(nameTok) {
		p.skipSemicolon()
		return p.ctx.Arena.NewError(nameTok, "redefinition")
	}
	p.ctx.Tables.Variables.Insert(symbols.Variable{
		Name:           nameTok.Lexeme,
		Storage:        storage,
		Type:           p.ctx.Arena.Get(typeSpec).ResolvedType,
		IsConstant:     isConst,
		DeclKind:       symbols.DeclDeclare,
		OwningFunction: p.ctx.CurrentFunction,
		Line:           nameTok.Line,
	})
	p.skipSemicolon()

	node := p.ctx.Arena.New(ast.KindDeclStmt, tok)
	n := p.ctx.Arena.Get(node)
	n.Name = nameTok.Lexeme
	n.DeclType = typeSpec
	return node
}

// parseLetStatement parses `let [const] [storage-class] <type> <ident> :=
// <expression>;` (spec.md §4.5 "Declarations").
func (p *Parser) parseLetStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	isConst := false
	if p.curIs(token.CONST) {
		isConst = true
		p.advance()
	}
	storage := p.parseStorageClass()

	typeSpec := p.parseTypeSpecifier()
	if p.ctx.Arena.IsError(typeSpec) {
		p.skipSemicolon()
		return typeSpec
	}
	nameTok, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return p.errNode()
	}
	if p.checkAndReportRedefinition(nameTok) {
		p.skipSemicolon()
		return p.ctx.Arena.NewError(nameTok, "redefinition")
	}

	assignTok, ok := p.expect(token.ASSIGN, ":=")
	if !ok {
		return p.errNode()
	}
	initExpr := p.parseConditional()

	declType := p.ctx.Arena.Get(typeSpec).ResolvedType
	if initType := p.ctx.Arena.Get(initExpr).InferredType; initType != nil && declType != nil {
		if typesystem.TypesAssignable(declType, initType) == nil {
			p.reportAt(diagnostics.ErrIncompatibleTypes, assignTok, fmt.Sprintf("cannot assign %s to %s", initType, declType))
		}
	}
	p.ctx.Tables.Variables.Insert(symbols.Variable{
		Name:           nameTok.Lexeme,
		Storage:        storage,
		Type:           declType,
		IsConstant:     isConst,
		Initialized:    true,
		DeclKind:       symbols.DeclLet,
		OwningFunction: p.ctx.CurrentFunction,
		Line:           nameTok.Line,
	})
	p.skipSemicolon()

	node := p.ctx.Arena.New(ast.KindLetStmt, tok)
	n := p.ctx.Arena.Get(node)
	n.Name = nameTok.Lexeme
	n.DeclType = typeSpec
	n.InitValue = initExpr
	return node
}

// parseAsnStatement parses `asn <lvalue> := <expression>;`, the compound
// statement's in-block assignment form (spec.md §4.5 compound-statement
// member list).
func (p *Parser) parseAsnStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	lvalue := p.parsePostfix()
	if p.ctx.Arena.IsError(lvalue) {
		p.skipSemicolon()
		return lvalue
	}
	assignTok, ok := p.expect(token.ASSIGN, ":=")
	if !ok {
		return p.errNode()
	}
	rhs := p.parseConditional()

	node := p.ctx.Arena.New(ast.KindAssignmentExpr, assignTok)
	n := p.ctx.Arena.Get(node)
	n.Left, n.Right, n.Operator = lvalue, rhs, token.ASSIGN

	lt := p.ctx.Arena.Get(lvalue).InferredType
	rt := p.ctx.Arena.Get(rhs).InferredType
	if lt != nil && rt != nil {
		if typesystem.TypesAssignable(lt, rt) == nil {
			p.reportAt(diagnostics.ErrIncompatibleTypes, assignTok, fmt.Sprintf("cannot assign %s to %s", rt, lt))
		} else {
			n.InferredType = lt
		}
	}
	p.skipSemicolon()
	return node
}

// parseDefineStatement dispatches `define struct ...` / `define enum ...`
// (spec.md §4.5). Both forms are pure symbol/type-table bookkeeping; the
// returned node is not added to any basic block.
func (p *Parser) parseDefineStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	switch p.cur().Type {
	case token.STRUCT:
		return p.parseDefineStruct(tok)
	case token.ENUM:
		return p.parseDefineEnum(tok)
	default:
		p.reportUnexpected("struct or enum")
		return p.errNode()
	}
}

// parseDefineStruct parses `struct <ident> { member-list } [as <ident>];`.
// The spec's keyword oscillates between "struct" and "construct"; the
// lexer maps both onto token.STRUCT, so no special-casing is needed here.
func (p *Parser) parseDefineStruct(defTok token.Token) ast.NodeID {
	p.advance() // 'struct'/'construct'
	nameTok, ok := p.expect(token.IDENT, "struct name")
	if !ok {
		return p.errNode()
	}
	ty := p.ctx.Types.CreateStruct(nameTok.Lexeme)

	if _, ok := p.expect(token.LBRACE, "{"); !ok {
		return p.errNode()
	}
	var members []ast.NodeID
	for !p.curIs(token.RBRACE) && !p.curIs(token.DONE) {
		memberType := p.parseTypeSpecifier()
		memberNameTok, ok := p.expect(token.IDENT, "member name")
		if !ok {
			break
		}
		typesystem.AddStructMember(ty, memberNameTok.Lexeme, p.ctx.Arena.Get(memberType).ResolvedType)

		memberNode := p.ctx.Arena.New(ast.KindStructMember, memberNameTok)
		mn := p.ctx.Arena.Get(memberNode)
		mn.Name = memberNameTok.Lexeme
		mn.DeclType = memberType
		members = append(members, memberNode)
		p.skipSemicolon()
	}
	p.expect(token.RBRACE, "}")

	finished := p.ctx.Types.FinishStruct(ty)
	if !p.checkAndReportRedefinition(nameTok) {
		p.ctx.Tables.Types.Insert(symbols.TypeRecord{Name: nameTok.Lexeme, Type: finished, Line: nameTok.Line})
	}
	p.parseOptionalAlias(finished)
	p.skipSemicolon()

	listNode := p.ctx.Arena.New(ast.KindStructMemberList, defTok)
	p.ctx.Arena.Chain(listNode, members)
	return listNode
}

// parseDefineEnum parses `enum <ident> { enum-member-list } [as <ident>];`.
// Enum members are backed by s_int32 (the spec does not give a syntax for
// choosing a different backing integer type).
func (p *Parser) parseDefineEnum(defTok token.Token) ast.NodeID {
	p.advance() // 'enum'
	nameTok, ok := p.expect(token.IDENT, "enum name")
	if !ok {
		return p.errNode()
	}
	integerType, _ := p.ctx.Tables.ResolveType("s_int32")
	ty := p.ctx.Types.CreateEnum(nameTok.Lexeme, integerType)

	if _, ok := p.expect(token.LBRACE, "{"); !ok {
		return p.errNode()
	}
	var members []ast.NodeID
	for !p.curIs(token.RBRACE) && !p.curIs(token.DONE) {
		memberTok, ok := p.expect(token.IDENT, "enum member")
		if !ok {
			break
		}
		typesystem.AddEnumMember(ty, memberTok.Lexeme)

		memberNode := p.ctx.Arena.New(ast.KindEnumMember, memberTok)
		p.ctx.Arena.Get(memberNode).Name = memberTok.Lexeme
		members = append(members, memberNode)

		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")

	finished := p.ctx.Types.FinishEnum(ty)
	if !p.checkAndReportRedefinition(nameTok) {
		p.ctx.Tables.Types.Insert(symbols.TypeRecord{Name: nameTok.Lexeme, Type: finished, Line: nameTok.Line})
	}
	p.parseOptionalAlias(finished)
	p.skipSemicolon()

	listNode := p.ctx.Arena.New(ast.KindEnumMemberList, defTok)
	p.ctx.Arena.Chain(listNode, members)
	return listNode
}

// parseOptionalAlias consumes a trailing `as <ident>` clause shared by
// both define forms, registering an alias of of in the type table.
func (p *Parser) parseOptionalAlias(of *typesystem.Type) {
	if !p.curIs(token.AS) {
		return
	}
	p.advance()
	aliasTok, ok := p.expect(token.IDENT, "alias name")
	if !ok {
		return
	}
	if p.checkAndReportRedefinition(aliasTok) {
		return
	}
	aliasType := p.ctx.Types.CreateAlias(aliasTok.Lexeme, of)
	p.ctx.Tables.Types.Insert(symbols.TypeRecord{Name: aliasTok.Lexeme, Type: aliasType, Line: aliasTok.Line})
}

// parseAliasStatement parses `alias <type-specifier> as <ident>;`, a pure
// type-table mutation (spec.md §4.5).
func (p *Parser) parseAliasStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	typeSpec := p.parseTypeSpecifier()
	if p.ctx.Arena.IsError(typeSpec) {
		p.skipSemicolon()
		return typeSpec
	}
	if _, ok := p.expect(token.AS, "as"); !ok {
		return p.errNode()
	}
	nameTok, ok := p.expect(token.IDENT, "alias name")
	if !ok {
		return p.errNode()
	}
	if p.checkAndReportRedefinition(nameTok) {
		p.skipSemicolon()
		return p.ctx.Arena.NewError(nameTok, "redefinition")
	}
	aliasType := p.ctx.Types.CreateAlias(nameTok.Lexeme, p.ctx.Arena.Get(typeSpec).ResolvedType)
	p.ctx.Tables.Types.Insert(symbols.TypeRecord{Name: nameTok.Lexeme, Type: aliasType, Line: nameTok.Line})
	p.skipSemicolon()

	return typeSpec
}
