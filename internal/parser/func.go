package parser

import (
	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/cfg"
	"github.com/funvibe/ollie-front/internal/config"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/symbols"
	"github.com/funvibe/ollie-front/internal/token"
)

// parseFunctionDefinition parses `func [: storage-class] <ident> (
// parameter-list ) -> <type-specifier> compound-statement` (spec.md §4.5).
// The function record is inserted before the body is parsed so a recursive
// call inside the body resolves against its own signature; a function
// named "main" sets Diagnostics.FoundMainFunction.
func (p *Parser) parseFunctionDefinition() ast.NodeID {
	tok := p.cur()
	p.advance()

	storage := config.Normal
	if p.curIs(token.COLON) {
		p.advance()
		storage = p.parseStorageClass()
	}

	nameTok, ok := p.expect(token.IDENT, "function name")
	if !ok {
		return p.errNode()
	}
	redefined := p.checkAndReportRedefinition(nameTok)

	if _, ok := p.expect(token.LPAREN, "("); !ok {
		return p.errNode()
	}

	closeParamScope := p.ctx.EnterFunction(nameTok.Lexeme)

	var params []symbols.Variable
	var paramNodes []ast.NodeID
	if !p.curIs(token.RPAREN) {
		for {
			if len(params) >= config.MaxFunctionArity {
				p.reportAt(diagnostics.ErrArityOverCap, p.cur(), nameTok.Lexeme, len(params)+1)
			}
			pTypeSpec := p.parseTypeSpecifier()
			pNameTok, ok := p.expect(token.IDENT, "parameter name")
			if !ok {
				break
			}
			param := symbols.Variable{
				Name:                pNameTok.Lexeme,
				Storage:             config.Normal,
				Type:                p.ctx.Arena.Get(pTypeSpec).ResolvedType,
				IsFunctionParameter: true,
				Initialized:         true,
				DeclKind:            symbols.DeclDeclare,
				OwningFunction:      nameTok.Lexeme,
				Line:                pNameTok.Line,
			}
			p.ctx.Tables.Variables.Insert(param)
			params = append(params, param)

			pNode := p.ctx.Arena.New(ast.KindParameterDecl, pNameTok)
			pn := p.ctx.Arena.Get(pNode)
			pn.Name, pn.DeclType = pNameTok.Lexeme, pTypeSpec
			paramNodes = append(paramNodes, pNode)

			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN, ")")
	p.expect(token.ARROW, "->")

	returnTypeSpec := p.parseTypeSpecifier()
	returnType := p.ctx.Arena.Get(returnTypeSpec).ResolvedType

	fn := symbols.Function{
		Name:       nameTok.Lexeme,
		Storage:    storage,
		ReturnType: returnType,
		Parameters: params,
		Line:       nameTok.Line,
	}
	if !redefined {
		p.ctx.Tables.Functions.Insert(fn)
	}

	prev := p.ctx.CurrentBlock
	entry := p.ctx.CFG.AllocateBlock()
	entry.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, entry.ID, cfg.Bidirectional)
	p.ctx.CurrentBlock = entry.ID

	body := p.parseCompoundStatement()
	fn.EntranceBlock = body
	fn.Defined = true
	if !redefined {
		p.ctx.Tables.Functions.Update(fn)
	}

	closeParamScope()
	p.ctx.CurrentBlock = prev

	if nameTok.Lexeme == "main" {
		p.ctx.Diagnostics.FoundMainFunction = true
	}

	node := p.ctx.Arena.New(ast.KindDeclStmt, tok)
	n := p.ctx.Arena.Get(node)
	n.Name = nameTok.Lexeme
	n.DeclType = returnTypeSpec
	p.ctx.Arena.Chain(node, paramNodes)
	return node
}

// parseProgram is the grammar's start symbol (spec.md §4.5 "Program"): a
// loop over top-level `func`/`declare`/`let`/`asn`/`define`/`alias`
// partitions until DONE. The first allocated block is ctx.CFG.Root
// (pipeline.New already allocated it as the entry block before the parser
// ever runs); declare/let/asn accrete into it linearly, func emits
// function records that sit outside that linear chain, and define/alias
// are pure table mutations.
func (p *Parser) parseProgram() {
	for !p.curIs(token.DONE) {
		switch p.cur().Type {
		case token.FUNC:
			p.parseFunctionDefinition()
		case token.DECLARE:
			p.addStmt(p.parseDeclareStatement())
		case token.LET:
			p.addStmt(p.parseLetStatement())
		case token.ASN:
			p.addStmt(p.parseAsnStatement())
		case token.DEFINE:
			p.parseDefineStatement()
		case token.ALIAS:
			p.parseAliasStatement()
		default:
			p.reportUnexpected("func, declare, let, asn, define, or alias")
			p.advance()
		}
	}
}
