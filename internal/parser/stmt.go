package parser

import (
	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/cfg"
	"github.com/funvibe/ollie-front/internal/config"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/symbols"
	"github.com/funvibe/ollie-front/internal/token"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// addStmt appends root to the block the ambient context is currently
// writing into (spec.md §4.6 "add_statement").
func (p *Parser) addStmt(root ast.NodeID) {
	if b := p.ctx.CFG.Block(p.ctx.CurrentBlock); b != nil {
		b.AddStatement(cfg.TopLevelStmt{Root: root})
	}
}

// parseCompoundStatement parses `{ ... }`. It does not allocate its own
// entry block: callers (function bodies, if/while/for/switch branches)
// position ctx.CurrentBlock before calling, and the declaration forms
// (declare/let/alias/define/asn) accrete linearly into whatever block is
// current while complex statements open their own control-flow region
// (spec.md §4.5 "Compound statement").
func (p *Parser) parseCompoundStatement() cfg.BlockID {
	entry := p.ctx.CurrentBlock
	if _, ok := p.expect(token.LBRACE, "{"); !ok {
		return entry
	}
	closeScope := p.ctx.EnterBlockScope()
	for !p.curIs(token.RBRACE) && !p.curIs(token.DONE) {
		switch p.cur().Type {
		case token.DECLARE:
			p.addStmt(p.parseDeclareStatement())
		case token.LET:
			p.addStmt(p.parseLetStatement())
		case token.ALIAS:
			p.parseAliasStatement()
		case token.DEFINE:
			p.parseDefineStatement()
		case token.ASN:
			p.addStmt(p.parseAsnStatement())
		default:
			node, complex := p.parseStatementOrExpr()
			if !complex {
				p.addStmt(node)
			}
		}
	}
	p.expect(token.RBRACE, "}")
	closeScope()
	return entry
}

// parseStatementOrExpr dispatches on the leading token of a statement that
// is neither a declaration nor a definition (spec.md §4.5's statement
// table). The bool result tells the caller whether the statement already
// performed its own CFG bookkeeping (a complex statement) or still needs
// addStmt called on its result (everything else).
func (p *Parser) parseStatementOrExpr() (ast.NodeID, bool) {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseNestedBlockStatement(), true
	case token.LABEL_IDENT, token.CASE, token.DEFAULT:
		return p.parseLabeledStatement(), false
	case token.IF:
		return p.parseIfStatement(), true
	case token.SWITCH:
		return p.parseSwitchStatement(), true
	case token.WHILE:
		return p.parseWhileStatement(), true
	case token.DO:
		return p.parseDoWhileStatement(), true
	case token.FOR:
		return p.parseForStatement(), true
	case token.JUMP, token.BREAK, token.CONTINUE, token.RET:
		return p.parseBranchStatement(), false
	default:
		return p.parseExpressionStatement(), false
	}
}

// parseNestedBlockStatement handles a bare `{ ... }` appearing where a
// statement is expected: it is its own opaque control-flow region with no
// AST node of its own (spec.md §4.5 leading-token table, '{' row).
func (p *Parser) parseNestedBlockStatement() ast.NodeID {
	prev := p.ctx.CurrentBlock
	entry := p.ctx.CFG.AllocateBlock()
	entry.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, entry.ID, cfg.Bidirectional)

	p.ctx.CurrentBlock = entry.ID
	p.parseCompoundStatement()

	next := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, next.ID, cfg.Unidirectional)
	p.ctx.CurrentBlock = next.ID
	return ast.InvalidNode
}

// parseExpressionStatement parses a bare expression used as a statement
// (e.g. a function call for its side effects), terminated by ';'.
func (p *Parser) parseExpressionStatement() ast.NodeID {
	node := p.parseConditional()
	p.skipSemicolon()
	return node
}

// parseIfStatement parses `if ( expr ) then compound [else (compound |
// if-statement)]` (spec.md §4.5). The false branch links either straight to
// the merge block (no else) or through the else region; "else if" chains by
// recursing rather than looping.
func (p *Parser) parseIfStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	prev := p.ctx.CurrentBlock
	entry := p.ctx.CFG.AllocateBlock()
	entry.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, entry.ID, cfg.Bidirectional)

	node := p.ctx.Arena.New(ast.KindIfStmt, tok)
	p.ctx.CFG.Block(entry.ID).AddStatement(cfg.TopLevelStmt{Root: node})
	n := p.ctx.Arena.Get(node)

	if _, ok := p.expect(token.LPAREN, "("); !ok {
		p.ctx.CurrentBlock = entry.ID
		return node
	}
	n.Cond = p.parseConditional()
	p.expect(token.RPAREN, ")")
	p.expect(token.THEN, "then")

	p.ctx.CurrentBlock = entry.ID
	thenBlock := p.parseCompoundStatement()
	n.ThenBlock = string(thenBlock)
	thenExit := p.ctx.CurrentBlock

	hasElse := false
	var elseExit cfg.BlockID
	if p.curIs(token.ELSE) {
		hasElse = true
		p.advance()
		p.ctx.CurrentBlock = entry.ID
		if p.curIs(token.IF) {
			n.Else = p.parseIfStatement()
		} else {
			eb := p.parseCompoundStatement()
			n.ElseBlock = string(eb)
		}
		elseExit = p.ctx.CurrentBlock
	}

	merge := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(thenExit, merge.ID, cfg.Unidirectional)
	if hasElse {
		p.ctx.CFG.AddSuccessor(elseExit, merge.ID, cfg.Unidirectional)
	} else {
		p.ctx.CFG.AddSuccessor(entry.ID, merge.ID, cfg.Unidirectional)
	}
	p.ctx.CurrentBlock = merge.ID
	return node
}

// parseWhileStatement parses `while ( expr ) do compound` (spec.md §4.5): a
// header block carrying the condition, a body block with a back-edge to the
// header, and a loop-exit successor.
func (p *Parser) parseWhileStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	prev := p.ctx.CurrentBlock
	header := p.ctx.CFG.AllocateBlock()
	header.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, header.ID, cfg.Bidirectional)

	node := p.ctx.Arena.New(ast.KindWhileStmt, tok)
	p.ctx.CFG.Block(header.ID).AddStatement(cfg.TopLevelStmt{Root: node})
	n := p.ctx.Arena.Get(node)

	p.expect(token.LPAREN, "(")
	n.Cond = p.parseConditional()
	p.expect(token.RPAREN, ")")
	p.expect(token.DO, "do")

	bodyBlock := p.ctx.CFG.AllocateBlock()
	bodyBlock.IsLeader = true
	p.ctx.CFG.AddSuccessor(header.ID, bodyBlock.ID, cfg.Bidirectional)

	p.ctx.CurrentBlock = bodyBlock.ID
	body := p.parseCompoundStatement()
	n.BodyBlockID = string(body)

	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, header.ID, cfg.Unidirectional)

	next := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(header.ID, next.ID, cfg.Unidirectional)
	p.ctx.CurrentBlock = next.ID
	return node
}

// parseDoWhileStatement parses `do compound while ( expr ) ;` (spec.md
// §4.5): the body runs at least once before the condition is tested.
func (p *Parser) parseDoWhileStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	prev := p.ctx.CurrentBlock
	body := p.ctx.CFG.AllocateBlock()
	body.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, body.ID, cfg.Bidirectional)

	node := p.ctx.Arena.New(ast.KindDoWhileStmt, tok)
	p.ctx.CFG.Block(body.ID).AddStatement(cfg.TopLevelStmt{Root: node})
	n := p.ctx.Arena.Get(node)

	p.ctx.CurrentBlock = body.ID
	bodyBlock := p.parseCompoundStatement()
	n.BodyBlockID = string(bodyBlock)

	p.expect(token.WHILE, "while")
	p.expect(token.LPAREN, "(")
	n.Cond = p.parseConditional()
	p.expect(token.RPAREN, ")")
	p.skipSemicolon()

	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, body.ID, cfg.Unidirectional)

	next := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, next.ID, cfg.Unidirectional)
	p.ctx.CurrentBlock = next.ID
	return node
}

// parseForInit parses the for-header's first clause: empty, a let, or a
// bare `lvalue := expr` assignment, each consuming its own trailing ';'.
func (p *Parser) parseForInit() ast.NodeID {
	if p.curIs(token.SEMI) {
		p.advance()
		return ast.InvalidNode
	}
	if p.curIs(token.LET) {
		return p.parseLetStatement()
	}
	lvalue := p.parsePostfix()
	assignTok, ok := p.expect(token.ASSIGN, ":=")
	if !ok {
		return p.errNode()
	}
	rhs := p.parseConditional()
	node := p.ctx.Arena.New(ast.KindAssignmentExpr, assignTok)
	n := p.ctx.Arena.Get(node)
	n.Left, n.Right, n.Operator = lvalue, rhs, token.ASSIGN
	p.skipSemicolon()
	return node
}

// parseForStatement parses `for ( init ; cond ; step ) do compound`
// (spec.md §4.5, §8 "Control-flow shape"): a variable scope wraps the
// header, an entry block holds init, a header block holds cond/step, and
// the body block carries a back-edge to the header.
func (p *Parser) parseForStatement() ast.NodeID {
	tok := p.cur()
	p.advance()

	closeScope := p.ctx.EnterBlockScope()
	defer closeScope()

	p.expect(token.LPAREN, "(")

	prev := p.ctx.CurrentBlock
	entry := p.ctx.CFG.AllocateBlock()
	entry.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, entry.ID, cfg.Bidirectional)

	node := p.ctx.Arena.New(ast.KindForStmt, tok)
	p.ctx.CFG.Block(entry.ID).AddStatement(cfg.TopLevelStmt{Root: node})
	n := p.ctx.Arena.Get(node)

	p.ctx.CurrentBlock = entry.ID
	n.Init = p.parseForInit()

	if !p.curIs(token.SEMI) {
		n.Cond = p.parseConditional()
	}
	p.expect(token.SEMI, ";")

	if !p.curIs(token.RPAREN) {
		n.Step = p.parseConditional()
	}
	p.expect(token.RPAREN, ")")
	p.expect(token.DO, "do")

	header := p.ctx.CFG.AllocateBlock()
	header.IsLeader = true
	p.ctx.CFG.AddSuccessor(entry.ID, header.ID, cfg.Bidirectional)
	p.ctx.CFG.Block(header.ID).AddStatement(cfg.TopLevelStmt{Root: node})
	n.HeaderBlockID = string(header.ID)

	bodyBlock := p.ctx.CFG.AllocateBlock()
	bodyBlock.IsLeader = true
	p.ctx.CFG.AddSuccessor(header.ID, bodyBlock.ID, cfg.Bidirectional)

	p.ctx.CurrentBlock = bodyBlock.ID
	body := p.parseCompoundStatement()
	n.BodyBlockID = string(body)

	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, header.ID, cfg.Unidirectional)

	next := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(header.ID, next.ID, cfg.Unidirectional)
	p.ctx.CurrentBlock = next.ID
	return node
}

// parseSwitchStatement parses `switch on ( expr ) { ... }` (spec.md §4.5).
// A REDESIGN FLAG resolves an ambiguity in the source grammar: a statement
// appearing before any case/default label is rejected rather than silently
// accepted, since its reachability would otherwise be undefined.
func (p *Parser) parseSwitchStatement() ast.NodeID {
	tok := p.cur()
	p.advance()
	p.expect(token.ON, "on")
	p.expect(token.LPAREN, "(")
	cond := p.parseConditional()
	p.expect(token.RPAREN, ")")

	prev := p.ctx.CurrentBlock
	entry := p.ctx.CFG.AllocateBlock()
	entry.IsLeader = true
	p.ctx.CFG.AddSuccessor(prev, entry.ID, cfg.Bidirectional)

	node := p.ctx.Arena.New(ast.KindSwitchStmt, tok)
	n := p.ctx.Arena.Get(node)
	n.Cond = cond
	p.ctx.CFG.Block(entry.ID).AddStatement(cfg.TopLevelStmt{Root: node})

	closeScope := p.ctx.EnterBlockScope()
	defer closeScope()
	p.expect(token.LBRACE, "{")
	p.ctx.CurrentBlock = entry.ID

	seenLabel := false
	for !p.curIs(token.RBRACE) && !p.curIs(token.DONE) {
		switch p.cur().Type {
		case token.CASE, token.DEFAULT:
			seenLabel = true
			label := p.parseLabeledStatement()
			p.addStmt(label)
			n.Cases = append(n.Cases, label)
		default:
			if !seenLabel {
				p.reportUnexpected("case or default")
				p.advance()
				continue
			}
			stmt, complex := p.parseStatementOrExpr()
			if !complex {
				p.addStmt(stmt)
			}
			n.Cases = append(n.Cases, stmt)
		}
	}
	if !seenLabel {
		p.reportUnexpected("case or default")
	}
	p.expect(token.RBRACE, "}")

	next := p.ctx.CFG.AllocateBlock()
	p.ctx.CFG.AddSuccessor(p.ctx.CurrentBlock, next.ID, cfg.Unidirectional)
	p.ctx.CurrentBlock = next.ID
	return node
}

// parseLabeledStatement parses `label-ident :`, `case <constant> :`, or
// `default :` (spec.md §4.5). A label identifier registers as a variable of
// type "label" so jump targets can be validated against the same
// cross-table uniqueness rule as any other declaration.
func (p *Parser) parseLabeledStatement() ast.NodeID {
	switch p.cur().Type {
	case token.LABEL_IDENT:
		tok := p.cur()
		p.advance()
		if !p.checkAndReportRedefinition(tok) {
			labelType, _ := p.ctx.Tables.ResolveType(config.LabelTypeName)
			p.ctx.Tables.Variables.Insert(symbols.Variable{
				Name: tok.Lexeme, Type: labelType, DeclKind: symbols.DeclDeclare, Line: tok.Line,
			})
		}
		p.expect(token.COLON, ":")
		node := p.ctx.Arena.New(ast.KindLabelStmt, tok)
		p.ctx.Arena.Get(node).Name = tok.Lexeme
		return node

	case token.CASE:
		tok := p.cur()
		p.advance()
		value := p.parseConstant()
		p.expect(token.COLON, ":")
		node := p.ctx.Arena.New(ast.KindCaseStmt, tok)
		p.ctx.Arena.Get(node).CaseValue = value
		return node

	default: // token.DEFAULT
		tok := p.cur()
		p.advance()
		p.expect(token.COLON, ":")
		return p.ctx.Arena.New(ast.KindDefaultStmt, tok)
	}
}

// parseBranchStatement parses `jump $label;`, `break [when (expr)];`,
// `continue [when (expr)];`, and `ret [expr];` (spec.md §4.5).
func (p *Parser) parseBranchStatement() ast.NodeID {
	switch p.cur().Type {
	case token.JUMP:
		tok := p.cur()
		p.advance()
		labelTok, ok := p.expect(token.LABEL_IDENT, "label")
		if !ok {
			p.skipSemicolon()
			return p.errNode()
		}
		if _, found := p.ctx.Tables.Variables.LookupAnyScope(labelTok.Lexeme); !found {
			p.reportAt(diagnostics.ErrUndeclaredLabel, labelTok, labelTok.Lexeme)
		}
		node := p.ctx.Arena.New(ast.KindJumpStmt, tok)
		p.ctx.Arena.Get(node).Name = labelTok.Lexeme
		p.skipSemicolon()
		return node

	case token.BREAK, token.CONTINUE:
		tok := p.cur()
		p.advance()
		kind := ast.KindBreakStmt
		if tok.Type == token.CONTINUE {
			kind = ast.KindContinueStmt
		}
		node := p.ctx.Arena.New(kind, tok)
		if p.curIs(token.WHEN) {
			p.advance()
			p.expect(token.LPAREN, "(")
			guard := p.parseConditional()
			p.expect(token.RPAREN, ")")
			p.ctx.Arena.Get(node).WhenGuard = guard
		}
		p.skipSemicolon()
		return node

	default: // token.RET
		tok := p.cur()
		p.advance()
		node := p.ctx.Arena.New(ast.KindReturnStmt, tok)
		if !p.curIs(token.SEMI) {
			value := p.parseConditional()
			p.ctx.Arena.Get(node).Value = value
			p.checkReturnCompatibility(tok, value)
		}
		p.skipSemicolon()
		return node
	}
}

// checkReturnCompatibility validates a `ret expr;`'s value against the
// enclosing function's declared return type (spec.md §4.4).
func (p *Parser) checkReturnCompatibility(tok token.Token, value ast.NodeID) {
	fn, ok := p.ctx.Tables.Functions.Lookup(p.ctx.CurrentFunction)
	if !ok || fn.ReturnType == nil {
		return
	}
	valType := p.ctx.Arena.Get(value).InferredType
	if valType == nil {
		return
	}
	if typesystem.TypesAssignable(fn.ReturnType, valType) == nil {
		p.reportAt(diagnostics.ErrIncompatibleTypes, tok, "return value does not match the function's declared return type")
	}
}
