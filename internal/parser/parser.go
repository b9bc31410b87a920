// Package parser implements a recursive-descent / Pratt parser that turns
// a token stream into the AST of core spec §4.1. It is a thin external
// collaborator per spec §1 ("the surface syntax and its grammar-driven
// parser... produces the AST described in §3") — implemented only deeply
// enough to drive the evaluator end to end, in the style of the teacher's
// own Pratt parser (internal/parser/parser.go): a precedence table plus
// prefix/infix dispatch for expressions, straight recursive descent for
// statements.
package parser

import (
	"strconv"

	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/lexer"
	"github.com/cwbudde/starlang/internal/token"
)

// Precedence levels, lowest to highest (teacher's naming convention).
const (
	_ int = iota
	LOWEST
	TERNARY
	LOGIC_OR
	LOGIC_AND
	BIT_OR
	BIT_AND
	EQUALS
	RELATIONAL
	SHIFT
	SUM
	PRODUCT
)

var precedences = map[token.Kind]int{
	token.QUESTION: TERNARY,
	token.KW_OR:    LOGIC_OR,
	token.KW_XOR:   LOGIC_OR,
	token.KW_AND:   LOGIC_AND,
	token.KW_BITOR: BIT_OR,
	token.KW_BITAND: BIT_AND,
	token.EQ:       EQUALS,
	token.NEQ:      EQUALS,
	token.LT:       RELATIONAL,
	token.GT:       RELATIONAL,
	token.LEQ:      RELATIONAL,
	token.GEQ:      RELATIONAL,
	token.SHL:      SHIFT,
	token.SHR:      SHIFT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
}

var binOps = map[token.Kind]ast.BinOp{
	token.KW_OR:     ast.OpOr,
	token.KW_XOR:    ast.OpXor,
	token.KW_AND:    ast.OpAnd,
	token.KW_BITOR:  ast.OpBitOr,
	token.KW_BITAND: ast.OpBitAnd,
	token.EQ:        ast.OpEq,
	token.NEQ:       ast.OpNeq,
	token.LT:        ast.OpLt,
	token.GT:        ast.OpGt,
	token.LEQ:       ast.OpLeq,
	token.GEQ:       ast.OpGeq,
	token.SHL:       ast.OpShl,
	token.SHR:       ast.OpShr,
	token.PLUS:      ast.OpAdd,
	token.MINUS:     ast.OpSub,
	token.STAR:      ast.OpMul,
	token.SLASH:     ast.OpDiv,
	token.PERCENT:   ast.OpMod,
}

// Parser consumes one file's token stream and produces one *ast.Program
// holding that file's top-level declarations and init/run lists. Callers
// combining multiple included files parse each independently and merge the
// resulting Programs with (*ast.Program).Merge.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token
}

// New creates a Parser reading from l, tagging diagnostics with file.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errorf("expected %s, got %q", what, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return diag.New(diag.ParseError, format, args...).At(p.cur.Pos)
}

// ParseFile parses the full contents of one file into a Program.
func ParseFile(file, text string) (*ast.Program, error) {
	p := New(file, lexer.New(file, text))
	return p.ParseProgram()
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		switch p.cur.Kind {
		case token.KW_COMPONENT:
			d, err := p.parseSchema(ast.TopComponent)
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, d)
		case token.KW_RESOURCE:
			d, err := p.parseSchema(ast.TopResource)
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, d)
		case token.KW_STRUCT:
			d, err := p.parseSchema(ast.TopStruct)
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, d)
		case token.KW_FN:
			d, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, d)
		case token.KW_SYSTEM:
			d, err := p.parseSystem()
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, d)
		case token.KW_INIT:
			names, err := p.parseNameList()
			if err != nil {
				return nil, err
			}
			prog.Init = append(prog.Init, names...)
		case token.KW_RUN:
			names, err := p.parseNameList()
			if err != nil {
				return nil, err
			}
			prog.Run = append(prog.Run, names...)
		default:
			return nil, p.errorf("unexpected token %q at top level", p.cur.Literal)
		}
	}
	return prog, nil
}

// parseNameList parses `init { a, b, c }` or `run { a, b }`.
func (p *Parser) parseNameList() ([]string, error) {
	p.next() // consume 'init'/'run'
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	var names []string
	for !p.curIs(token.RBRACE) {
		name, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		names = append(names, name.Literal)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	if p.curIs(token.SEMI) {
		p.next()
	}
	return names, nil
}

func (p *Parser) parseSchema(kind ast.TopKind) (*ast.TopLevel, error) {
	pos := p.cur.Pos
	p.next() // consume keyword
	name, err := p.expect(token.IDENT, "schema name")
	if err != nil {
		return nil, err
	}
	decl := ast.NewTopLevel(kind, name.Literal, pos)
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	for !p.curIs(token.RBRACE) {
		fname, err := p.expect(token.IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, ":"); err != nil {
			return nil, err
		}
		ftype, err := p.expect(token.IDENT, "field type")
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, ast.Field{Name: fname.Literal, Type: ftype.Literal})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseFunction() (*ast.TopLevel, error) {
	pos := p.cur.Pos
	p.next() // consume 'fn'
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	decl := ast.NewTopLevel(ast.TopFunction, name.Literal, pos)
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	for !p.curIs(token.RPAREN) {
		pname, err := p.expect(token.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, pname.Literal)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

func (p *Parser) parseSystem() (*ast.TopLevel, error) {
	pos := p.cur.Pos
	p.next() // consume 'system'
	name, err := p.expect(token.IDENT, "system name")
	if err != nil {
		return nil, err
	}
	decl := ast.NewTopLevel(ast.TopSystem, name.Literal, pos)
	filter, err := p.parseFilter()
	if err != nil {
		return nil, err
	}
	decl.Filter = filter
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

// parseFilter parses a system or query filter: `(E(Pos p, Vel v), Counter c)`.
// The first comma-separated item may be at most one entity-filter
// (`bindName(TypeName bindName, ...)`); every other item is a resource
// binding (`TypeName bindName`) (spec §3 "Systems").
func (p *Parser) parseFilter() (*ast.Filter, error) {
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	f := &ast.Filter{}
	for !p.curIs(token.RPAREN) {
		first, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		if p.curIs(token.LPAREN) {
			if f.Entity != nil {
				return nil, p.errorf("a filter may declare at most one entity-filter")
			}
			ef, err := p.parseEntityFilterArgs(first.Literal)
			if err != nil {
				return nil, err
			}
			f.Entity = ef
		} else {
			bind, err := p.expect(token.IDENT, "resource binding name")
			if err != nil {
				return nil, err
			}
			f.Resources = append(f.Resources, ast.ResourceBinding{TypeName: first.Literal, Bind: bind.Literal})
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseEntityFilterArgs(bind string) (*ast.EntityFilter, error) {
	ef := &ast.EntityFilter{Bind: bind}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	for !p.curIs(token.RPAREN) {
		typeName, err := p.expect(token.IDENT, "component type name")
		if err != nil {
			return nil, err
		}
		bindName, err := p.expect(token.IDENT, "component binding name")
		if err != nil {
			return nil, err
		}
		ef.Args = append(ef.Args, ast.ComponentArg{TypeName: typeName.Literal, Bind: bindName.Literal})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return ef, nil
}

// ---- Statements ----

func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := p.cur.Pos
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	block := ast.NewBlock(pos)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.KW_LET:
		return p.parseDecl(true)
	case token.KW_IF:
		return p.parseIf()
	case token.KW_FOR:
		return p.parseFor()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_QUERY:
		return p.parseQuery()
	case token.KW_SWITCH:
		return p.parseSwitch()
	case token.KW_BREAK:
		pos := p.cur.Pos
		p.next()
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		return ast.NewBreak(pos), nil
	case token.KW_CONTINUE:
		pos := p.cur.Pos
		p.next()
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		return ast.NewContinue(pos), nil
	case token.KW_RETURN:
		return p.parseReturn()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) consumeSemi() error {
	if p.curIs(token.SEMI) {
		p.next()
		return nil
	}
	return p.errorf("expected ';', got %q", p.cur.Literal)
}

func (p *Parser) parseDecl(consumeSemi bool) (*ast.Decl, error) {
	pos := p.cur.Pos
	p.next() // consume 'let'
	name, err := p.expect(token.IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.curIs(token.ASSIGN) {
		p.next()
		init, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	decl := ast.NewDecl(name.Literal, init, pos)
	if consumeSemi {
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	pos := p.cur.Pos
	p.next() // consume 'if'
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewIf(cond, then, nil, pos)
	if p.curIs(token.KW_ELSE) {
		p.next()
		if p.curIs(token.KW_IF) {
			nestedPos := p.cur.Pos
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = ast.NewBlock(nestedPos)
			stmt.Else.Stmts = []ast.Stmt{nested}
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

func (p *Parser) parseFor() (*ast.For, error) {
	pos := p.cur.Pos
	p.next() // consume 'for'
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var init ast.Stmt
	if !p.curIs(token.SEMI) {
		if p.curIs(token.KW_LET) {
			d, err := p.parseDecl(false)
			if err != nil {
				return nil, err
			}
			init = d
		} else {
			exprPos := p.cur.Pos
			expr, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			init = ast.NewExprStmt(expr, exprPos)
		}
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	var cond ast.Expr
	if !p.curIs(token.SEMI) {
		var err error
		cond, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	var incr ast.Expr
	if !p.curIs(token.RPAREN) {
		var err error
		incr, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(init, cond, incr, body, pos), nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	pos := p.cur.Pos
	p.next() // consume 'while'
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(cond, body, pos), nil
}

func (p *Parser) parseQuery() (*ast.Query, error) {
	pos := p.cur.Pos
	p.next() // consume 'query'
	filter, err := p.parseFilter()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewQuery(filter, body, pos), nil
}

func (p *Parser) parseSwitch() (*ast.Switch, error) {
	pos := p.cur.Pos
	p.next() // consume 'switch'
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	sw := ast.NewSwitch(subject, pos)
	for !p.curIs(token.RBRACE) {
		switch p.cur.Kind {
		case token.KW_CASE:
			p.next()
			atom, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, ":"); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, ast.SwitchCase{Value: atom, Body: body})
		case token.KW_DEFAULT:
			p.next()
			if _, err := p.expect(token.COLON, ":"); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Default = body
		default:
			return nil, p.errorf("expected 'case' or 'default', got %q", p.cur.Literal)
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return sw, nil
}

func (p *Parser) parseCaseBody() (*ast.Block, error) {
	pos := p.cur.Pos
	block := ast.NewBlock(pos)
	for !p.curIs(token.KW_CASE) && !p.curIs(token.KW_DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	pos := p.cur.Pos
	p.next() // consume 'return'
	var value ast.Expr
	if !p.curIs(token.SEMI) {
		var err error
		value, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return ast.NewReturn(value, pos), nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	pos := p.cur.Pos
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(expr, pos), nil
}

// ---- Expressions (Pratt parsing) ----

func (p *Parser) parseExpression(prec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		if p.curIs(token.ASSIGN) && prec == LOWEST {
			lv, ok := left.(*ast.LValue)
			if !ok {
				return nil, p.errorf("left side of '=' must be an assignable location")
			}
			pos := p.cur.Pos
			p.next()
			right, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			left = ast.NewAssign(lv, right, pos)
			continue
		}
		if p.curIs(token.QUESTION) && prec < TERNARY {
			pos := p.cur.Pos
			p.next()
			then, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, ":"); err != nil {
				return nil, err
			}
			els, err := p.parseExpression(TERNARY)
			if err != nil {
				return nil, err
			}
			left = ast.NewTernary(left, then, els, pos)
			continue
		}
		nextPrec, ok := precedences[p.cur.Kind]
		if !ok || prec >= nextPrec {
			break
		}
		op, ok := binOps[p.cur.Kind]
		if !ok {
			break
		}
		pos := p.cur.Pos
		p.next()
		right, err := p.parseExpression(nextPrec)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinExpr(op, left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.PLUS, token.MINUS, token.KW_NOT, token.TILDE:
		pos := p.cur.Pos
		var op ast.UnOp
		switch p.cur.Kind {
		case token.PLUS:
			op = ast.OpPos
		case token.MINUS:
			op = ast.OpNeg
		case token.KW_NOT:
			op = ast.OpNot
		case token.TILDE:
			op = ast.OpBitNot
		}
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnExpr(op, operand, pos), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression, then — when it's an
// identifier-rooted LValue — chains `[index]` and `.field` hops onto it
// (spec §4.1 "LValue": first-index-exprs, then a path of field/index hops).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	lv, ok := primary.(*ast.LValue)
	if !ok {
		return primary, nil
	}
	for p.curIs(token.LBRACKET) {
		p.next()
		idx, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "]"); err != nil {
			return nil, err
		}
		lv.FirstIndex = append(lv.FirstIndex, idx)
	}
	for p.curIs(token.DOT) {
		p.next()
		field, err := p.expect(token.IDENT, "field name")
		if err != nil {
			return nil, err
		}
		seg := ast.PathSegment{Field: field.Literal}
		for p.curIs(token.LBRACKET) {
			p.next()
			idx, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "]"); err != nil {
				return nil, err
			}
			seg.Index = append(seg.Index, idx)
		}
		lv.Path = append(lv.Path, seg)
	}
	return lv, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.INT:
		return p.parseAtom()
	case token.FLOAT:
		return p.parseAtom()
	case token.CHAR:
		return p.parseAtom()
	case token.STRING:
		return p.parseAtom()
	case token.KW_TRUE, token.KW_FALSE:
		return p.parseAtom()
	case token.KW_VOID:
		return p.parseAtom()
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACKET:
		return p.parseListInit()
	case token.IDENT:
		return p.parseIdentStarted()
	default:
		return nil, p.errorf("unexpected token %q", p.cur.Literal)
	}
}

func (p *Parser) parseAtom() (*ast.Atom, error) {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case token.INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid int literal %q", p.cur.Literal)
		}
		p.next()
		return ast.NewAtomInt(n, pos), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", p.cur.Literal)
		}
		p.next()
		return ast.NewAtomFloat(f, pos), nil
	case token.CHAR:
		r := []rune(p.cur.Literal)[0]
		p.next()
		return ast.NewAtomChar(r, pos), nil
	case token.STRING:
		s := p.cur.Literal
		p.next()
		return ast.NewAtomString(s, pos), nil
	case token.KW_TRUE:
		p.next()
		return ast.NewAtomBool(true, pos), nil
	case token.KW_FALSE:
		p.next()
		return ast.NewAtomBool(false, pos), nil
	case token.KW_VOID:
		p.next()
		return ast.NewAtomVoid(pos), nil
	default:
		return nil, p.errorf("expected a literal, got %q", p.cur.Literal)
	}
}

func (p *Parser) parseListInit() (*ast.ListInit, error) {
	pos := p.cur.Pos
	p.next() // consume '['
	list := ast.NewListInit(pos)
	for !p.curIs(token.RBRACKET) {
		el, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, el)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return list, nil
}

// parseIdentStarted dispatches on what follows an identifier: `(` makes it
// a call, `{` makes it a struct literal, anything else makes it an
// LValue root (spec §4.5 atoms/LValues/struct-init/call).
func (p *Parser) parseIdentStarted() (ast.Expr, error) {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()
	switch p.cur.Kind {
	case token.LPAREN:
		return p.parseCallArgs(name, pos)
	case token.LBRACE:
		return p.parseStructInit(name, pos)
	default:
		return ast.NewLValue(name, pos), nil
	}
}

func (p *Parser) parseCallArgs(callee string, pos token.Position) (*ast.Call, error) {
	p.next() // consume '('
	call := ast.NewCall(callee, pos)
	for !p.curIs(token.RPAREN) {
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseStructInit(schema string, pos token.Position) (*ast.StructInit, error) {
	p.next() // consume '{'
	s := ast.NewStructInit(schema, pos)
	for !p.curIs(token.RBRACE) {
		fname, err := p.expect(token.IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, ":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, ast.StructFieldInit{Name: fname.Literal, Value: val})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return s, nil
}
