package letexpr

import (
	"fmt"
	"strconv"
)

// ParseError is an error during parsing.
type ParseError struct {
	Msg  string
	Line int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

// Parser consumes a token stream into an AST.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokEOF}
}

func (p *Parser) peekNext() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return Token{Type: TokEOF}
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.peek().Type != tt {
		return Token{}, p.errorf("expected %v, got %v", tt, p.peek().Type)
	}
	return p.next(), nil
}

// errorf creates a ParseError carrying the current line.
func (p *Parser) errorf(format string, args ...any) error {
	return ParseError{Msg: fmt.Sprintf(format, args...), Line: p.peek().Line}
}

// ParseProgram parses statements until EOF, with an optional trailing
// expression as the program's result.
func (p *Parser) ParseProgram() (*Program, error) {
	stmts, tail, err := p.parseStmtList(TokEOF)
	if err != nil {
		return nil, err
	}
	return &Program{Body: stmts, Tail: tail}, nil
}

// parseStmtList parses statements up to the end token. An expression
// directly before the end token becomes the trailing result.
func (p *Parser) parseStmtList(end TokenType) ([]Statement, Expression, error) {
	var stmts []Statement
	for p.peek().Type != end && p.peek().Type != TokEOF {
		switch {
		case p.peek().Type == TokSemicolon:
			p.next()
		case p.peek().Type == TokLet:
			stmt, err := p.parseLet()
			if err != nil {
				return nil, nil, err
			}
			stmts = append(stmts, stmt)
		case p.peek().Type == TokDel:
			stmt, err := p.parseDel()
			if err != nil {
				return nil, nil, err
			}
			stmts = append(stmts, stmt)
		case p.peek().Type == TokIdent && p.peekNext().Type == TokAssign:
			stmt, err := p.parseAssign()
			if err != nil {
				return nil, nil, err
			}
			stmts = append(stmts, stmt)
		default:
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, nil, err
			}
			if p.peek().Type == TokSemicolon {
				p.next()
				stmts = append(stmts, &ExprStmt{X: expr})
				continue
			}
			if p.peek().Type == end {
				return stmts, expr, nil
			}
			return nil, nil, p.errorf("expected %v or %v, got %v", TokSemicolon, end, p.peek().Type)
		}
	}
	return stmts, nil, nil
}

func (p *Parser) parseLet() (Statement, error) {
	tok := p.next()
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokAssign); err != nil {
		return nil, err
	}
	init, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	return &LetStmt{Name: name.Literal, Init: init, Line: tok.Line}, nil
}

func (p *Parser) parseAssign() (Statement, error) {
	name := p.next()
	p.next()
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	return &AssignStmt{Name: name.Literal, Value: value, Line: name.Line}, nil
}

func (p *Parser) parseDel() (Statement, error) {
	tok := p.next()
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	return &DelStmt{Name: name.Literal, Line: tok.Line}, nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokOr {
		tok := p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: TokOr, Left: left, Right: right, Line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokAnd {
		tok := p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: TokAnd, Left: left, Right: right, Line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case TokEq, TokNe, TokLt, TokLe, TokGt, TokGe:
			tok := p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Line: tok.Line}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseTerm() (Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokPlus || p.peek().Type == TokMinus {
		tok := p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseFactor() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokStar || p.peek().Type == TokSlash || p.peek().Type == TokPercent {
		tok := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Line: tok.Line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expression, error) {
	switch p.peek().Type {
	case TokMinus, TokPlus, TokNot:
		tok := p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Type, X: x, Line: tok.Line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case TokInt:
		p.next()
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, ParseError{Msg: fmt.Sprintf("invalid number literal %q", tok.Literal), Line: tok.Line}
		}
		return &Literal{Value: IntVal(i), Line: tok.Line}, nil
	case TokFloat:
		p.next()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, ParseError{Msg: fmt.Sprintf("invalid number literal %q", tok.Literal), Line: tok.Line}
		}
		return &Literal{Value: FloatVal(f), Line: tok.Line}, nil
	case TokString:
		p.next()
		return &Literal{Value: StringVal(tok.Literal), Line: tok.Line}, nil
	case TokTrue, TokFalse:
		p.next()
		return &Literal{Value: BoolVal(tok.Type == TokTrue), Line: tok.Line}, nil
	case TokNil:
		p.next()
		return &Literal{Value: NilVal(), Line: tok.Line}, nil
	case TokIdent:
		if p.peekNext().Type == TokLParen {
			return p.parseCall()
		}
		p.next()
		return &Ident{Name: tok.Literal, Line: tok.Line}, nil
	case TokLParen:
		p.next()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokLBrace:
		return p.parseBlock()
	case TokIf:
		return p.parseIf()
	}
	return nil, p.errorf("unexpected token %v", tok.Type)
}

func (p *Parser) parseCall() (Expression, error) {
	name := p.next()
	p.next()
	var args []Expression
	for p.peek().Type != TokRParen {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().Type != TokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return &CallExpr{Name: name.Literal, Args: args, Line: name.Line}, nil
}

func (p *Parser) parseBlock() (*BlockExpr, error) {
	tok, err := p.expect(TokLBrace)
	if err != nil {
		return nil, err
	}
	stmts, tail, err := p.parseStmtList(TokRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return &BlockExpr{Stmts: stmts, Tail: tail, Line: tok.Line}, nil
}

func (p *Parser) parseIf() (Expression, error) {
	tok := p.next()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els Expression
	if p.peek().Type == TokElse {
		p.next()
		if p.peek().Type == TokIf {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return &IfExpr{Cond: cond, Then: then, Else: els, Line: tok.Line}, nil
}
