package letexpr

import (
	"fmt"
)

// TokenType defines the type of lexical tokens.
type TokenType int

const (
	TokEOF       TokenType = iota // EOF
	TokInt                        // 123
	TokFloat                      // 3.14
	TokString                     // "hello"
	TokIdent                      // foo
	TokLParen                     // (
	TokRParen                     // )
	TokLBrace                     // {
	TokRBrace                     // }
	TokComma                      // ,
	TokSemicolon                  // ;
	TokAssign                     // =
	TokPlus                       // +
	TokMinus                      // -
	TokStar                       // *
	TokSlash                      // /
	TokPercent                    // %
	TokEq                         // ==
	TokNe                         // !=
	TokLt                         // <
	TokLe                         // <=
	TokGt                         // >
	TokGe                         // >=
	TokAnd                        // &&
	TokOr                         // ||
	TokNot                        // !

	// keywords
	TokLet   // let
	TokDel   // del
	TokIf    // if
	TokElse  // else
	TokTrue  // true
	TokFalse // false
	TokNil   // nil
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "EOF"
	case TokInt:
		return "int"
	case TokFloat:
		return "float"
	case TokString:
		return "string"
	case TokIdent:
		return "identifier"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokLBrace:
		return "{"
	case TokRBrace:
		return "}"
	case TokComma:
		return ","
	case TokSemicolon:
		return ";"
	case TokAssign:
		return "="
	case TokPlus:
		return "+"
	case TokMinus:
		return "-"
	case TokStar:
		return "*"
	case TokSlash:
		return "/"
	case TokPercent:
		return "%"
	case TokEq:
		return "=="
	case TokNe:
		return "!="
	case TokLt:
		return "<"
	case TokLe:
		return "<="
	case TokGt:
		return ">"
	case TokGe:
		return ">="
	case TokAnd:
		return "&&"
	case TokOr:
		return "||"
	case TokNot:
		return "!"
	case TokLet:
		return "let"
	case TokDel:
		return "del"
	case TokIf:
		return "if"
	case TokElse:
		return "else"
	case TokTrue:
		return "true"
	case TokFalse:
		return "false"
	case TokNil:
		return "nil"
	}
	return "unknown"
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentBegin(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentBegin(ch) || isDigit(ch)
}

// Tokenize splits input into tokens, tracking source lines. The stream
// always ends with an EOF token.
func Tokenize(input string) ([]Token, error) {
	tokens := []Token{}
	lineNum := 1
	for i := 0; i < len(input); {
		ch := input[i]
		// skip whitespace
		if isSpace(ch) {
			if ch == '\n' {
				lineNum++
			}
			i++
			continue
		}
		// skip single-line comment
		if ch == '/' && i+1 < len(input) && input[i+1] == '/' {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			continue
		}
		// skip multi-line comment
		if ch == '/' && i+1 < len(input) && input[i+1] == '*' {
			i += 2
			for i+1 < len(input) && !(input[i] == '*' && input[i+1] == '/') {
				if input[i] == '\n' {
					lineNum++
				}
				i++
			}
			if i+1 < len(input) {
				i += 2
			} else {
				return nil, fmt.Errorf("unterminated comment at line %d", lineNum)
			}
			continue
		}
		// number literal
		if isDigit(ch) {
			start := i
			dots := 0
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				if input[i] == '.' {
					dots++
				}
				i++
			}
			tt := TokInt
			if dots > 0 {
				tt = TokFloat
			}
			tokens = append(tokens, Token{Type: tt, Literal: input[start:i], Line: lineNum})
			continue
		}
		// identifier or keyword
		if isIdentBegin(ch) {
			start := i
			i++
			for i < len(input) && isIdentContinue(input[i]) {
				i++
			}
			lit := input[start:i]
			tt := TokIdent
			switch lit {
			case "let":
				tt = TokLet
			case "del":
				tt = TokDel
			case "if":
				tt = TokIf
			case "else":
				tt = TokElse
			case "true":
				tt = TokTrue
			case "false":
				tt = TokFalse
			case "nil":
				tt = TokNil
			}
			tokens = append(tokens, Token{Type: tt, Literal: lit, Line: lineNum})
			continue
		}
		// string literal
		if ch == '"' {
			i++
			var buf []byte
			closed := false
			for i < len(input) {
				c := input[i]
				if c == '"' {
					i++
					closed = true
					break
				}
				if c == '\n' {
					break
				}
				if c == '\\' && i+1 < len(input) {
					i++
					switch input[i] {
					case 'n':
						buf = append(buf, '\n')
					case 't':
						buf = append(buf, '\t')
					case 'r':
						buf = append(buf, '\r')
					default:
						buf = append(buf, input[i])
					}
					i++
					continue
				}
				buf = append(buf, c)
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string at line %d", lineNum)
			}
			tokens = append(tokens, Token{Type: TokString, Literal: string(buf), Line: lineNum})
			continue
		}
		// operators and punctuation
		var tt TokenType
		size := 1
		switch ch {
		case '(':
			tt = TokLParen
		case ')':
			tt = TokRParen
		case '{':
			tt = TokLBrace
		case '}':
			tt = TokRBrace
		case ',':
			tt = TokComma
		case ';':
			tt = TokSemicolon
		case '+':
			tt = TokPlus
		case '-':
			tt = TokMinus
		case '*':
			tt = TokStar
		case '/':
			tt = TokSlash
		case '%':
			tt = TokPercent
		case '=':
			if i+1 < len(input) && input[i+1] == '=' {
				tt, size = TokEq, 2
			} else {
				tt = TokAssign
			}
		case '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tt, size = TokNe, 2
			} else {
				tt = TokNot
			}
		case '<':
			if i+1 < len(input) && input[i+1] == '=' {
				tt, size = TokLe, 2
			} else {
				tt = TokLt
			}
		case '>':
			if i+1 < len(input) && input[i+1] == '=' {
				tt, size = TokGe, 2
			} else {
				tt = TokGt
			}
		case '&':
			if i+1 < len(input) && input[i+1] == '&' {
				tt, size = TokAnd, 2
			} else {
				return nil, fmt.Errorf("unexpected character %q at line %d", ch, lineNum)
			}
		case '|':
			if i+1 < len(input) && input[i+1] == '|' {
				tt, size = TokOr, 2
			} else {
				return nil, fmt.Errorf("unexpected character %q at line %d", ch, lineNum)
			}
		default:
			return nil, fmt.Errorf("unexpected character %q at line %d", ch, lineNum)
		}
		tokens = append(tokens, Token{Type: tt, Literal: input[i : i+size], Line: lineNum})
		i += size
	}
	tokens = append(tokens, Token{Type: TokEOF, Line: lineNum})
	return tokens, nil
}
