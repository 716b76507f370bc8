package formula

import (
	"fmt"
	"strconv"
)

// Grammar:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := INTEGER | NAME | '(' expr ')' | '-' factor
//
// Integer literals are non-negative; negatives are built with the
// unary minus. Names start with a letter, underscore or dot and may
// contain digits after the first character. Division is floor
// division: the result truncates toward negative infinity.

type tokenKind int

const (
	tokInt    tokenKind = iota // integer literal
	tokName                    // variable reference
	tokPlus                    // +
	tokMinus                   // -
	tokStar                    // *
	tokSlash                   // /
	tokLParen                  // (
	tokRParen                  // )
	tokEOF
)

type token struct {
	kind tokenKind
	pos  int    // byte offset in the source formula
	text string
	val  int // parsed value for tokInt
}

// Evaluate computes an integer arithmetic formula against a scope.
// It is a pure function: the same formula and scope always produce
// the same value or the same error.
func Evaluate(expr string, scope *Scope) (int, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{expr: expr, toks: toks, scope: scope}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, p.syntaxErr(t.pos, fmt.Sprintf("unexpected %q after expression", t.text))
	}
	return v, nil
}

// EvaluateVars evaluates a formula against a plain name->value map.
func EvaluateVars(expr string, vars map[string]int) (int, error) {
	return Evaluate(expr, ScopeFrom(vars))
}

func tokenize(expr string) ([]token, error) {
	var toks []token

	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
				i++
			}
			text := expr[start:i]
			val, err := strconv.Atoi(text)
			if err != nil {
				return nil, &SyntaxError{Expr: expr, Pos: start, Msg: fmt.Sprintf("integer literal %q out of range", text)}
			}
			toks = append(toks, token{kind: tokInt, pos: start, text: text, val: val})
		case isNameStart(c):
			start := i
			for i < len(expr) && isNameChar(expr[i]) {
				i++
			}
			toks = append(toks, token{kind: tokName, pos: start, text: expr[start:i]})
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i, text: "+"})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i, text: "-"})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, pos: i, text: "*"})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, pos: i, text: "/"})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i, text: ")"})
			i++
		default:
			return nil, &SyntaxError{Expr: expr, Pos: i, Msg: fmt.Sprintf("unexpected character %q", string(c))}
		}
	}

	toks = append(toks, token{kind: tokEOF, pos: len(expr), text: ""})
	return toks, nil
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	expr  string
	toks  []token
	pos   int
	scope *Scope
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) syntaxErr(pos int, msg string) error {
	return &SyntaxError{Expr: p.expr, Pos: pos, Msg: msg}
}

func (p *parser) parseExpr() (int, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			r, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += r
		case tokMinus:
			p.next()
			r, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (int, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			r, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= r
		case tokSlash:
			t := p.next()
			r, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("formula %q at position %d: %w", p.expr, t.pos, ErrDivisionByZero)
			}
			v = floorDiv(v, r)
		default:
			return v, nil
		}
	}
}

func (p *parser) parseFactor() (int, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		return t.val, nil
	case tokName:
		v, ok := p.scope.Get(t.text)
		if !ok {
			return 0, &UnknownIdentifierError{Name: t.text, Available: p.scope.SortedNames()}
		}
		return v, nil
	case tokLParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return 0, p.syntaxErr(closing.pos, "expected closing parenthesis")
		}
		return v, nil
	case tokMinus:
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case tokEOF:
		return 0, p.syntaxErr(t.pos, "unexpected end of formula")
	default:
		return 0, p.syntaxErr(t.pos, fmt.Sprintf("unexpected %q", t.text))
	}
}

// floorDiv truncates toward negative infinity, so -5/3 is -2 rather
// than the -1 Go's native division would give.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
