package query

import "strings"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNum
	tokFloat
	tokStr
	tokComma
	tokSemi
	tokLParen
	tokRParen
	tokOp // + - * / = < > <= >=
)

type token struct {
	kind tokenKind
	text string
	span LocInfo
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.pos++
			continue
		}
		break
	}

	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, span: LocInfo{start, start}}, nil
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], span: LocInfo{start, l.pos}}, nil

	case c >= '0' && c <= '9':
		kind := tokNum
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
		if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9' {
			kind = tokFloat
			l.pos++
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
				l.pos++
			}
		}
		return token{kind: kind, text: l.src[start:l.pos], span: LocInfo{start, l.pos}}, nil

	case c == '\'':
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] != '\'' {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{}, NewError(LocInfo{start, l.pos}, ErrUnexpectedEOF)
		}
		l.pos++
		return token{kind: tokStr, text: l.src[start+1 : l.pos-1], span: LocInfo{start, l.pos}}, nil

	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", span: LocInfo{start, l.pos}}, nil

	case c == ';':
		l.pos++
		return token{kind: tokSemi, text: ";", span: LocInfo{start, l.pos}}, nil

	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", span: LocInfo{start, l.pos}}, nil

	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", span: LocInfo{start, l.pos}}, nil

	case c == '<' || c == '>':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
		}
		return token{kind: tokOp, text: l.src[start:l.pos], span: LocInfo{start, l.pos}}, nil

	case c == '+' || c == '-' || c == '*' || c == '/' || c == '=':
		l.pos++
		return token{kind: tokOp, text: l.src[start : start+1], span: LocInfo{start, l.pos}}, nil

	default:
		return token{}, NewError(LocInfo{start, start + 1}, ErrInvalidToken)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	if p.tok.kind != tokIdent || !strings.EqualFold(p.tok.text, kw) {
		if p.tok.kind == tokEOF {
			return NewError(p.tok.span, ErrUnexpectedEOF)
		}
		return Errorf(p.tok.span, "%w: expected %q", ErrUnrecognizedToken, kw)
	}
	return p.advance()
}

// Parse parses one or more semicolon-separated statements.
func Parse(src string) ([]Statement, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var stmts []Statement
	for {
		for p.tok.kind == tokSemi {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.kind == tokEOF {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		if p.tok.kind != tokSemi && p.tok.kind != tokEOF {
			return nil, NewError(p.tok.span, ErrExtraToken)
		}
	}

	if len(stmts) == 0 {
		return nil, NewError(LocInfo{0, len(src)}, ErrUnexpectedEOF)
	}

	return stmts, nil
}

func (p *parser) parseStatement() (Statement, error) {
	var stmt Statement

	if err := p.expectKeyword("select"); err != nil {
		return stmt, err
	}

	for {
		sel, err := p.parseSelector()
		if err != nil {
			return stmt, err
		}
		stmt.Selectors = append(stmt.Selectors, sel)

		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return stmt, err
		}
	}

	fromStart := p.tok.span.Start
	if err := p.expectKeyword("from"); err != nil {
		return stmt, err
	}

	seen := map[string]bool{}
	for {
		item, err := p.parseFromItem()
		if err != nil {
			return stmt, err
		}

		key := strings.ToLower(item.Key)
		if seen[key] {
			return stmt, NewError(item.KeyLoc, ErrDuplicatedKey)
		}
		seen[key] = true
		item.Key = key
		stmt.From = append(stmt.From, item)

		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return stmt, err
		}
	}

	stmt.FromLoc = LocInfo{fromStart, p.tok.span.Start}
	return stmt, nil
}

func (p *parser) parseSelector() (Selector, error) {
	var sel Selector
	start := p.tok.span.Start

	if p.tok.kind == tokEOF {
		return sel, NewError(p.tok.span, ErrUnexpectedEOF)
	}
	if p.tok.kind != tokIdent {
		return sel, NewError(p.tok.span, ErrUnrecognizedToken)
	}
	switch strings.ToLower(p.tok.text) {
	case "avg":
		sel.Kind = Avg
	case "count":
		sel.Kind = Count
	case "max":
		sel.Kind = Max
	case "min":
		sel.Kind = Min
	default:
		return sel, Errorf(p.tok.span, "%w: unknown selector %q", ErrUnrecognizedToken, p.tok.text)
	}
	if err := p.advance(); err != nil {
		return sel, err
	}

	if p.tok.kind != tokLParen {
		return sel, Errorf(p.tok.span, "%w: expected '('", ErrUnrecognizedToken)
	}
	if err := p.advance(); err != nil {
		return sel, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return sel, err
	}
	sel.Expr = expr

	if p.tok.kind != tokRParen {
		return sel, Errorf(p.tok.span, "%w: expected ')'", ErrUnrecognizedToken)
	}
	if err := p.advance(); err != nil {
		return sel, err
	}

	if p.tok.kind == tokIdent && strings.EqualFold(p.tok.text, "as") {
		if err := p.advance(); err != nil {
			return sel, err
		}
		if p.tok.kind != tokIdent {
			return sel, Errorf(p.tok.span, "%w: expected alias", ErrUnrecognizedToken)
		}
		sel.Alias = p.tok.text
		if err := p.advance(); err != nil {
			return sel, err
		}
	}

	sel.Loc = LocInfo{start, p.tok.span.Start}
	return sel, nil
}

func (p *parser) parseFromItem() (FromItem, error) {
	var item FromItem

	if p.tok.kind != tokIdent {
		if p.tok.kind == tokEOF {
			return item, NewError(p.tok.span, ErrUnexpectedEOF)
		}
		return item, NewError(p.tok.span, ErrUnrecognizedToken)
	}
	item.Key = p.tok.text
	item.KeyLoc = p.tok.span
	if err := p.advance(); err != nil {
		return item, err
	}

	if p.tok.kind != tokOp || p.tok.text != "=" {
		return item, Errorf(p.tok.span, "%w: expected '='", ErrUnrecognizedToken)
	}
	if err := p.advance(); err != nil {
		return item, err
	}

	if p.tok.kind != tokStr {
		return item, Errorf(p.tok.span, "%w: expected string value", ErrUnrecognizedToken)
	}
	item.Value = p.tok.text
	item.ValueLoc = p.tok.span
	return item, p.advance()
}

// parseExpr parses with comparison operators binding loosest, then
// additive, then multiplicative operators.
func (p *parser) parseExpr() (Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokOp {
		var op BinOpKind
		switch p.tok.text {
		case "=":
			op = OpEq
		case "<":
			op = OpLt
		case ">":
			op = OpGt
		case "<=":
			op = OpLe
		case ">=":
			op = OpGe
		default:
			return lhs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &BinOp{Op: op, LHS: lhs, RHS: rhs, Span: LocInfo{lhs.Loc().Start, rhs.Loc().End}}
	}

	return lhs, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := OpAdd
		if p.tok.text == "-" {
			op = OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &BinOp{Op: op, LHS: lhs, RHS: rhs, Span: LocInfo{lhs.Loc().Start, rhs.Loc().End}}
	}

	return lhs, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := OpMul
		if p.tok.text == "/" {
			op = OpDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		lhs = &BinOp{Op: op, LHS: lhs, RHS: rhs, Span: LocInfo{lhs.Loc().Start, rhs.Loc().End}}
	}

	return lhs, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, Errorf(p.tok.span, "%w: expected ')'", ErrUnrecognizedToken)
		}
		return expr, p.advance()

	case tokNum, tokFloat:
		n := &Num{Text: p.tok.text, IsFloat: p.tok.kind == tokFloat, Span: p.tok.span}
		return n, p.advance()

	case tokStr:
		s := &Str{Value: p.tok.text, Span: p.tok.span}
		return s, p.advance()

	case tokIdent:
		name := p.tok.text
		span := p.tok.span
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.tok.kind != tokLParen {
			return &Ident{Name: name, Span: span}, nil
		}

		// Function call.
		if err := p.advance(); err != nil {
			return nil, err
		}
		call := &FnCall{Name: name, NameLoc: span}
		if p.tok.kind != tokRParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if p.tok.kind != tokComma {
					break
				}
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if p.tok.kind != tokRParen {
			return nil, Errorf(p.tok.span, "%w: expected ')'", ErrUnrecognizedToken)
		}
		call.Span = LocInfo{span.Start, p.tok.span.End}
		return call, p.advance()

	case tokEOF:
		return nil, NewError(p.tok.span, ErrUnexpectedEOF)

	default:
		return nil, NewError(p.tok.span, ErrUnrecognizedToken)
	}
}
