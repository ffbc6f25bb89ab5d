package calc

// This file contains the statement grammar. It produces a syntax tree of pairs; see
// build.go for the conversion into typed nodes.

import "unicode/utf8"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokDefine
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && (l.s[l.i] == ' ' || l.s[l.i] == '\t') {
		l.i++
	}
	start := l.i
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: start, end: start}
	}

	single := func(kind tokenKind) token {
		l.i++
		return token{kind: kind, text: l.s[start:l.i], pos: start, end: l.i}
	}

	switch l.s[l.i] {
	case '+':
		return single(tokPlus)
	case '-':
		return single(tokMinus)
	case '*':
		return single(tokStar)
	case '/':
		return single(tokSlash)
	case '%':
		return single(tokPercent)
	case '^':
		return single(tokCaret)
	case '(':
		return single(tokLParen)
	case ')':
		return single(tokRParen)
	case ',':
		return single(tokComma)
	case '=':
		return single(tokEquals)
	case ':':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '=' {
			l.i += 2
			return token{kind: tokDefine, text: ":=", pos: start, end: l.i}
		}
		return single(tokIllegal)
	}

	ch := l.s[l.i]
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(l.s[l.i]) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start, end: l.i}
	}
	if isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		return token{kind: tokNumber, text: l.s[start:l.i], pos: start, end: l.i}
	}
	_, size := utf8.DecodeRuneInString(l.s[l.i:])
	l.i += size
	return token{kind: tokIllegal, text: l.s[start:l.i], pos: start, end: l.i}
}

// scanNumber scans digits, an optional fraction, and an optional exponent. The sign of
// a literal is not part of the token; the parser joins an adjacent sign in term position.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isIdentContinue(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '_' }

const (
	keywordPlot  = "plot"
	keywordSolve = "solve"
	keywordFor   = "for"
)

func isKeyword(name string) bool {
	return name == keywordPlot || name == keywordSolve || name == keywordFor
}

// IsSymbol reports whether s is a valid name: an ASCII letter followed by ASCII
// letters, digits or underscores, and not a keyword.
func IsSymbol(s string) bool {
	if s == "" || !isIdentStart(s[0]) || isKeyword(s) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinue(s[i]) {
			return false
		}
	}
	return true
}

type rule uint8

const (
	ruleNum rule = iota
	ruleSymbol
	ruleOperation
	ruleFunCall
	ruleExpr
	ruleFunction
	rulePlot
	ruleSolveFor
	ruleAssignment
)

// pair is one matched grammar rule with its source span and sub-matches.
type pair struct {
	rule  rule
	text  string
	pos   int
	inner []*pair
}

type parser struct {
	l   lexer
	cur token
}

func (p *parser) next() { p.cur = p.l.next() }

type parserState struct {
	i   int
	cur token
}

func (p *parser) save() parserState { return parserState{i: p.l.i, cur: p.cur} }

func (p *parser) restore(s parserState) {
	p.l.i = s.i
	p.cur = s.cur
}

func (p *parser) errorf(msg string) error {
	if p.cur.kind == tokEOF {
		return &SyntaxError{Pos: p.cur.pos, Msg: msg + ", got end of input"}
	}
	return &SyntaxError{Pos: p.cur.pos, Msg: msg + ", got " + quote(p.cur.text)}
}

func quote(s string) string { return "`" + s + "`" }

// parseLine matches one complete statement. Alternatives are tried in the order
// function, plot, solve, assignment, expression.
func parseLine(line string) (*pair, error) {
	p := &parser{l: lexer{s: line}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "expected statement, got an empty line"}
	}

	var (
		st  *pair
		err error
	)
	switch {
	case p.cur.kind == tokIdent && p.cur.text == keywordPlot:
		st, err = p.parsePlot()
	case p.cur.kind == tokIdent && p.cur.text == keywordSolve:
		st, err = p.parseSolveFor()
	case p.cur.kind == tokIdent && !isKeyword(p.cur.text):
		var ok bool
		st, ok, err = p.tryParseFunction()
		if err == nil && !ok {
			st, ok, err = p.tryParseAssignment()
		}
		if err == nil && !ok {
			st, err = p.parseExpr()
		}
	default:
		st, err = p.parseExpr()
	}
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.errorf("expected end of statement")
	}
	return st, nil
}

// tryParseFunction matches `symbol ( symbol, ... ) := expr`. Anything short of the
// `:=` restores the parser and reports ok=false.
func (p *parser) tryParseFunction() (*pair, bool, error) {
	state := p.save()
	name := p.symbolPair()
	p.next()
	if p.cur.kind != tokLParen {
		p.restore(state)
		return nil, false, nil
	}
	p.next()

	out := &pair{rule: ruleFunction, text: name.text, pos: name.pos, inner: []*pair{name}}
	seen := make(map[string]struct{})
	var dup *pair
	if p.cur.kind != tokRParen {
		for {
			if p.cur.kind != tokIdent || isKeyword(p.cur.text) {
				p.restore(state)
				return nil, false, nil
			}
			param := p.symbolPair()
			if _, ok := seen[param.text]; ok && dup == nil {
				dup = param
			}
			seen[param.text] = struct{}{}
			out.inner = append(out.inner, param)
			p.next()
			if p.cur.kind == tokComma {
				p.next()
				continue
			}
			break
		}
	}
	if p.cur.kind != tokRParen {
		p.restore(state)
		return nil, false, nil
	}
	p.next()
	if p.cur.kind != tokDefine {
		p.restore(state)
		return nil, false, nil
	}
	if dup != nil {
		return nil, false, &SyntaxError{Pos: dup.pos, Msg: "duplicate parameter " + quote(dup.text)}
	}
	p.next()
	body, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}
	out.inner = append(out.inner, body)
	return out, true, nil
}

func (p *parser) tryParseAssignment() (*pair, bool, error) {
	state := p.save()
	name := p.symbolPair()
	p.next()
	if p.cur.kind != tokDefine {
		p.restore(state)
		return nil, false, nil
	}
	p.next()
	ex, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}
	return &pair{rule: ruleAssignment, text: name.text, pos: name.pos, inner: []*pair{name, ex}}, true, nil
}

func (p *parser) parsePlot() (*pair, error) {
	pos := p.cur.pos
	p.next()
	sym, err := p.parseSymbol("expected function name after `plot`")
	if err != nil {
		return nil, err
	}
	return &pair{rule: rulePlot, text: sym.text, pos: pos, inner: []*pair{sym}}, nil
}

func (p *parser) parseSolveFor() (*pair, error) {
	pos := p.cur.pos
	p.next()
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEquals {
		return nil, p.errorf("expected `=` in solve")
	}
	p.next()
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent || p.cur.text != keywordFor {
		return nil, p.errorf("expected `for` in solve")
	}
	p.next()
	sym, err := p.parseSymbol("expected variable name after `for`")
	if err != nil {
		return nil, err
	}
	return &pair{rule: ruleSolveFor, text: sym.text, pos: pos, inner: []*pair{lhs, rhs, sym}}, nil
}

func (p *parser) parseSymbol(msg string) (*pair, error) {
	if p.cur.kind != tokIdent || isKeyword(p.cur.text) {
		return nil, p.errorf(msg)
	}
	sym := p.symbolPair()
	p.next()
	return sym, nil
}

func (p *parser) symbolPair() *pair {
	return &pair{rule: ruleSymbol, text: p.cur.text, pos: p.cur.pos}
}

// parseExpr matches `term (operation term)*`. There is no precedence climbing.
func (p *parser) parseExpr() (*pair, error) {
	pos := p.cur.pos
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	out := &pair{rule: ruleExpr, pos: pos, inner: []*pair{first}}
	for isOperation(p.cur.kind) {
		op := &pair{rule: ruleOperation, text: p.cur.text, pos: p.cur.pos}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		out.inner = append(out.inner, op, right)
	}
	out.text = p.l.s[pos:p.cur.pos]
	return out, nil
}

func isOperation(k tokenKind) bool {
	switch k {
	case tokPlus, tokMinus, tokStar, tokSlash, tokPercent, tokCaret:
		return true
	}
	return false
}

func (p *parser) parseTerm() (*pair, error) {
	switch p.cur.kind {
	case tokPlus, tokMinus:
		// A sign is only part of a literal when the digits follow immediately.
		sign := p.cur
		state := p.save()
		p.next()
		if p.cur.kind != tokNumber || p.cur.pos != sign.end {
			p.restore(state)
			return nil, p.errorf("expected number, name or `(`")
		}
		num := &pair{rule: ruleNum, text: sign.text + p.cur.text, pos: sign.pos}
		p.next()
		return num, nil
	case tokNumber:
		num := &pair{rule: ruleNum, text: p.cur.text, pos: p.cur.pos}
		p.next()
		return num, nil
	case tokIdent:
		if isKeyword(p.cur.text) {
			return nil, p.errorf("expected number, name or `(`")
		}
		sym := p.symbolPair()
		p.next()
		if p.cur.kind != tokLParen {
			return sym, nil
		}
		p.next()
		call := &pair{rule: ruleFunCall, text: sym.text, pos: sym.pos, inner: []*pair{sym}}
		if p.cur.kind != tokRParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				call.inner = append(call.inner, arg)
				if p.cur.kind == tokComma {
					p.next()
					continue
				}
				break
			}
		}
		if p.cur.kind != tokRParen {
			return nil, p.errorf("expected `,` or `)`")
		}
		p.next()
		return call, nil
	case tokLParen:
		p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.errorf("expected `)`")
		}
		p.next()
		return ex, nil
	default:
		return nil, p.errorf("expected number, name or `(`")
	}
}
