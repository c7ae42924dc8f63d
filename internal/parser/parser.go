package parser

import (
    "errors"
    "fmt"
    "slices"
    "strconv"

    "github.com/derphilovic/sprout/internal/lexer"
)

// ErrSyntax is wrapped by every fatal parse error.
var ErrSyntax = errors.New("syntax error")

// Error is a fatal parse error. Only malformed integers where one is
// mandatory (jump targets, random bounds) produce it; other malformed input
// truncates the program instead.
type Error struct {
    Line int
    Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }
func (e *Error) Unwrap() error { return ErrSyntax }

type Parser struct {
    toks []lexer.Token
    i    int
}

func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

// Parse lexes and parses src in one step.
func Parse(src string) (Program, error) { return New(lexer.Lex(src)).ParseProgram() }

func (p *Parser) cur() lexer.Token {
    if p.i >= len(p.toks) {
        line := 0
        if len(p.toks) > 0 { line = p.toks[len(p.toks)-1].Line }
        return lexer.Token{Type: lexer.EOF, Line: line}
    }
    return p.toks[p.i]
}

func (p *Parser) next() lexer.Token {
    t := p.cur()
    if p.i < len(p.toks) && t.Type != lexer.EOF { p.i++ }
    return t
}

func (p *Parser) match(typ string) bool {
    if p.cur().Type == typ { p.next(); return true }
    return false
}

func (p *Parser) fail(line int, format string, args ...any) {
    panic(&Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// ParseProgram collects top-level statements until EOF. A statement that
// cannot be dispatched, or one that consumes nothing, ends the program
// quietly with what was collected so far.
func (p *Parser) ParseProgram() (prog Program, err error) {
    defer func() {
        if r := recover(); r != nil {
            perr, ok := r.(*Error)
            if !ok { panic(r) }
            prog, err = Program{Statements: []Statement{}, Type: "Program"}, perr
        }
    }()

    stmts := []Statement{}
    for p.cur().Type != lexer.EOF {
        before := p.i
        st, ok := p.parseStatement()
        if !ok { break }
        stmts = append(stmts, st)
        if p.i == before { break }
    }
    return Program{Statements: stmts, Type: "Program"}, nil
}

func (p *Parser) parseStatement() (Statement, bool) {
    t := p.cur()
    switch t.Type {
    case "INT", "STR", "FLOAT":
        p.next()
        return p.parseDeclaration(t)
    case "ARRAY":
        p.next()
        return p.parseArray(t)
    case "PRINT":
        p.next()
        p.match(":")
        return PrintStmt{Pos: Pos{t.Line}, Type: "Print", Value: p.parseExpression()}, true
    case "INPUT":
        p.next()
        p.match(":")
        name, ok := p.ident()
        if !ok { return nil, false }
        p.match(",")
        prompt := p.next()
        return InputStmt{Pos: Pos{t.Line}, Type: "Input", Name: name, Prompt: prompt.Lit}, true
    case "READ":
        p.next()
        p.match(":")
        name, ok := p.ident()
        if !ok { return nil, false }
        p.match(",")
        file := p.next()
        return ReadStmt{Pos: Pos{t.Line}, Type: "Read", Name: name, File: file.Lit}, true
    case "RANDOM":
        p.next()
        return p.parseRandom(t)
    case "LEN":
        p.next()
        p.match(":")
        name, ok := p.ident()
        if !ok { return nil, false }
        p.match(",")
        arr, ok := p.ident()
        if !ok { return nil, false }
        return LenStmt{Pos: Pos{t.Line}, Type: "Length", Name: name, Array: arr}, true
    case "IF":
        p.next()
        return p.parseIf(t), true
    case "JUMP":
        p.next()
        p.match(":")
        target := p.intLiteral("jump target", false)
        return JumpStmt{Pos: Pos{t.Line}, Type: "Jump", Target: target}, true
    case "BREAK":
        p.next()
        return BreakStmt{Pos: Pos{t.Line}, Type: "Break"}, true
    case lexer.ID:
        p.next()
        p.match("=")
        return Assignment{Pos: Pos{t.Line}, Type: "Assignment", Name: t.Lit, Value: p.parseExpression()}, true
    default:
        return nil, false
    }
}

func (p *Parser) ident() (string, bool) {
    t := p.cur()
    if t.Type != lexer.ID { return "", false }
    p.next()
    return t.Lit, true
}

func (p *Parser) parseDeclaration(kw lexer.Token) (Statement, bool) {
    name, ok := p.ident()
    if !ok { return nil, false }
    p.match("=")
    val := p.parseExpression()
    return Declaration{Pos: Pos{kw.Line}, Type: "Declaration", Kind: kw.Lit, Name: name, Value: val}, true
}

// parseArray accepts `array a = (x, y)`, `array a = ()` and, when the values
// start on the keyword's line, the bare form `array a = x, y`.
func (p *Parser) parseArray(kw lexer.Token) (Statement, bool) {
    name, ok := p.ident()
    if !ok { return nil, false }
    p.match("=")
    items := make([]Expr, 0)
    if p.match("(") {
        for p.cur().Type != ")" && p.cur().Type != lexer.EOF {
            items = append(items, p.parseExpression())
            if !p.match(",") { break }
        }
        p.match(")")
    } else if startsExpr(p.cur()) && p.cur().Line == kw.Line {
        for {
            items = append(items, p.parseExpression())
            if !p.match(",") { break }
        }
    }
    lit := ArrayLit{Items: items, Type: "Array"}
    return Declaration{Pos: Pos{kw.Line}, Type: "Declaration", Kind: kw.Lit, Name: name, Value: lit}, true
}

func (p *Parser) parseRandom(kw lexer.Token) (Statement, bool) {
    p.match(":")
    name, ok := p.ident()
    if !ok { return nil, false }
    p.match(",")
    lo := p.intLiteral("random minimum", true)
    p.match(",")
    hi := p.intLiteral("random maximum", true)
    if lo > hi { p.fail(kw.Line, "random range is empty: %d > %d", lo, hi) }
    return RandomStmt{Pos: Pos{kw.Line}, Type: "Random", Name: name, Min: lo, Max: hi}, true
}

// intLiteral reads an integer literal that the grammar requires; anything
// else aborts the parse.
func (p *Parser) intLiteral(what string, signed bool) int {
    neg := signed && p.match("-")
    t := p.next()
    if t.Type != lexer.NUM {
        p.fail(t.Line, "expected integer %s, found %q", what, t.Lit)
    }
    v, err := strconv.Atoi(t.Lit)
    if err != nil {
        p.fail(t.Line, "invalid integer %s %q", what, t.Lit)
    }
    if neg { v = -v }
    return v
}

func (p *Parser) parseIf(kw lexer.Token) IfStmt {
    p.match("(")
    cond := p.parseExpression()
    p.match(")")
    p.match(":")
    branches := []Branch{{Condition: cond, Body: p.parseBody(true)}}
    p.match(";")

    if p.match("ELSE") {
        p.match(":")
        branches = append(branches, Branch{Body: p.parseBody(false)})
        p.match(";")
    }
    return IfStmt{Pos: Pos{kw.Line}, Type: "If", Branches: branches}
}

// parseBody reads statements greedily until ';', EOF or (for the then-arm) else.
func (p *Parser) parseBody(stopAtElse bool) []Statement {
    body := []Statement{}
    for {
        t := p.cur()
        if t.Type == ";" || t.Type == lexer.EOF || (stopAtElse && t.Type == "ELSE") { break }
        before := p.i
        st, ok := p.parseStatement()
        if !ok { break }
        body = append(body, st)
        if p.i == before { break }
    }
    return body
}

// Expressions, lowest precedence first.

func (p *Parser) parseExpression() Expr { return p.parseEquality() }

func (p *Parser) parseEquality() Expr { return p.binary(p.parseComparison, "==", "!=") }

func (p *Parser) parseComparison() Expr { return p.binary(p.parseAdditive, "<", ">", "<=", ">=") }

func (p *Parser) parseAdditive() Expr { return p.binary(p.parseMultiplicative, "+", "-") }

func (p *Parser) parseMultiplicative() Expr { return p.binary(p.parsePrimary, "*", "/") }

// binary folds a left-associative chain of the given operators.
func (p *Parser) binary(operand func() Expr, ops ...string) Expr {
    left := operand()
    for slices.Contains(ops, p.cur().Type) {
        op := p.next().Type
        right := operand()
        left = InfixExpr{Left: left, Operator: op, Right: right, Type: "Infix"}
    }
    return left
}

func (p *Parser) parsePrimary() Expr {
    t := p.cur()
    switch t.Type {
    case lexer.NUM:
        p.next()
        // the lexer only emits digits with an optional fraction; out-of-range
        // literals come back as ±Inf alongside the error
        v, _ := strconv.ParseFloat(t.Lit, 64)
        return NumberLit{Type: "Number", Value: v}
    case lexer.STRING:
        p.next()
        return StringLit{Type: "String", Value: t.Lit}
    case lexer.ID:
        p.next()
        if p.match("[") {
            idx := p.parseExpression()
            p.match("]")
            return IndexExpr{Index: idx, Name: t.Lit, Type: "Index"}
        }
        return Identifier{Name: t.Lit, Type: "Identifier"}
    case "(":
        p.next()
        expr := p.parseExpression()
        p.match(")")
        return expr
    case lexer.EOF:
        return nil
    default:
        // unrecognised operand: consume it and leave the slot empty
        p.next()
        return nil
    }
}

func startsExpr(t lexer.Token) bool {
    switch t.Type {
    case lexer.NUM, lexer.STRING, lexer.ID:
        return true
    }
    return false
}
