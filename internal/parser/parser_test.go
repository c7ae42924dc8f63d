package parser

import (
    "encoding/json"
    "errors"
    "testing"

    "github.com/google/go-cmp/cmp"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []Statement {
    t.Helper()
    prog, err := Parse(src)
    require.NoError(t, err)
    return prog.Statements
}

func num(v float64) Expr { return NumberLit{Type: "Number", Value: v} }
func str(v string) Expr { return StringLit{Type: "String", Value: v} }
func ident(n string) Expr { return Identifier{Name: n, Type: "Identifier"} }
func infix(l Expr, op string, r Expr) Expr {
    return InfixExpr{Left: l, Operator: op, Right: r, Type: "Infix"}
}

func TestParseDeclarations(t *testing.T) {
    got := mustParse(t, "int a = 1\nstr s = \"hi\"\nfloat f = 2.5\nb = a")
    want := []Statement{
        Declaration{Pos: Pos{1}, Type: "Declaration", Kind: "int", Name: "a", Value: num(1)},
        Declaration{Pos: Pos{2}, Type: "Declaration", Kind: "str", Name: "s", Value: str("hi")},
        Declaration{Pos: Pos{3}, Type: "Declaration", Kind: "float", Name: "f", Value: num(2.5)},
        Assignment{Pos: Pos{4}, Type: "Assignment", Name: "b", Value: ident("a")},
    }
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("statements mismatch (-want +got):\n%s", diff)
    }
}

func TestParseArrayForms(t *testing.T) {
    got := mustParse(t, "array a = (1, 2, \"x\")\narray e = ()\narray b = 3, n\narray c =\nprint : c")
    want := []Statement{
        Declaration{Pos: Pos{1}, Type: "Declaration", Kind: "array", Name: "a",
            Value: ArrayLit{Items: []Expr{num(1), num(2), str("x")}, Type: "Array"}},
        Declaration{Pos: Pos{2}, Type: "Declaration", Kind: "array", Name: "e",
            Value: ArrayLit{Items: []Expr{}, Type: "Array"}},
        Declaration{Pos: Pos{3}, Type: "Declaration", Kind: "array", Name: "b",
            Value: ArrayLit{Items: []Expr{num(3), ident("n")}, Type: "Array"}},
        Declaration{Pos: Pos{4}, Type: "Declaration", Kind: "array", Name: "c",
            Value: ArrayLit{Items: []Expr{}, Type: "Array"}},
        PrintStmt{Pos: Pos{5}, Type: "Print", Value: ident("c")},
    }
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("statements mismatch (-want +got):\n%s", diff)
    }
}

func TestParsePrecedence(t *testing.T) {
    got := mustParse(t, "print : 1 + 2 * 3 == 7 - 8 / 4 < 2")
    require.Len(t, got, 1)
    mul := infix(num(2), "*", num(3))
    left := infix(num(1), "+", mul)
    right := infix(infix(num(7), "-", infix(num(8), "/", num(4))), "<", num(2))
    want := PrintStmt{Pos: Pos{1}, Type: "Print", Value: infix(left, "==", right)}
    if diff := cmp.Diff(want, got[0]); diff != "" {
        t.Fatalf("expression mismatch (-want +got):\n%s", diff)
    }
}

func TestParseLeftAssociativeAndGrouping(t *testing.T) {
    got := mustParse(t, "x = 10 - 3 - 2\ny = 10 - (3 - 2)")
    require.Len(t, got, 2)
    assert.Equal(t, infix(infix(num(10), "-", num(3)), "-", num(2)), got[0].(Assignment).Value)
    assert.Equal(t, infix(num(10), "-", infix(num(3), "-", num(2))), got[1].(Assignment).Value)
}

func TestParseArrayAccess(t *testing.T) {
    got := mustParse(t, "print : a[i + 1]")
    want := IndexExpr{Index: infix(ident("i"), "+", num(1)), Name: "a", Type: "Index"}
    assert.Equal(t, want, got[0].(PrintStmt).Value)
}

func TestParseIOStatements(t *testing.T) {
    got := mustParse(t, "input : x, \"Enter:\"\nread : lines, \"data.txt\"\nrandom : r, -2, 5\nlen : n, lines")
    want := []Statement{
        InputStmt{Pos: Pos{1}, Type: "Input", Name: "x", Prompt: "Enter:"},
        ReadStmt{Pos: Pos{2}, Type: "Read", Name: "lines", File: "data.txt"},
        RandomStmt{Pos: Pos{3}, Type: "Random", Name: "r", Min: -2, Max: 5},
        LenStmt{Pos: Pos{4}, Type: "Length", Name: "n", Array: "lines"},
    }
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("statements mismatch (-want +got):\n%s", diff)
    }
}

func TestParseIfElse(t *testing.T) {
    got := mustParse(t, "if (0) : print : \"no\" ; else : print : \"yes\" ;\nbreak")
    want := []Statement{
        IfStmt{Pos: Pos{1}, Type: "If", Branches: []Branch{
            {Condition: num(0), Body: []Statement{PrintStmt{Pos: Pos{1}, Type: "Print", Value: str("no")}}},
            {Body: []Statement{PrintStmt{Pos: Pos{1}, Type: "Print", Value: str("yes")}}},
        }},
        BreakStmt{Pos: Pos{2}, Type: "Break"},
    }
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("statements mismatch (-want +got):\n%s", diff)
    }
}

func TestParseIfBodySpansLinesAndNests(t *testing.T) {
    src := "if (a > 1) :\n  print : a\n  if (b) : jump : 1 ;\n  a = a - 1\n;\nprint : \"done\""
    got := mustParse(t, src)
    require.Len(t, got, 2)
    ifs := got[0].(IfStmt)
    require.Len(t, ifs.Branches, 1)
    body := ifs.Branches[0].Body
    require.Len(t, body, 3)
    inner := body[1].(IfStmt)
    assert.Equal(t, 3, inner.SourceLine())
    assert.Equal(t, JumpStmt{Pos: Pos{3}, Type: "Jump", Target: 1}, inner.Branches[0].Body[0])
    assert.Equal(t, 6, got[1].SourceLine())
}

func TestParseIfWithoutTerminatorRunsToEOF(t *testing.T) {
    got := mustParse(t, "if (1) : print : 1\nprint : 2")
    require.Len(t, got, 1)
    assert.Len(t, got[0].(IfStmt).Branches[0].Body, 2)
}

func TestParseJumpTargets(t *testing.T) {
    got := mustParse(t, "jump : 12\njump 3")
    assert.Equal(t, JumpStmt{Pos: Pos{1}, Type: "Jump", Target: 12}, got[0])
    assert.Equal(t, JumpStmt{Pos: Pos{2}, Type: "Jump", Target: 3}, got[1])
}

func TestParseFatalIntegers(t *testing.T) {
    cases := map[string]string{
        "jump : here":          "jump target",
        "jump : 2.5":           "jump target",
        "random : r, a, 3":     "random minimum",
        "random : r, 1, \"x\"": "random maximum",
        "random : r, 5, 1":     "random range is empty",
        "print : 1\njump :":    "jump target",
    }
    for src, msg := range cases {
        prog, err := Parse(src)
        require.Error(t, err, src)
        assert.True(t, errors.Is(err, ErrSyntax), src)
        assert.Contains(t, err.Error(), msg, src)
        assert.Empty(t, prog.Statements, "no partial program for %q", src)
    }
    var perr *Error
    _, err := Parse("print : 1\n\njump : x")
    require.ErrorAs(t, err, &perr)
    assert.Equal(t, 3, perr.Line)
}

// Unhandled tokens end the program quietly; the statements before them survive.
func TestParseTruncatesOnUnhandledToken(t *testing.T) {
    cases := map[string]int{
        "print : 1\n) print : 2":           1,
        "print : 1\nelse : print : 2":      1,
        "int 5 = 3\nprint : 1":             0,
        "print : 1\n; print : 2":           1,
        "print : -5\nprint : 2":            1,
        "input : \"x\", \"p\"\nprint : 1":  0,
        "len : n, \"a\"\nprint : 1":        0,
    }
    for src, n := range cases {
        prog, err := Parse(src)
        require.NoError(t, err, src)
        assert.Len(t, prog.Statements, n, src)
    }
}

func TestParseMissingOperandIsNil(t *testing.T) {
    got := mustParse(t, "print : 1 + )")
    require.Len(t, got, 1)
    in := got[0].(PrintStmt).Value.(InfixExpr)
    assert.Nil(t, in.Right)

    got = mustParse(t, "print :")
    require.Len(t, got, 1)
    assert.Nil(t, got[0].(PrintStmt).Value)
}

func TestParseLastDuplicateLineIsPreserved(t *testing.T) {
    got := mustParse(t, "print : 1 print : 2")
    require.Len(t, got, 2)
    assert.Equal(t, 1, got[0].SourceLine())
    assert.Equal(t, 1, got[1].SourceLine())
}

func TestProgramJSONShape(t *testing.T) {
    prog, err := Parse("int a = 1")
    require.NoError(t, err)
    b, err := json.Marshal(prog)
    require.NoError(t, err)
    assert.JSONEq(t, `{"statements":[{"line":1,"type":"Declaration","kind":"int","name":"a",
        "value":{"type":"Number","value":1}}],"type":"Program"}`, string(b))
}
