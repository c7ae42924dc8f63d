package evaluator

import (
    crand "crypto/rand"
    "errors"
    "fmt"
    "io"
    "log"
    "math"
    "math/rand/v2"
    "os"
    "strconv"
    "strings"

    "github.com/go-git/go-billy/v5"
    "github.com/go-git/go-billy/v5/osfs"

    "github.com/derphilovic/sprout/internal/console"
    "github.com/derphilovic/sprout/internal/parser"
)

// LineReader supplies lines for input statements. It is responsible for
// showing the prompt.
type LineReader interface {
    ReadLine(prompt string) (string, error)
}

// Options wires the evaluator to its surroundings. Zero fields get defaults.
type Options struct {
    // Input reads input lines; defaults to plain reading from os.Stdin.
    Input LineReader
    // FS is where read statements open files; defaults to the OS file system.
    FS billy.Basic
    // Rand draws an integer uniformly from [lo, hi].
    Rand func(lo, hi int) int
    // Trace, when set, logs each executed statement.
    Trace *log.Logger
}

func (o *Options) normalize(w io.Writer) Options {
    var out Options
    if o != nil { out = *o }
    if out.Input == nil { out.Input = console.Plain(os.Stdin, w) }
    if out.FS == nil { out.FS = osfs.Default }
    if out.Rand == nil { out.Rand = entropyRand }
    return out
}

// Evaluator runs a parsed program against one flat variable store.
type Evaluator struct {
    out   io.Writer
    in    LineReader
    fs    billy.Basic
    rand  func(lo, hi int) int
    trace *log.Logger
    vars  map[string]Value
    line  int
}

func New(w io.Writer, opts *Options) *Evaluator {
    o := opts.normalize(w)
    return &Evaluator{out: w, in: o.Input, fs: o.FS, rand: o.Rand, trace: o.Trace, vars: map[string]Value{}}
}

// Lookup returns the current binding of name.
func (ev *Evaluator) Lookup(name string) (Value, bool) {
    v, ok := ev.vars[name]
    return v, ok
}

// Run executes statements in order, following jumps by source line, until
// the end of the program or a break. The first runtime error halts the run.
func (ev *Evaluator) Run(prog parser.Program) error {
    stmts := prog.Statements
    // a line shared by several statements resolves to the last of them
    index := make(map[int]int, len(stmts))
    for i, st := range stmts { index[st.SourceLine()] = i }

    for pc := 0; pc < len(stmts); {
        res, err := ev.exec(stmts[pc])
        if err != nil { return err }
        switch res.Signal {
        case SigBreak:
            return nil
        case SigJump:
            next, ok := index[res.Target]
            if !ok {
                return &RuntimeError{Line: ev.line, Msg: fmt.Sprintf("cannot jump to line %d - line not found", res.Target), Err: ErrJump}
            }
            pc = next
        default:
            pc++
        }
    }
    return nil
}

func (ev *Evaluator) fail(kind error, format string, args ...any) error {
    return &RuntimeError{Line: ev.line, Msg: fmt.Sprintf(format, args...), Err: kind}
}

func (ev *Evaluator) exec(st parser.Statement) (ExecResult, error) {
    ev.line = st.SourceLine()
    if ev.trace != nil { ev.trace.Printf("line %d: %s", ev.line, strings.TrimPrefix(fmt.Sprintf("%T", st), "parser.")) }

    switch s := st.(type) {
    case parser.Declaration:
        v, err := ev.evalExpr(s.Value)
        if err != nil { return resultNone, err }
        ev.vars[s.Name] = v
    case parser.Assignment:
        v, err := ev.evalExpr(s.Value)
        if err != nil { return resultNone, err }
        ev.vars[s.Name] = v
    case parser.PrintStmt:
        v, err := ev.evalExpr(s.Value)
        if err != nil { return resultNone, err }
        fmt.Fprintln(ev.out, Format(v))
    case parser.InputStmt:
        return resultNone, ev.execInput(s)
    case parser.RandomStmt:
        ev.vars[s.Name] = Num{V: float64(ev.rand(s.Min, s.Max))}
    case parser.ReadStmt:
        return resultNone, ev.execRead(s)
    case parser.LenStmt:
        v, ok := ev.vars[s.Array]
        if !ok { return resultNone, ev.fail(ErrUndefined, "undefined variable: %s", s.Array) }
        arr, ok := v.(Array)
        if !ok { return resultNone, ev.fail(ErrType, "variable %s is not an array", s.Array) }
        ev.vars[s.Name] = Num{V: float64(len(arr.Items))}
    case parser.IfStmt:
        return ev.execIf(s)
    case parser.JumpStmt:
        return ExecResult{Signal: SigJump, Target: s.Target}, nil
    case parser.BreakStmt:
        return ExecResult{Signal: SigBreak}, nil
    default:
        return resultNone, fmt.Errorf("unknown statement type %T", st)
    }
    return resultNone, nil
}

// execIf runs the first matching branch in place. A jump or break inside the
// body stops the remaining body statements and propagates to Run.
func (ev *Evaluator) execIf(s parser.IfStmt) (ExecResult, error) {
    for _, br := range s.Branches {
        if br.Condition != nil {
            c, err := ev.evalExpr(br.Condition)
            if err != nil { return resultNone, err }
            if !isTruthy(c) { continue }
        }
        for _, st := range br.Body {
            res, err := ev.exec(st)
            if err != nil || res.Signal != SigNone { return res, err }
        }
        return resultNone, nil
    }
    return resultNone, nil
}

func (ev *Evaluator) execInput(s parser.InputStmt) error {
    line, err := ev.in.ReadLine(s.Prompt)
    if err != nil && !errors.Is(err, io.EOF) {
        return ev.fail(ErrInput, "input %s: %v", s.Name, err)
    }
    if _, numeric := ev.vars[s.Name].(Num); numeric {
        f, perr := strconv.ParseFloat(strings.TrimSpace(line), 64)
        if perr != nil { return ev.fail(ErrInput, "input %s: %q is not a number", s.Name, line) }
        ev.vars[s.Name] = Num{V: f}
        return nil
    }
    ev.vars[s.Name] = Str{V: line}
    return nil
}

func (ev *Evaluator) execRead(s parser.ReadStmt) error {
    f, err := ev.fs.Open(s.File)
    if err != nil { return ev.fail(ErrFile, "cannot open file %s: %v", s.File, err) }
    defer f.Close()
    data, err := io.ReadAll(f)
    if err != nil { return ev.fail(ErrFile, "cannot read file %s: %v", s.File, err) }
    ev.vars[s.Name] = Array{Items: splitLines(string(data))}
    return nil
}

func (ev *Evaluator) evalExpr(e parser.Expr) (Value, error) {
    switch ex := e.(type) {
    case nil:
        return nil, ev.fail(ErrOperand, "missing operand")
    case parser.NumberLit:
        return Num{V: ex.Value}, nil
    case parser.StringLit:
        return Str{V: ex.Value}, nil
    case parser.ArrayLit:
        items := make([]Value, 0, len(ex.Items))
        for _, it := range ex.Items {
            v, err := ev.evalExpr(it)
            if err != nil { return nil, err }
            // arrays do not nest; an inner array is kept as its printed form
            if arr, ok := v.(Array); ok { v = Str{V: arr.repr()} }
            items = append(items, v)
        }
        return Array{Items: items}, nil
    case parser.IndexExpr:
        v, ok := ev.vars[ex.Name]
        if !ok { return nil, ev.fail(ErrUndefined, "undefined array: %s", ex.Name) }
        arr, ok := v.(Array)
        if !ok { return nil, ev.fail(ErrType, "variable %s is not an array", ex.Name) }
        iv, err := ev.evalExpr(ex.Index)
        if err != nil { return nil, err }
        n, ok := iv.(Num)
        if !ok { return nil, ev.fail(ErrType, "array index must be a number, found %s", typeName(iv)) }
        i := math.Trunc(n.V)
        if !(i >= 0 && i < float64(len(arr.Items))) {
            return nil, ev.fail(ErrIndex, "array index out of bounds: %s (length %d)", formatNumber(i), len(arr.Items))
        }
        return arr.Items[int(i)], nil
    case parser.Identifier:
        v, ok := ev.vars[ex.Name]
        if !ok { return nil, ev.fail(ErrUndefined, "undefined variable: %s", ex.Name) }
        return v, nil
    case parser.InfixExpr:
        l, err := ev.evalExpr(ex.Left)
        if err != nil { return nil, err }
        r, err := ev.evalExpr(ex.Right)
        if err != nil { return nil, err }
        return binary(ex.Operator, l, r), nil
    default:
        return nil, fmt.Errorf("unknown expression type %T", e)
    }
}

// entropyRand reseeds from system entropy on every draw.
func entropyRand(lo, hi int) int {
    var seed [32]byte
    _, _ = crand.Read(seed[:])
    r := rand.New(rand.NewChaCha8(seed))
    // the unsigned span cannot wrap to zero: bounds come from parsed literals
    return lo + int(r.Uint64N(uint64(hi-lo)+1))
}
