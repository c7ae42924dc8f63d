package main

import (
    "bufio"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "os"
    "path/filepath"

    "github.com/pkg/errors"

    "github.com/derphilovic/sprout/internal/config"
    "github.com/derphilovic/sprout/internal/console"
    "github.com/derphilovic/sprout/internal/evaluator"
    "github.com/derphilovic/sprout/internal/lexer"
    "github.com/derphilovic/sprout/internal/parser"
)

type tokenOut struct {
    Type  string `json:"type"`
    Value string `json:"value"`
    Line  int    `json:"line"`
}

// app holds the process surroundings so commands can be driven from tests.
type app struct {
    stdin  io.Reader
    stdout io.Writer
    log    *log.Logger
    cfg    config.Config
}

func (a *app) printTokens(src string) error {
    enc := json.NewEncoder(a.stdout)
    enc.SetEscapeHTML(false)
    for _, t := range lexer.Lex(src) {
        if err := enc.Encode(tokenOut{Type: t.Type, Value: t.Lit, Line: t.Line}); err != nil {
            return err
        }
    }
    return nil
}

func (a *app) printAST(src string) error {
    prog, err := parser.Parse(src)
    if err != nil { return errors.Wrap(err, "parse") }
    w := bufio.NewWriter(a.stdout)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "  ")
    if err := enc.Encode(prog); err != nil { return err }
    return w.Flush()
}

func (a *app) runProgram(src string) error {
    prog, err := parser.Parse(src)
    if err != nil { return errors.Wrap(err, "parse") }

    session := console.Open(a.cfg.Input, a.stdin, a.stdout, a.cfg.History)
    defer session.Close()

    opts := &evaluator.Options{Input: session}
    if a.cfg.Trace { opts.Trace = log.New(a.log.Writer(), "trace: ", 0) }
    return evaluator.New(a.stdout, opts).Run(prog)
}

func usage(w io.Writer, prog string) {
    fmt.Fprintf(w, "Usage: %s [run|tokens|ast] [@file:<path>|<path>]...\n", filepath.Base(prog))
}

// run executes one command and returns the process exit status.
func (a *app) run(prog string, args []string, cwd string) int {
    cmd := "run"
    if len(args) > 0 {
        switch args[0] {
        case "run", "tokens", "ast":
            cmd, args = args[0], args[1:]
        case "help", "-h", "--help":
            usage(a.stdout, prog)
            return 0
        }
    }

    cands := candidates(args, a.cfg.Scripts)
    path, src, err := loadScript(cwd, cands, a.cfg.SearchDepth)
    if err != nil {
        a.log.Println(err)
        return 1
    }

    switch cmd {
    case "tokens":
        err = a.printTokens(src)
    case "ast":
        err = a.printAST(src)
    default:
        err = a.runProgram(src)
    }
    if err != nil {
        a.log.Printf("%s: %v", path, err)
        return 1
    }
    return 0
}

func main() {
    logger := log.New(os.Stderr, "sprout: ", 0)
    cwd, err := os.Getwd()
    if err != nil { logger.Fatalf("working directory: %v", err) }
    cfg, _, err := config.Discover(os.Getenv, cwd)
    if err != nil { logger.Fatal(err) }

    a := &app{stdin: os.Stdin, stdout: os.Stdout, log: logger, cfg: cfg}
    os.Exit(a.run(os.Args[0], os.Args[1:], cwd))
}
