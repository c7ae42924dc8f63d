package evaluator

import (
    "errors"
    "fmt"
)

var (
    ErrUndefined = errors.New("undefined variable")
    ErrType      = errors.New("type mismatch")
    ErrIndex     = errors.New("index out of bounds")
    ErrJump      = errors.New("jump target not found")
    ErrFile      = errors.New("file error")
    ErrInput     = errors.New("input error")
    ErrOperand   = errors.New("missing operand")
)

// RuntimeError halts a run. Line is the statement being executed.
type RuntimeError struct {
    Line int
    Msg  string
    Err  error
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Msg) }
func (e *RuntimeError) Unwrap() error { return e.Err }

// Signal is the control transfer a statement requests from the run loop.
type Signal int

const (
    SigNone  Signal = iota
    SigJump         // resume at the statement declared on Target
    SigBreak        // stop the run successfully
)

// ExecResult carries a control signal and, for jumps, the target line.
type ExecResult struct {
    Signal Signal
    Target int
}

var resultNone = ExecResult{Signal: SigNone}
