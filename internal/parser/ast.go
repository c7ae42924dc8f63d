package parser

// Ordered JSON fields are ensured by struct field order.

// Program is the root AST node.
type Program struct {
    Statements []Statement `json:"statements"`
    Type       string      `json:"type"`
}

// Statement is a top-level executable unit. SourceLine is the 1-based line
// of its first token and is the key jumps resolve against.
type Statement interface {
    isStatement()
    SourceLine() int
}

// Pos records the source line a statement starts on.
type Pos struct {
    Line int `json:"line"`
}

func (p Pos) SourceLine() int { return p.Line }

// Declaration covers int/str/float/array. Kind is not enforced at run time.
type Declaration struct {
    Pos
    Type  string `json:"type"`
    Kind  string `json:"kind"`
    Name  string `json:"name"`
    Value Expr   `json:"value"`
}
func (Declaration) isStatement() {}

type Assignment struct {
    Pos
    Type  string `json:"type"`
    Name  string `json:"name"`
    Value Expr   `json:"value"`
}
func (Assignment) isStatement() {}

type PrintStmt struct {
    Pos
    Type  string `json:"type"`
    Value Expr   `json:"value"`
}
func (PrintStmt) isStatement() {}

type InputStmt struct {
    Pos
    Type   string `json:"type"`
    Name   string `json:"name"`
    Prompt string `json:"prompt"`
}
func (InputStmt) isStatement() {}

type RandomStmt struct {
    Pos
    Type string `json:"type"`
    Name string `json:"name"`
    Min  int    `json:"min"`
    Max  int    `json:"max"`
}
func (RandomStmt) isStatement() {}

type ReadStmt struct {
    Pos
    Type string `json:"type"`
    Name string `json:"name"`
    File string `json:"file"`
}
func (ReadStmt) isStatement() {}

type LenStmt struct {
    Pos
    Type  string `json:"type"`
    Name  string `json:"name"`
    Array string `json:"array"`
}
func (LenStmt) isStatement() {}

// Branch is one arm of an if; Condition is nil for else.
type Branch struct {
    Condition Expr        `json:"condition"`
    Body      []Statement `json:"body"`
}

type IfStmt struct {
    Pos
    Type     string   `json:"type"`
    Branches []Branch `json:"branches"`
}
func (IfStmt) isStatement() {}

type JumpStmt struct {
    Pos
    Type   string `json:"type"`
    Target int    `json:"target"`
}
func (JumpStmt) isStatement() {}

type BreakStmt struct {
    Pos
    Type string `json:"type"`
}
func (BreakStmt) isStatement() {}

// Expr is a marker interface for expressions. A nil Expr is a missing operand.
type Expr interface{ isExpr() }

type NumberLit struct {
    Type  string  `json:"type"`
    Value float64 `json:"value"`
}
func (NumberLit) isExpr() {}

type StringLit struct {
    Type  string `json:"type"`
    Value string `json:"value"`
}
func (StringLit) isExpr() {}

type ArrayLit struct {
    Items []Expr `json:"items"`
    Type  string `json:"type"`
}
func (ArrayLit) isExpr() {}

// IndexExpr is name[index]; only variables can be indexed.
type IndexExpr struct {
    Index Expr   `json:"index"`
    Name  string `json:"name"`
    Type  string `json:"type"`
}
func (IndexExpr) isExpr() {}

type Identifier struct {
    Name string `json:"name"`
    Type string `json:"type"`
}
func (Identifier) isExpr() {}

type InfixExpr struct {
    Left     Expr   `json:"left"`
    Operator string `json:"operator"`
    Right    Expr   `json:"right"`
    Type     string `json:"type"`
}
func (InfixExpr) isExpr() {}
