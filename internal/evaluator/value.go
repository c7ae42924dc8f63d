package evaluator

import (
    "math"
    "strconv"
    "strings"
)

// Value system. Array elements are always Num or Str.
type Value interface{ repr() string }

type (
    Num   struct{ V float64 }
    Str   struct{ V string }
    Array struct{ Items []Value }
)

func (v Num) repr() string { return formatNumber(v.V) }
func (v Str) repr() string { return v.V }
func (v Array) repr() string {
    var b strings.Builder
    b.WriteByte('[')
    for i, it := range v.Items {
        if i > 0 { b.WriteString(", ") }
        b.WriteString(it.repr())
    }
    b.WriteByte(']')
    return b.String()
}

// Format produces the printed representation used by print and by string
// concatenation.
func Format(v Value) string { return v.repr() }

// whole numbers print without a decimal point, everything else as the
// shortest decimal that round-trips
func formatNumber(f float64) string {
    switch {
    case math.IsNaN(f):
        return "nan"
    case math.IsInf(f, 1):
        return "inf"
    case math.IsInf(f, -1):
        return "-inf"
    case f == 0:
        return "0"
    }
    return strconv.FormatFloat(f, 'f', -1, 64)
}

func isTruthy(v Value) bool {
    switch x := v.(type) {
    case Num: return x.V != 0
    case Str: return x.V != ""
    default: return false
    }
}

func typeName(v Value) string {
    switch v.(type) {
    case Num: return "number"
    case Str: return "string"
    case Array: return "array"
    default: return "unknown"
    }
}

// binary applies an infix operator. Numbers get arithmetic and comparisons
// (1 or 0); otherwise + concatenates the printed forms and every other
// combination yields 0.
func binary(op string, l, r Value) Value {
    if x, ok := l.(Num); ok {
        if y, ok := r.(Num); ok {
            switch op {
            case "+": return Num{V: x.V + y.V}
            case "-": return Num{V: x.V - y.V}
            case "*": return Num{V: x.V * y.V}
            case "/": return Num{V: x.V / y.V}
            case "<": return boolNum(x.V < y.V)
            case ">": return boolNum(x.V > y.V)
            case "<=": return boolNum(x.V <= y.V)
            case ">=": return boolNum(x.V >= y.V)
            case "==": return boolNum(x.V == y.V)
            case "!=": return boolNum(x.V != y.V)
            }
        }
    }
    if op == "+" {
        return Str{V: Format(l) + Format(r)}
    }
    return Num{V: 0}
}

func boolNum(b bool) Num {
    if b { return Num{V: 1} }
    return Num{V: 0}
}

// splitLines mirrors line-oriented reading: a trailing newline does not
// start another line and '\r' is kept.
func splitLines(s string) []Value {
    items := []Value{}
    if s == "" { return items }
    parts := strings.Split(s, "\n")
    if parts[len(parts)-1] == "" { parts = parts[:len(parts)-1] }
    for _, p := range parts { items = append(items, Str{V: p}) }
    return items
}
