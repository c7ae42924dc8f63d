package lexer

// Token kinds. Keywords use their upper-cased word, symbols use their own text.
const (
    EOF     = "EOF"
    ID      = "ID"
    NUM     = "NUM"
    STRING  = "STRING"
    UNKNOWN = "UNKNOWN"
)

type Token struct {
    Type string
    Lit  string
    Line int
}

var keywords = map[string]string{
    "int":    "INT",
    "str":    "STR",
    "float":  "FLOAT",
    "array":  "ARRAY",
    "print":  "PRINT",
    "input":  "INPUT",
    "if":     "IF",
    "else":   "ELSE",
    "jump":   "JUMP",
    "break":  "BREAK",
    "random": "RANDOM",
    "read":   "READ",
    "len":    "LEN",
}

// Lex converts source into a flat token stream terminated by exactly one EOF token.
// It never fails: characters it does not recognise become UNKNOWN tokens.
func Lex(src string) []Token {
    var out []Token
    i := 0
    n := len(src)
    line := 1

    // helper to peek ahead; returns 0 if out of bounds
    peek := func(off int) byte {
        j := i + off
        if j >= n || j < 0 {
            return 0
        }
        return src[j]
    }

    advance := func() byte {
        c := src[i]
        i++
        if c == '\n' { line++ }
        return c
    }

    emit := func(typ, lit string, at int) { out = append(out, Token{Type: typ, Lit: lit, Line: at}) }

    for {
        // whitespace and // comments alternate until neither applies
        for i < n {
            if isSpace(src[i]) { advance(); continue }
            if src[i] == '/' && peek(1) == '/' {
                for i < n && src[i] != '\n' { advance() }
                continue
            }
            break
        }
        if i >= n { break }

        start := line
        ch := src[i]

        if isAlpha(ch) {
            from := i
            for i < n && isAlnum(src[i]) { advance() }
            word := src[from:i]
            if kw, ok := keywords[word]; ok {
                emit(kw, word, start)
            } else {
                emit(ID, word, start)
            }
            continue
        }

        // Numbers: digits with an optional '.' only when a digit follows it
        if isDigit(ch) {
            from := i
            for i < n && isDigit(src[i]) { advance() }
            if i < n && src[i] == '.' && isDigit(peek(1)) {
                advance()
                for i < n && isDigit(src[i]) { advance() }
            }
            emit(NUM, src[from:i], start)
            continue
        }

        // Strings are taken verbatim up to the closing quote or end of input
        if ch == '"' {
            advance()
            from := i
            for i < n && src[i] != '"' { advance() }
            lit := src[from:i]
            if i < n { advance() }
            emit(STRING, lit, start)
            continue
        }

        two := func(a, b byte) bool {
            if ch == a && peek(1) == b {
                emit(src[i:i+2], src[i:i+2], start)
                advance(); advance()
                return true
            }
            return false
        }
        if two('=', '=') || two('!', '=') || two('<', '=') || two('>', '=') {
            continue
        }

        switch ch {
        case '+', '-', '*', '/', '=', '<', '>', '(', ')', '{', '}', '[', ']', ':', ',', ';':
            emit(string(ch), string(ch), start)
        default:
            // includes a lone '!': there is no unary not
            emit(UNKNOWN, string(ch), start)
        }
        advance()
    }

    emit(EOF, "", line)
    return out
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }
