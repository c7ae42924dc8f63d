package main

import (
    "os"
    "path/filepath"
    "strings"

    "github.com/pkg/errors"
)

// candidates collects script paths from the arguments: @file:<path> entries
// and plain paths, skipping other @ markers. With none, fallback is used.
func candidates(args []string, fallback []string) []string {
    var out []string
    for _, a := range args {
        switch {
        case strings.HasPrefix(a, "@file:"):
            out = append(out, strings.TrimPrefix(a, "@file:"))
        case a != "" && a[0] != '@':
            out = append(out, a)
        }
    }
    if len(out) == 0 { out = append(out, fallback...) }
    return out
}

// resolveUpwards looks for rel in dir and up to depth of its parents,
// returning rel unchanged when nothing exists.
func resolveUpwards(dir, rel string, depth int) string {
    if filepath.IsAbs(rel) { return rel }
    for i := 0; i <= depth; i++ {
        p := filepath.Join(dir, rel)
        if _, err := os.Stat(p); err == nil { return p }
        parent := filepath.Dir(dir)
        if parent == dir { break }
        dir = parent
    }
    return rel
}

// loadScript reads the first candidate that can be opened.
func loadScript(cwd string, cands []string, depth int) (string, string, error) {
    for _, c := range cands {
        p := resolveUpwards(cwd, c, depth)
        data, err := os.ReadFile(p)
        if err == nil { return p, string(data), nil }
    }
    return "", "", errors.Errorf("failed to open file, tried: %s", strings.Join(cands, " "))
}
