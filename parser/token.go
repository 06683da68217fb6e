package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadToken is returned for a lexeme no registered token type accepts.
var ErrBadToken = errors.New("unrecognised token")

// TokenType classifies lexemes.
type TokenType struct {
	Name  string
	Check func(text string) bool
}

// Token is a lexeme after a grammar word has classified it.
type Token struct {
	Type string
	Data string
	Line int
}

// Line is one logical source line split into lexemes.
type Line struct {
	Number  int
	Lexemes []string
}

// Tokenizer splits source into lines of lexemes.
type Tokenizer struct {
	types []TokenType
}

// NewTokenizer returns a Tokenizer that accepts lexemes matching any of types.
func NewTokenizer(types ...TokenType) *Tokenizer {
	return &Tokenizer{types: types}
}

// AddType registers another token type.
func (tk *Tokenizer) AddType(t TokenType) {
	tk.types = append(tk.types, t)
}

// Tokenize splits src into non-empty lines. Comments start with ';' or '#'.
func (tk *Tokenizer) Tokenize(src string) ([]Line, error) {
	var lines []Line
	for i, raw := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if idx := strings.IndexAny(raw, ";#"); idx != -1 {
			raw = raw[:idx]
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		for _, f := range fields {
			if !tk.known(f) {
				return nil, fmt.Errorf("line %d: %w: %q", i+1, ErrBadToken, f)
			}
		}
		lines = append(lines, Line{Number: i + 1, Lexemes: fields})
	}
	return lines, nil
}

func (tk *Tokenizer) known(text string) bool {
	for _, t := range tk.types {
		if t.Check(text) {
			return true
		}
	}
	return false
}
