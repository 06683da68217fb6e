// Package parser groups a token stream into statements and hands each
// matched statement to the handler registered for its shape.
package parser

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

var (
	// ErrNoMatch is returned when no registered statement accepts a line.
	ErrNoMatch = errors.New("no statement matches")
	// ErrRejected is returned by a handler that declines a matched line so
	// that later statements may try it.
	ErrRejected = errors.New("statement rejected")
)

// Word is one slot of a statement.
type Word struct {
	Name string
	// Types are tried in order; the first one that accepts the lexeme classifies it.
	Types []TokenType
	// Filters further restrict the classified token.
	Filters []func(Token) bool
}

// NewWord returns a Word accepting any of types.
func NewWord(name string, types ...TokenType) Word {
	return Word{Name: name, Types: types}
}

// Where returns a copy of w that also requires f.
func (w Word) Where(f func(Token) bool) Word {
	w.Filters = append(append([]func(Token) bool{}, w.Filters...), f)
	return w
}

func (w Word) match(text string, line int) (Token, bool) {
	for _, t := range w.Types {
		if !t.Check(text) {
			continue
		}
		tok := Token{Type: t.Name, Data: text, Line: line}
		ok := true
		for _, f := range w.Filters {
			if !f(tok) {
				ok = false
				break
			}
		}
		if ok {
			return tok, true
		}
	}
	return Token{}, false
}

// Statement is a sequence of words forming one statement shape.
type Statement struct {
	Name  string
	Words []Word
}

// NewStatement returns a Statement made of words.
func NewStatement(name string, words ...Word) Statement {
	return Statement{Name: name, Words: words}
}

func (s Statement) match(l Line) ([]Token, bool) {
	if len(l.Lexemes) != len(s.Words) {
		return nil, false
	}
	toks := make([]Token, len(s.Words))
	for i, w := range s.Words {
		tok, ok := w.match(l.Lexemes[i], l.Number)
		if !ok {
			return nil, false
		}
		toks[i] = tok
	}
	return toks, true
}

// Handler receives the classified tokens of a matched statement.
type Handler func(tokens []Token) error

type rule struct {
	stmt    Statement
	handler Handler
}

// Parser matches lines against registered statements in registration order.
type Parser struct {
	rules []rule
}

// New returns an empty Parser.
func New() *Parser {
	return &Parser{}
}

// Register adds a statement shape and its handler.
func (p *Parser) Register(stmt Statement, h Handler) {
	p.rules = append(p.rules, rule{stmt: stmt, handler: h})
}

// Run handles every line in order and stops at the first error.
func (p *Parser) Run(lines []Line) error {
	for _, l := range lines {
		if err := p.runLine(l); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) runLine(l Line) error {
	var rejected error
	for _, r := range p.rules {
		toks, ok := r.stmt.match(l)
		if !ok {
			continue
		}
		glog.V(2).Infof("line %d matches %s", l.Number, r.stmt.Name)
		err := r.handler(toks)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRejected) {
			return err
		}
		rejected = err
	}
	if rejected != nil {
		return rejected
	}
	return fmt.Errorf("line %d: %w: %v", l.Number, ErrNoMatch, l.Lexemes)
}
