package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/katasm/isa"
	"github.com/Urethramancer/katasm/parser"
)

// Token type names.
const (
	TokenIdentifier = "Identifier"
	TokenLabel      = "Label"
	TokenAlias      = "Alias"
	TokenHexval     = "Hexval"
	TokenAffect     = "Affect"
	// TokenSymbol is a bare identifier that is not also a hex literal. In
	// operand position it names an alias; after jmpl or cjmpl it names a label.
	TokenSymbol = "Symbol"
)

var (
	identifier = parser.TokenType{Name: TokenIdentifier, Check: isIdentifier}
	label      = parser.TokenType{Name: TokenLabel, Check: func(s string) bool {
		return strings.HasPrefix(s, ":") && isIdentifier(s[1:])
	}}
	alias = parser.TokenType{Name: TokenAlias, Check: func(s string) bool {
		return strings.HasPrefix(s, "$") && isIdentifier(s[1:])
	}}
	affect = parser.TokenType{Name: TokenAffect, Check: func(s string) bool { return s == "=" }}
	hexval = parser.TokenType{Name: TokenHexval, Check: isHexval}
	symbol = parser.TokenType{Name: TokenSymbol, Check: func(s string) bool {
		return isIdentifier(s) && !isHexval(s)
	}}
)

// grammar builds the tokenizer and the six statement shapes, wired to Handle.
func (asm *Assembler) grammar() (*parser.Tokenizer, *parser.Parser) {
	tk := parser.NewTokenizer(label, alias, identifier, affect, hexval)

	mnemonic := parser.NewWord("Mnemonic", identifier)
	jump := parser.NewWord("Jump", identifier).Where(func(t parser.Token) bool {
		op, ok := isa.Lookup(t.Data)
		return ok && op.Jump
	})
	aliasName := parser.NewWord("Alias", alias)
	affectOp := parser.NewWord("Affect", affect)
	operand := parser.NewWord("Operand", hexval, alias, symbol)
	literal := parser.NewWord("Literal", hexval)
	labelName := parser.NewWord("Label", label)
	target := parser.NewWord("Target", label, symbol)

	ps := parser.New()
	ps.Register(parser.NewStatement("Alias", aliasName, affectOp, literal), func(t []parser.Token) error {
		return asm.dispatch(AliasDef{Name: t[0].Data[1:], Value: t[2].Data}, t[0].Line)
	})
	ps.Register(parser.NewStatement("Label", labelName), func(t []parser.Token) error {
		return asm.dispatch(LabelDef{Name: t[0].Data[1:]}, t[0].Line)
	})
	ps.Register(parser.NewStatement("0OpFct", mnemonic), func(t []parser.Token) error {
		return asm.dispatch(ZeroOp{Mnemonic: t[0].Data}, t[0].Line)
	})
	ps.Register(parser.NewStatement("Jmp2Lbl", jump, target), func(t []parser.Token) error {
		return asm.dispatch(JumpToLabel{Mnemonic: t[0].Data, Label: strings.TrimPrefix(t[1].Data, ":")}, t[0].Line)
	})
	ps.Register(parser.NewStatement("Std1OpFct", mnemonic, operand), func(t []parser.Token) error {
		return asm.dispatch(OneOp{Mnemonic: t[0].Data, Operand: toOperand(t[1])}, t[0].Line)
	})
	ps.Register(parser.NewStatement("Std2OpFct", mnemonic, operand, operand), func(t []parser.Token) error {
		return asm.dispatch(TwoOp{Mnemonic: t[0].Data, A: toOperand(t[1]), B: toOperand(t[2])}, t[0].Line)
	})
	return tk, ps
}

// dispatch hands a statement to Handle. A shape mismatch is reported as a
// rejection so the parser can offer the line to the remaining shapes.
func (asm *Assembler) dispatch(stmt Statement, line int) error {
	err := asm.Handle(stmt, line)
	if errors.Is(err, ErrShapeMismatch) {
		return fmt.Errorf("%w (%w)", err, parser.ErrRejected)
	}
	return err
}

func toOperand(t parser.Token) Operand {
	switch t.Type {
	case TokenAlias:
		return AliasRef(t.Data[1:])
	case TokenSymbol:
		return AliasRef(t.Data)
	}
	return Literal(t.Data)
}
