package assembler

import (
	"fmt"

	"github.com/Urethramancer/katasm/isa"
)

// Encoding is the output of one instruction.
type Encoding struct {
	// Code is the line appended to the assembled code.
	Code string
	// View is the encoding as shown in the trace.
	View string
	// Text describes the instruction in the trace.
	Text string
}

var zeroOpText = map[string]string{
	"nop":   "No operation",
	"jmpc":  "Jump to cache value",
	"cjmpc": "Jump conditionally to cache value",
	"atc":   "ALU to cache",
	"halt":  "Halt",
}

func lookup(mnemonic string, arity int) (isa.Opcode, error) {
	op, ok := isa.Lookup(mnemonic)
	if !ok {
		return op, fmt.Errorf("%w: %s", ErrUnknownMnemonic, mnemonic)
	}
	if op.Arity() != arity {
		return op, fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrShapeMismatch, mnemonic, op.Arity(), arity)
	}
	return op, nil
}

func jumpText(mnemonic, target string) string {
	if mnemonic[0] == 'c' {
		return "Jump conditionally to " + target
	}
	return "Jump to " + target
}

func (asm *Assembler) encodeZeroOp(s ZeroOp) (Encoding, error) {
	op, err := lookup(s.Mnemonic, 0)
	if err != nil {
		return Encoding{}, err
	}
	text, ok := zeroOpText[op.Mnemonic]
	if !ok {
		return Encoding{}, fmt.Errorf("%w: %s", ErrShapeMismatch, s.Mnemonic)
	}
	return Encoding{Code: op.Template, View: op.Template, Text: text}, nil
}

func (asm *Assembler) encodeOneOp(s OneOp) (Encoding, error) {
	op, err := lookup(s.Mnemonic, 1)
	if err != nil {
		return Encoding{}, err
	}
	v, err := asm.resolveOperand(s.Operand)
	if err != nil {
		return Encoding{}, err
	}

	var code, text string
	switch op.Form {
	case isa.FormRegisterDecimal:
		code = fmt.Sprintf("%s 000%d", op.Template, v)
		text = jumpText(op.Mnemonic, fmt.Sprintf("register %d value", v))
	case isa.FormLiteral:
		code = fmt.Sprintf("%s %04X", op.Template, v)
		switch op.Mnemonic {
		case "jmpl", "cjmpl":
			text = jumpText(op.Mnemonic, fmt.Sprintf("literal %04X", v))
		case "sca":
			text = fmt.Sprintf("Set cache address to literal %04X", v)
		case "wcl":
			text = fmt.Sprintf("Write literal %04X to cache", v)
		default:
			return Encoding{}, fmt.Errorf("%w: %s", ErrShapeMismatch, s.Mnemonic)
		}
	case isa.FormRegister:
		code = fmt.Sprintf("%s 000%01X", op.Template, v)
		switch op.Mnemonic {
		case "wcr":
			text = fmt.Sprintf("Write register to cache using register %X", v)
		case "ctr":
			text = fmt.Sprintf("Write cache to register using register %X", v)
		case "atr":
			text = fmt.Sprintf("Write ALU result to register %X", v)
		case "incr":
			text = fmt.Sprintf("Increment register %X through ALU", v)
		case "decr":
			text = fmt.Sprintf("Decrement register %X through ALU", v)
		default:
			return Encoding{}, fmt.Errorf("%w: %s", ErrShapeMismatch, s.Mnemonic)
		}
	default:
		return Encoding{}, fmt.Errorf("%w: %s", ErrShapeMismatch, s.Mnemonic)
	}
	return Encoding{Code: code, View: code, Text: text}, nil
}

func (asm *Assembler) encodeTwoOp(s TwoOp) (Encoding, error) {
	op, err := lookup(s.Mnemonic, 2)
	if err != nil {
		return Encoding{}, err
	}
	a, err := asm.resolveOperand(s.A)
	if err != nil {
		return Encoding{}, err
	}
	b, err := asm.resolveOperand(s.B)
	if err != nil {
		return Encoding{}, err
	}

	var code, text string
	switch op.Form {
	case isa.FormRegisterPair:
		code = fmt.Sprintf("%s 0%01X0%01X", op.Template, a, b)
		text = fmt.Sprintf("ALU operation %s between registers %X and %X", op.Mnemonic, a, b)
	case isa.FormRegisterLiteral:
		code = fmt.Sprintf("%s%01X %04X", op.Template, a, b)
		text = fmt.Sprintf("Write literal %04X in register %X", b, a)
	default:
		return Encoding{}, fmt.Errorf("%w: %s", ErrShapeMismatch, s.Mnemonic)
	}
	return Encoding{Code: code, View: code, Text: text}, nil
}

// encodeJump emits the label name in place of the address; Resolve rewrites it.
func (asm *Assembler) encodeJump(s JumpToLabel) (Encoding, error) {
	op, err := lookup(s.Mnemonic, 1)
	if err != nil {
		return Encoding{}, err
	}
	if !op.Jump {
		return Encoding{}, fmt.Errorf("%w: %s cannot take a label", ErrShapeMismatch, s.Mnemonic)
	}
	return Encoding{
		Code: op.Template + " " + s.Label,
		View: op.Template + " XXXX",
		Text: jumpText(op.Mnemonic, "label "+s.Label),
	}, nil
}
