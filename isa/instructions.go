package isa

import (
	"sort"
	"strconv"
)

// Form defines how an instruction's operands are laid out after the opcode.
type Form int

const (
	// FormNone takes no operands; the template is the whole word.
	FormNone Form = iota
	// FormRegisterDecimal takes one register, inserted after three zero nibbles without padding.
	FormRegisterDecimal
	// FormLiteral takes one 4-digit literal.
	FormLiteral
	// FormRegister takes one register as a single hex digit after three zero nibbles.
	FormRegister
	// FormRegisterPair takes two registers, each as 0 followed by one hex digit.
	FormRegisterPair
	// FormRegisterLiteral takes a register appended to the opcode and a 4-digit literal.
	FormRegisterLiteral
)

// String returns the form name.
func (f Form) String() string {
	switch f {
	case FormNone:
		return "none"
	case FormRegisterDecimal:
		return "register-decimal"
	case FormLiteral:
		return "literal"
	case FormRegister:
		return "register"
	case FormRegisterPair:
		return "register-pair"
	case FormRegisterLiteral:
		return "register-literal"
	}
	return "form(" + strconv.Itoa(int(f)) + ")"
}

// Arity is the number of operands the form takes.
func (f Form) Arity() int {
	switch f {
	case FormNone:
		return 0
	case FormRegisterPair, FormRegisterLiteral:
		return 2
	default:
		return 1
	}
}

// Opcode is one entry of the instruction table.
type Opcode struct {
	Mnemonic string
	// Template is the opcode text before operand fields are filled in.
	Template string
	Form     Form
	// Jump marks the instructions that may take a label operand.
	Jump bool
}

// Arity is the number of operands the instruction takes.
func (o Opcode) Arity() int {
	return o.Form.Arity()
}

// Opcodes for every KatAsm instruction.
var opcodes = map[string]Opcode{
	// Flow
	"cjmpl": {Template: "18", Form: FormLiteral, Jump: true},
	"jmpl":  {Template: "10", Form: FormLiteral, Jump: true},
	"cjmpc": {Template: "19 0000", Form: FormNone},
	"jmpc":  {Template: "11 0000", Form: FormNone},
	"halt":  {Template: "1F 0000", Form: FormNone},
	"cjmpr": {Template: "1A", Form: FormRegisterDecimal},
	"jmpr":  {Template: "12", Form: FormRegisterDecimal},

	// Cache
	"sca": {Template: "20", Form: FormLiteral},
	"wcl": {Template: "21", Form: FormLiteral},
	"wcr": {Template: "22", Form: FormRegister},
	"ctr": {Template: "23", Form: FormRegister},

	// Registers
	"wrl": {Template: "3", Form: FormRegisterLiteral},

	// ALU
	"eqr":  {Template: "42", Form: FormRegisterPair},
	"neqr": {Template: "43", Form: FormRegisterPair},
	"gtr":  {Template: "44", Form: FormRegisterPair},
	"ngtr": {Template: "45", Form: FormRegisterPair},
	"ger":  {Template: "46", Form: FormRegisterPair},
	"nger": {Template: "47", Form: FormRegisterPair},
	"sumr": {Template: "48", Form: FormRegisterPair},
	"subr": {Template: "49", Form: FormRegisterPair},
	"incr": {Template: "4A", Form: FormRegister},
	"decr": {Template: "4B", Form: FormRegister},
	"atr":  {Template: "4E", Form: FormRegister},
	"atc":  {Template: "4F 0000", Form: FormNone},

	"nop": {Template: "00 0000", Form: FormNone},
}

// byOpcode maps the first byte of a word back to its instruction.
var byOpcode = map[byte]Opcode{}

func init() {
	for mn, op := range opcodes {
		op.Mnemonic = mn
		opcodes[mn] = op
		if op.Form == FormRegisterLiteral {
			continue
		}
		v, err := strconv.ParseUint(op.Template[:2], 16, 8)
		if err != nil {
			panic("isa: bad template for " + mn)
		}
		byOpcode[byte(v)] = op
	}
}

// Lookup returns the table entry for a mnemonic.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodes[mnemonic]
	return op, ok
}

// Decode returns the instruction whose opcode occupies the first byte of a word.
// Any byte with a high nibble of 3 is wrl, the low nibble being its register.
func Decode(b byte) (Opcode, bool) {
	if b>>4 == 3 {
		return opcodes["wrl"], true
	}
	op, ok := byOpcode[b]
	return op, ok
}

// Mnemonics returns every mnemonic in the table, sorted.
func Mnemonics() []string {
	list := make([]string, 0, len(opcodes))
	for mn := range opcodes {
		list = append(list, mn)
	}
	sort.Strings(list)
	return list
}
