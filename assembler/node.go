package assembler

// Kind identifies a statement shape.
type Kind int

const (
	// KindAlias is `$name = value`.
	KindAlias Kind = iota
	// KindLabel is `:name`.
	KindLabel
	// KindZeroOp is a bare mnemonic.
	KindZeroOp
	// KindOneOp is a mnemonic with one operand.
	KindOneOp
	// KindTwoOp is a mnemonic with two operands.
	KindTwoOp
	// KindJumpToLabel is jmpl or cjmpl with a label operand.
	KindJumpToLabel
)

var kindNames = [...]string{"alias", "label", "zero-operand", "one-operand", "two-operand", "jump-to-label"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Statement is one recognised source statement. The set of implementations is closed.
type Statement interface {
	Kind() Kind
	statement()
}

// OperandKind says how an operand's value is found.
type OperandKind int

const (
	// OperandLiteral is a hex literal.
	OperandLiteral OperandKind = iota
	// OperandAlias refers to an alias by name.
	OperandAlias
)

// Operand is a literal or an alias reference.
type Operand struct {
	Kind OperandKind
	// Text is the hex digits of a literal or the name of an alias.
	Text string
}

// Literal returns a hex literal operand.
func Literal(hex string) Operand {
	return Operand{Kind: OperandLiteral, Text: hex}
}

// AliasRef returns an operand referring to alias name.
func AliasRef(name string) Operand {
	return Operand{Kind: OperandAlias, Text: name}
}

// AliasDef binds Name to the hex literal Value.
type AliasDef struct {
	Name  string
	Value string
}

// LabelDef binds Name to the current memory counter.
type LabelDef struct {
	Name string
}

// ZeroOp is an instruction without operands.
type ZeroOp struct {
	Mnemonic string
}

// OneOp is an instruction with one operand.
type OneOp struct {
	Mnemonic string
	Operand  Operand
}

// TwoOp is an instruction with two operands.
type TwoOp struct {
	Mnemonic string
	A, B     Operand
}

// JumpToLabel is a jump whose address is filled in when labels are resolved.
type JumpToLabel struct {
	Mnemonic string
	Label    string
}

func (AliasDef) Kind() Kind    { return KindAlias }
func (LabelDef) Kind() Kind    { return KindLabel }
func (ZeroOp) Kind() Kind      { return KindZeroOp }
func (OneOp) Kind() Kind       { return KindOneOp }
func (TwoOp) Kind() Kind       { return KindTwoOp }
func (JumpToLabel) Kind() Kind { return KindJumpToLabel }

func (AliasDef) statement()    {}
func (LabelDef) statement()    {}
func (ZeroOp) statement()      {}
func (OneOp) statement()       {}
func (TwoOp) statement()       {}
func (JumpToLabel) statement() {}
