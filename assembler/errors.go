package assembler

import "errors"

var (
	// ErrUndefinedAlias is returned when an operand names an alias that has not been defined yet.
	ErrUndefinedAlias = errors.New("undefined alias")
	// ErrUndefinedLabel is returned by Resolve when a jump names a label that was never defined.
	ErrUndefinedLabel = errors.New("undefined label")
	// ErrUnknownMnemonic is returned for a mnemonic missing from the instruction table.
	ErrUnknownMnemonic = errors.New("unknown instruction")
	// ErrShapeMismatch is returned when a known mnemonic is used with the wrong number or kind of operands.
	ErrShapeMismatch = errors.New("mnemonic does not take this form")
	// ErrMalformedLiteral is returned for a literal that does not parse as base 16.
	ErrMalformedLiteral = errors.New("malformed literal")
	// ErrResolved is returned when statements are added after labels were resolved.
	ErrResolved = errors.New("labels already resolved")
	// ErrUnresolved is returned when an image is requested before labels were resolved.
	ErrUnresolved = errors.New("labels not resolved")
)
