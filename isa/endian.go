package isa

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
)

const (
	// WordNibbles is the number of hex digits in one machine word.
	WordNibbles = 6
	// WordBytes is the size of one machine word in an image.
	WordBytes = WordNibbles / 2
)

var (
	// ErrPartialWord is returned when an image does not hold a whole number of words.
	ErrPartialWord = errors.New("partial word")
	// ErrWordWidth is returned for hex text that is not exactly one machine word.
	ErrWordWidth = errors.New("not a machine word")
)

// WordsToBytes converts a slice of 24-bit words to a big-endian byte slice.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordBytes)
	for i, w := range words {
		out[i*WordBytes] = byte(w >> 16)
		out[i*WordBytes+1] = byte(w >> 8)
		out[i*WordBytes+2] = byte(w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 24-bit words.
func BytesToWords(b []byte) ([]uint32, error) {
	if len(b)%WordBytes != 0 {
		return nil, fmt.Errorf("%d bytes: %w", len(b), ErrPartialWord)
	}
	out := make([]uint32, len(b)/WordBytes)
	for i := range out {
		p := b[i*WordBytes:]
		out[i] = uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	}
	return out, nil
}

// HexToBytes decodes a contiguous stream of hex digits into an image.
func HexToBytes(s string) ([]byte, error) {
	if len(s)%WordNibbles != 0 {
		return nil, fmt.Errorf("%d nibbles: %w", len(s), ErrPartialWord)
	}
	return hex.DecodeString(s)
}

// ParseWord reads exactly WordNibbles hex digits as one machine word.
func ParseWord(s string) (uint32, error) {
	if len(s) != WordNibbles {
		return 0, fmt.Errorf("%q has %d nibbles: %w", s, len(s), ErrWordWidth)
	}
	w, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrWordWidth)
	}
	return uint32(w), nil
}
