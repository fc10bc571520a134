package png

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the closed taxonomy of ways a PNG decode can fail.
type ErrorKind int

const (
	// BadMagic means the 8-byte PNG signature did not match.
	BadMagic ErrorKind = iota
	// Truncated means a length field ran past the end of the input.
	Truncated
	// CorruptChunk means a chunk's CRC-32 did not match its type+payload.
	CorruptChunk
	// BadChunkOrder means an ordering or uniqueness rule was violated.
	BadChunkOrder
	// UnknownCritical means a critical chunk type was not recognized.
	UnknownCritical
	// BadHeader means IHDR held an invalid color/depth combination or
	// reserved enum value.
	BadHeader
	// BadPalette means PLTE/tRNS failed a length or count constraint.
	BadPalette
	// BadCompressedData means zlib inflate failed.
	BadCompressedData
	// BadFilter means a scanline's filter byte was not in {0..4}.
	BadFilter
	// PaletteIndex means a pixel's palette index was out of range.
	PaletteIndex
	// BadAncillary means a known ancillary chunk type was malformed.
	BadAncillary
)

func (k ErrorKind) String() string {
	switch k {
	case BadMagic:
		return "BadMagic"
	case Truncated:
		return "Truncated"
	case CorruptChunk:
		return "CorruptChunk"
	case BadChunkOrder:
		return "BadChunkOrder"
	case UnknownCritical:
		return "UnknownCritical"
	case BadHeader:
		return "BadHeader"
	case BadPalette:
		return "BadPalette"
	case BadCompressedData:
		return "BadCompressedData"
	case BadFilter:
		return "BadFilter"
	case PaletteIndex:
		return "PaletteIndex"
	case BadAncillary:
		return "BadAncillary"
	default:
		return "Unknown"
	}
}

// DecodeError is the error type behind every failure Decode reports. It is
// returned wrapped by github.com/pkg/errors (stack trace, optional
// message), so callers recover it with errors.As rather than a direct
// type assertion. Chunk is set only for BadAncillary and names the
// ancillary chunk type involved.
type DecodeError struct {
	Kind  ErrorKind
	Chunk string
	cause error
}

func (e *DecodeError) Error() string {
	if e.Chunk != "" {
		return fmt.Sprintf("png: %s{%s}: %v", e.Kind, e.Chunk, e.cause)
	}
	if e.cause != nil {
		return fmt.Sprintf("png: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("png: %s", e.Kind)
}

func (e *DecodeError) Unwrap() error { return e.cause }

func newErr(kind ErrorKind, cause error) error {
	return errors.WithStack(&DecodeError{Kind: kind, cause: cause})
}

func newErrf(kind ErrorKind, format string, args ...any) error {
	return errors.WithStack(&DecodeError{Kind: kind, cause: fmt.Errorf(format, args...)})
}

func newAncillaryErr(chunkType string, cause error) error {
	return errors.WithStack(&DecodeError{Kind: BadAncillary, Chunk: chunkType, cause: cause})
}
