// Package grm implements the self-describing container wrapping a compiled
// binary payload.
//
// File layout:
//
//	Offset │ Size │ Content
//	───────┼──────┼─────────────────────────────────────────
//	0x00   │ 3    │ Magic: "GRM" (0x47 0x52 0x4D)
//	0x03   │ 1    │ Format version (current: 0x01)
//	0x04   │ 2    │ Schema-ID length (little-endian uint16)
//	0x06   │ n    │ Schema-ID (UTF-8)
//	0x06+n │ 64   │ Signature slot (all zero when unsigned)
//	...    │ ...  │ Binary payload
//
// The signature slot is reserved space only: it is carried verbatim and
// never produced or verified here.
package grm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Version is the current container format version.
const Version = 0x01

// SignatureSize is the size of the signature slot in bytes.
const SignatureSize = 64

// Magic is the four-byte prefix of every container: "GRM" plus the format
// version.
var Magic = [4]byte{0x47, 0x52, 0x4D, Version}

// minHeaderSize is the smallest possible header: magic, length, empty id,
// signature slot.
const minHeaderSize = 4 + 2 + SignatureSize

// Header is the fixed-layout container header.
type Header struct {
	// SchemaID identifies the schema the payload was compiled against.
	SchemaID string

	// Signature holds the 64-byte signature when present; nil is written as
	// 64 zero bytes.
	Signature *[SignatureSize]byte
}

// NewHeader returns an unsigned header for the given schema id.
func NewHeader(schemaID string) Header {
	return Header{SchemaID: schemaID}
}

// Size returns the encoded header size in bytes.
func (h Header) Size() int {
	return 4 + 2 + len(h.SchemaID) + SignatureSize
}

// Bytes encodes the header. Building is the byte-exact inverse of ParseHeader.
func (h Header) Bytes() []byte {
	out := make([]byte, 0, h.Size())
	out = append(out, Magic[:]...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(h.SchemaID)))
	out = append(out, h.SchemaID...)
	if h.Signature != nil {
		out = append(out, h.Signature[:]...)
	} else {
		out = append(out, make([]byte, SignatureSize)...)
	}
	return out
}

// ParseHeader decodes a header from the start of data and returns it together
// with the number of bytes it occupied (the payload starts there). The exact
// minimum byte count implied by the declared id length is computed before any
// slicing, so truncated input yields InsufficientDataError rather than an
// out-of-bounds access.
func ParseHeader(data []byte) (Header, int, error) {
	if len(data) < minHeaderSize {
		return Header{}, 0, &InsufficientDataError{Expected: minHeaderSize, Received: len(data)}
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		var got [4]byte
		copy(got[:], data[0:4])
		return Header{}, 0, &InvalidMagicError{Received: got}
	}

	idLen := int(binary.LittleEndian.Uint16(data[4:6]))
	total := 4 + 2 + idLen + SignatureSize
	if len(data) < total {
		return Header{}, 0, &InsufficientDataError{Expected: total, Received: len(data)}
	}

	idBytes := data[6 : 6+idLen]
	if !utf8.Valid(idBytes) {
		return Header{}, 0, ErrInvalidSchemaID
	}

	h := Header{SchemaID: string(idBytes)}
	sig := data[6+idLen : total]
	if !allZero(sig) {
		h.Signature = new([SignatureSize]byte)
		copy(h.Signature[:], sig)
	}
	return h, total, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// InsufficientDataError reports truncated container bytes.
type InsufficientDataError struct {
	Expected int
	Received int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("grm: insufficient data: expected %d bytes, received %d", e.Expected, e.Received)
}

// InvalidMagicError reports a container that does not start with Magic.
type InvalidMagicError struct {
	Received [4]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("grm: invalid magic bytes % 02X (expected % 02X)", e.Received[:], Magic[:])
}

// ErrInvalidSchemaID reports a schema id that is not valid UTF-8.
var ErrInvalidSchemaID = errors.New("grm: schema id is not valid UTF-8")
