// Package principal defines the opaque caller identity used for every
// authorization decision in KeyWarden. A principal is a 20-byte address,
// comparable by value; the zero value is a sentinel that is invalid wherever
// an active identity is required.
package principal

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/dkovalenko/keywarden/internal/common"
	"golang.org/x/crypto/sha3"
)

// Size is the length of a principal address in bytes.
const Size = 20

// Principal is a 20-byte account address.
type Principal [Size]byte

// Zero is the null principal. It never identifies an account.
var Zero Principal

// IsZero reports whether p is the null principal.
func (p Principal) IsZero() bool {
	return p == Zero
}

// String returns the canonical lower-case hex form, "0x"-prefixed.
func (p Principal) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// Compare orders principals lexicographically by address bytes.
func (p Principal) Compare(other Principal) int {
	return bytes.Compare(p[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse decodes a hex address, with or without the "0x" prefix.
// Anything that is not exactly 20 bytes of hex yields ErrInvalidPrincipal.
func Parse(s string) (Principal, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != Size {
		return Zero, common.ErrInvalidPrincipal
	}
	var p Principal
	copy(p[:], b)
	return p, nil
}

// FromBytes builds a principal from a raw 20-byte slice.
func FromBytes(b []byte) (Principal, error) {
	if len(b) != Size {
		return Zero, common.ErrInvalidPrincipal
	}
	var p Principal
	copy(p[:], b)
	return p, nil
}

// FromPublicKey derives the address from an uncompressed 65-byte public key
// (0x04-prefixed): the last 20 bytes of the Keccak-256 hash of the key body.
func FromPublicKey(pub []byte) (Principal, error) {
	if len(pub) != 65 || pub[0] != 0x04 {
		return Zero, common.ErrInvalidPrincipal
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(pub[1:])
	sum := h.Sum(nil)
	return FromBytes(sum[len(sum)-Size:])
}
