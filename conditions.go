package fount

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fount-one/fount/bech32"
	"github.com/fount-one/fount/errors"
)

var (
	// AddressLength is the length of all addresses. It must not change
	// during the lifetime of a store.
	AddressLength = 20

	// AddressHRP is the human readable part used for bech32 encoded
	// addresses.
	AddressHRP = "fount"

	// (?s) is required so that condition data containing a newline
	// still matches.
	perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,10})/([a-zA-Z0-9_\-]{3,10})/(.+)$`)
)

// Condition is a specially formatted byte array describing the origin
// of an address. It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse extracts the sections from the condition bytes and verifies it
// is properly formatted.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address converts a condition into its one-way digest.
func (c Condition) Address() Address {
	if len(c) == 0 {
		return nil
	}
	h := sha256.Sum256(c)
	return Address(h[:AddressLength])
}

func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String keeps the extension and type in ascii and hex encodes the
// binary data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

// Address represents a collision free, one way digest of a condition.
// It is always of size AddressLength.
type Address []byte

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the expected size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length: %d", len(a))
	}
	return nil
}

// String returns an uppercase hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the bech32 encoded representation using AddressHRP.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(AddressHRP, a)
}

// MarshalJSON provides a hex representation, overriding the standard
// base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}

	// If the encoded string starts with a prefix, cut it off and use
	// the specified decoding method instead of the default one.
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	if len(enc) == 0 {
		*a = nil
		return nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return errors.Wrap(err, "cannot decode hex")
		}
		if err := Address(val).Validate(); err != nil {
			return err
		}
		*a = val
		return nil
	case "bech32":
		_, payload, err := bech32.Decode(enc)
		if err != nil {
			return errors.Wrapf(err, "deserialize bech32: %s", err)
		}
		if err := Address(payload).Validate(); err != nil {
			return err
		}
		*a = payload
		return nil
	default:
		return errors.Wrapf(errors.ErrType, "unknown format %q", chunks[0])
	}
}
