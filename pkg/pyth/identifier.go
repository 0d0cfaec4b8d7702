package pyth

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// IdentifierLength is the byte length of a price feed identifier.
const IdentifierLength = 32

// PriceIdentifier is the stable 32-byte key naming one price feed.
type PriceIdentifier [IdentifierLength]byte

// ParsePriceIdentifier parses a hex-encoded feed identifier, with or without
// a 0x prefix.
func ParsePriceIdentifier(s string) (PriceIdentifier, error) {
	var id PriceIdentifier

	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return id, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	if len(raw) != IdentifierLength {
		return id, fmt.Errorf("%w: got %d", ErrInvalidIdentifierLength, len(raw))
	}

	copy(id[:], raw)
	return id, nil
}

// String returns the canonical lowercase hex form without a prefix.
func (id PriceIdentifier) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalJSON implements json.Marshaler.
func (id PriceIdentifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *PriceIdentifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParsePriceIdentifier(s)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
