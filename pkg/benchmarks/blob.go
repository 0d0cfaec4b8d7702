package benchmarks

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// BlobEncoding tags how every string in a binary blob is encoded. A single
// blob uses exactly one encoding for all of its items.
type BlobEncoding string

const (
	// EncodingBase64 marks standard base64 with padding.
	EncodingBase64 BlobEncoding = "base64"
	// EncodingHex marks hex pairs, upper or lower case.
	EncodingHex BlobEncoding = "hex"
)

// UnmarshalJSON rejects any encoding other than the two known tags, so a new
// provider encoding surfaces as a schema error instead of a decode failure
// later on.
func (e *BlobEncoding) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch BlobEncoding(s) {
	case EncodingBase64, EncodingHex:
		*e = BlobEncoding(s)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlobEncoding, s)
	}
}

// BinaryBlob carries the transport-encoded signed update messages of a
// benchmarks response. Item order is significant: it matches the order of
// the parsed feeds it accompanies.
type BinaryBlob struct {
	Encoding BlobEncoding `json:"encoding"`
	Data     []string     `json:"data"`
}

// Decode converts every item of the blob to raw bytes, preserving order.
// Decoding is all or nothing: the first malformed item aborts the whole
// operation with its index and no partial result is returned.
func (b BinaryBlob) Decode() ([][]byte, error) {
	decoded := make([][]byte, 0, len(b.Data))
	for i, datum := range b.Data {
		var (
			raw []byte
			err error
		)
		switch b.Encoding {
		case EncodingBase64:
			raw, err = base64.StdEncoding.DecodeString(datum)
		case EncodingHex:
			raw, err = hex.DecodeString(datum)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBlobEncoding, b.Encoding)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: data[%d]: %v", ErrMalformedBlobItem, i, err)
		}
		decoded = append(decoded, raw)
	}
	return decoded, nil
}
