package store

import "github.com/fxamacker/cbor/v2"

// encodeStream wraps raw per the store's DefaultEncoding: EncodingText
// stores it verbatim; EncodingBinary wraps it in a minimal CBOR envelope,
// so a binary-oriented backing store (or one billed by byte count) isn't
// forced to hold a second, JSON-shaped copy of the same bytes.
func encodeStream(enc Encoding, raw []byte) ([]byte, error) {
	if enc != EncodingBinary {
		return raw, nil
	}
	return cbor.Marshal(raw)
}

// decodeStream reverses encodeStream.
func decodeStream(enc Encoding, data []byte) ([]byte, error) {
	if enc != EncodingBinary {
		return data, nil
	}
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformedEvent
	}
	return raw, nil
}
