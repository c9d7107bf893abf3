package attach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// GroupTag marks the start of an indexed-signature attachment group.
const GroupTag = "-AAD"

// IndexedSig pairs a signing-key position with the Cigar produced at that
// position.
type IndexedSig struct {
	Index int
	Cigar xcrypto.Cigar
}

// BuildGroup renders sigs as a "-AAD" indexed signature group: the tag,
// a 2-hex-digit uppercase count, then index-code+qb64 for each signature in
// order.
func BuildGroup(sigs []IndexedSig) (string, error) {
	if len(sigs) > 0xFF {
		return "", ErrTruncatedGroup
	}
	var b strings.Builder
	b.WriteString(GroupTag)
	fmt.Fprintf(&b, "%02X", len(sigs))
	for _, s := range sigs {
		idxCode, err := encodeIndex(s.Index)
		if err != nil {
			return "", err
		}
		b.WriteString(idxCode)
		b.WriteString(s.Cigar.Qb64)
	}
	return b.String(), nil
}

// SignedStream joins event bytes and their attachment group the way the
// wire form requires it: event bytes, a newline, then the group.
func SignedStream(eventBytes []byte, group string) []byte {
	out := make([]byte, 0, len(eventBytes)+1+len(group))
	out = append(out, eventBytes...)
	out = append(out, '\n')
	out = append(out, group...)
	return out
}

// ParseCesrStream locates the first "-AAD" token in data and splits it into
// the leading event slice and the trailing signature-group slice. A
// preceding "\n" or "\r\n" right before the tag is stripped from the event
// slice. If no group is present, the whole input is returned as the event
// slice.
func ParseCesrStream(data []byte) (event []byte, sigGroup []byte) {
	idx := strings.Index(string(data), GroupTag)
	if idx < 0 {
		return data, nil
	}
	end := idx
	if end >= 2 && data[end-2] == '\r' && data[end-1] == '\n' {
		end -= 2
	} else if end >= 1 && data[end-1] == '\n' {
		end -= 1
	}
	return data[:end], data[idx:]
}

// ParseIndexedSignatures decodes a "-AAD" group back into its signatures.
func ParseIndexedSignatures(group []byte) ([]IndexedSig, error) {
	s := string(group)
	if !strings.HasPrefix(s, GroupTag) {
		return nil, ErrNotIndexedGroup
	}
	s = s[len(GroupTag):]
	if len(s) < 2 {
		return nil, ErrTruncatedGroup
	}
	count, err := strconv.ParseInt(s[:2], 16, 32)
	if err != nil {
		return nil, ErrTruncatedGroup
	}
	s = s[2:]

	out := make([]IndexedSig, 0, count)
	for i := int64(0); i < count; i++ {
		idx, width, err := decodeIndex(s)
		if err != nil {
			return nil, err
		}
		s = s[width:]
		if len(s) < 88 {
			return nil, ErrTruncatedGroup
		}
		sigQb64 := s[:88]
		s = s[88:]
		cigar, err := xcrypto.ParseCigar(sigQb64)
		if err != nil {
			return nil, err
		}
		out = append(out, IndexedSig{Index: idx, Cigar: cigar})
	}
	return out, nil
}
