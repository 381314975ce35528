// Package der implements spec.md §6's ASN.1 DER grammar:
// SEQUENCE { INTEGER r, INTEGER s }, the wire format ECDSA signatures are
// exchanged in.
//
// original_source/pyecsca/codegen/asn1/asn1.c is the listed out-of-scope
// collaborator (spec.md §1 excludes the transport/ASN.1 plumbing); this
// package reimplements just the three-field grammar spec.md §6 actually
// names, by hand, since pulling in a general ASN.1 library for a fixed
// two-INTEGER SEQUENCE would be disproportionate to what is needed (see
// DESIGN.md for the stdlib-use justification this entails).
package der

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
)

const (
	tagInteger  = 0x02
	tagSequence = 0x30
)

// EncodeSignature renders r and s as SEQUENCE { INTEGER r, INTEGER s },
// per spec.md §6 and its scenario 6: encode(r=1, s=1) ==
// 30 06 02 01 01 02 01 01.
func EncodeSignature(r, s *bigint.Int) []byte {
	rEnc := encodeInteger(r)
	sEnc := encodeInteger(s)
	body := append(rEnc, sEnc...)
	return append(encodeTagLength(tagSequence, len(body)), body...)
}

// DecodeSignature parses a DER SEQUENCE{INTEGER,INTEGER} back into r, s.
func DecodeSignature(data []byte) (r, s *bigint.Int, err error) {
	tag, body, rest, err := readTLV(data)
	if err != nil {
		return nil, nil, err
	}
	if tag != tagSequence || len(rest) != 0 {
		return nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "not a DER SEQUENCE")
	}
	rTag, rBytes, afterR, err := readTLV(body)
	if err != nil {
		return nil, nil, err
	}
	if rTag != tagInteger {
		return nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "expected INTEGER, got tag 0x%02x", rTag)
	}
	sTag, sBytes, afterS, err := readTLV(afterR)
	if err != nil {
		return nil, nil, err
	}
	if sTag != tagInteger || len(afterS) != 0 {
		return nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "expected trailing INTEGER, got tag 0x%02x", sTag)
	}
	return bigint.FromBytes(rBytes), bigint.FromBytes(sBytes), nil
}

// encodeInteger renders one non-negative INTEGER value: minimal
// big-endian bytes, with a leading 0x00 prepended iff the top bit of the
// first byte would otherwise be set (the standard DER sign-extension
// rule for encoding unsigned quantities as a signed INTEGER).
func encodeInteger(v *bigint.Int) []byte {
	raw := v.ToBin()
	if len(raw) == 0 {
		raw = []byte{0x00}
	}
	if raw[0]&0x80 != 0 {
		raw = append([]byte{0x00}, raw...)
	}
	return append(encodeTagLength(tagInteger, len(raw)), raw...)
}

// encodeTagLength renders a tag byte followed by a DER length: short form
// for lengths under 128, else the long form (a length-of-length byte with
// the high bit set, followed by the big-endian length itself).
func encodeTagLength(tag byte, length int) []byte {
	if length < 128 {
		return []byte{tag, byte(length)}
	}
	lenBytes := bigint.FromUint64(uint64(length)).ToBin()
	out := make([]byte, 0, 2+len(lenBytes))
	out = append(out, tag, 0x80|byte(len(lenBytes)))
	out = append(out, lenBytes...)
	return out
}

// readTLV reads one tag-length-value element from the front of data,
// returning the tag, the value bytes, and whatever remains after it.
func readTLV(data []byte) (tag byte, value []byte, rest []byte, err error) {
	if len(data) < 2 {
		return 0, nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "DER element truncated")
	}
	tag = data[0]
	length, lenSize, err := readLength(data[1:])
	if err != nil {
		return 0, nil, nil, err
	}
	start := 1 + lenSize
	if len(data) < start+length {
		return 0, nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "DER element truncated")
	}
	return tag, data[start : start+length], data[start+length:], nil
}

// readLength reads a DER length field, returning the decoded length and
// how many bytes the length field itself occupied.
func readLength(data []byte) (length int, size int, err error) {
	if len(data) == 0 {
		return 0, 0, bserrors.Wrapf(bserrors.ErrInvalidInput, "DER length truncated")
	}
	first := data[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}
	numBytes := int(first & 0x7f)
	if numBytes == 0 || len(data) < 1+numBytes {
		return 0, 0, bserrors.Wrapf(bserrors.ErrInvalidInput, "DER long-form length truncated")
	}
	length = 0
	for _, b := range data[1 : 1+numBytes] {
		length = length<<8 | int(b)
	}
	return length, 1 + numBytes, nil
}
