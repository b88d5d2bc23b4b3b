// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ndeftag

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// TLVType identifies a TLV entry in Type 2 tag memory.
type TLVType byte

// TLV type constants per the NFC Forum Type 2 Tag specification
const (
	TLVTypeNull          TLVType = 0x00 // padding byte, no length field
	TLVTypeLockControl   TLVType = 0x01 // lock bit positions
	TLVTypeMemoryControl TLVType = 0x02 // reserved memory areas
	TLVTypeNDEFMessage   TLVType = 0x03 // NDEF message data
	TLVTypeProprietary   TLVType = 0xFD // proprietary data
	TLVTypeTerminator    TLVType = 0xFE // end of data area, no length field
)

// tlvLongLengthMarker introduces the 3-byte length form.
const tlvLongLengthMarker = 0xFF

// maxTLVValueLength is the largest value the 2-byte long length form can
// describe.
const maxTLVValueLength = 0xFFFF

// TLV is a single Type-Length-Value entry. NULL and Terminator entries carry
// no length byte and no value; all other entries carry a length-prefixed
// value, which may be empty.
type TLV struct {
	value    []byte
	typ      TLVType
	hasValue bool
}

// NullTLV returns a NULL padding entry.
func NullTLV() TLV {
	return TLV{typ: TLVTypeNull}
}

// TerminatorTLV returns a Terminator entry marking the end of the data area.
func TerminatorTLV() TLV {
	return TLV{typ: TLVTypeTerminator}
}

// LockControlTLV returns a Lock Control entry with the given value bytes.
func LockControlTLV(value []byte) TLV {
	return TLV{typ: TLVTypeLockControl, value: bytes.Clone(value), hasValue: true}
}

// MemoryControlTLV returns a Memory Control entry with the given value bytes.
func MemoryControlTLV(value []byte) TLV {
	return TLV{typ: TLVTypeMemoryControl, value: bytes.Clone(value), hasValue: true}
}

// ProprietaryTLV returns a Proprietary entry with the given value bytes.
func ProprietaryTLV(value []byte) TLV {
	return TLV{typ: TLVTypeProprietary, value: bytes.Clone(value), hasValue: true}
}

// MessageTLV returns an NDEF Message entry holding already-serialized
// message bytes. An empty value is legal and still writes a length byte.
func MessageTLV(value []byte) TLV {
	return TLV{typ: TLVTypeNDEFMessage, value: bytes.Clone(value), hasValue: true}
}

// NDEFMessageTLV serializes a message and wraps it in an NDEF Message entry.
func NDEFMessageTLV(msg *Message) (TLV, error) {
	value, err := msg.Marshal()
	if err != nil {
		return TLV{}, err
	}
	return TLV{typ: TLVTypeNDEFMessage, value: value, hasValue: true}, nil
}

// Type returns the entry's tag byte.
func (t TLV) Type() TLVType { return t.typ }

// Value returns the entry's value bytes. NULL and Terminator entries have
// none.
func (t TLV) Value() []byte { return t.value }

// Bytes serializes the entry: the tag byte, then (for value-carrying types)
// a 1-byte length for values shorter than 0xFF or the 3-byte form 0xFF +
// little-endian uint16, then the value verbatim.
func (t TLV) Bytes() ([]byte, error) {
	buf := []byte{byte(t.typ)}
	if !t.hasValue {
		return buf, nil
	}

	n := len(t.value)
	switch {
	case n < tlvLongLengthMarker:
		buf = append(buf, byte(n))
	case n <= maxTLVValueLength:
		buf = append(buf, tlvLongLengthMarker)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(n))
	default:
		return nil, fmt.Errorf("%w: TLV value is %d bytes, limit %d",
			ErrInvalidMemorySize, n, maxTLVValueLength)
	}

	return append(buf, t.value...), nil
}

// decodeTLVs parses a stream of TLV entries. Decoding stops after a
// Terminator entry (which is included in the result); trailing bytes beyond
// it are ignored, matching how readers treat the data area.
func decodeTLVs(data []byte) ([]TLV, error) {
	var tlvs []TLV

	offset := 0
	for offset < len(data) {
		typ := TLVType(data[offset])
		offset++

		switch typ {
		case TLVTypeNull:
			tlvs = append(tlvs, NullTLV())
			continue
		case TLVTypeTerminator:
			return append(tlvs, TerminatorTLV()), nil
		}

		value, next, err := decodeTLVValue(data, offset)
		if err != nil {
			return nil, err
		}
		tlvs = append(tlvs, TLV{typ: typ, value: value, hasValue: true})
		offset = next
	}

	return tlvs, nil
}

// decodeTLVValue reads the length field and value of a value-carrying entry
// starting at offset, returning the value and the offset after it.
func decodeTLVValue(data []byte, offset int) (value []byte, next int, err error) {
	if offset >= len(data) {
		return nil, 0, fmt.Errorf("%w: missing TLV length", ErrInvalidTag)
	}

	length := int(data[offset])
	offset++
	if length == tlvLongLengthMarker {
		if offset+2 > len(data) {
			return nil, 0, fmt.Errorf("%w: incomplete TLV long length", ErrInvalidTag)
		}
		length = int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2
	}

	if offset+length > len(data) {
		return nil, 0, fmt.Errorf("%w: TLV value of %d bytes exceeds remaining data",
			ErrInvalidTag, length)
	}

	return bytes.Clone(data[offset : offset+length]), offset + length, nil
}
