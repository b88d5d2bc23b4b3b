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

import "fmt"

// Capability container constants for Type 2 tags.
const (
	// NDEFMagic is the first capability container byte of an NDEF-formatted
	// tag.
	NDEFMagic = 0xE1
	// NDEFVersion is the mapping version written by the builder (1.0).
	NDEFVersion = 0x10

	// defaultAccess grants full read access and no write access.
	defaultAccess = 0x0F

	// memoryUnitSize is the granularity of the capability container's size
	// byte.
	memoryUnitSize = 8
	// maxSizeUnits is the largest data area the capability container's
	// one-byte size field can declare, in 8-byte units. It keeps the data
	// area under the 2048-byte Type 2 ceiling.
	maxSizeUnits = 0xFF

	ccSize = 4
)

// Type2Tag is a Type 2 tag memory image: a 4-byte capability container
// followed by a stream of TLV entries. No Terminator entry is appended
// automatically; add one explicitly when the consuming reader requires it.
type Type2Tag struct {
	tlvs []TLV
	// sizeUnits is kept wider than the capability container's size byte so
	// an oversized declared capacity fails in Bytes instead of wrapping.
	sizeUnits int
	version   byte
	access    byte
}

// Version returns the tag's mapping version byte.
func (t *Type2Tag) Version() byte { return t.version }

// Access returns the tag's raw access byte, (read<<4)|write. No access
// semantics are interpreted.
func (t *Type2Tag) Access() byte { return t.access }

// Capacity returns the declared data area size in 8-byte units.
func (t *Type2Tag) Capacity() int { return t.sizeUnits }

// CapacityBytes returns the declared data area size in bytes.
func (t *Type2Tag) CapacityBytes() int { return t.sizeUnits * memoryUnitSize }

// TLVs returns the tag's TLV entries in order.
func (t *Type2Tag) TLVs() []TLV { return t.tlvs }

// Bytes serializes the tag image: the capability container followed by the
// concatenated TLV entries. It fails when the declared capacity does not fit
// the capability container's one-byte size field or when the TLV stream does
// not fit the declared capacity.
func (t *Type2Tag) Bytes() ([]byte, error) {
	if t.sizeUnits > maxSizeUnits {
		return nil, fmt.Errorf("%w: declared capacity %d bytes does not fit the capability container size byte (max %d)",
			ErrInvalidMemorySize, t.CapacityBytes(), maxSizeUnits*memoryUnitSize)
	}

	var body []byte
	for _, tlv := range t.tlvs {
		b, err := tlv.Bytes()
		if err != nil {
			return nil, err
		}
		body = append(body, b...)
	}

	if len(body) > t.CapacityBytes() {
		return nil, fmt.Errorf("%w: %d bytes of TLV data exceed declared capacity %d",
			ErrInvalidMemorySize, len(body), t.CapacityBytes())
	}

	buf := make([]byte, 0, ccSize+len(body))
	buf = append(buf, NDEFMagic, t.version, byte(t.sizeUnits), t.access)
	return append(buf, body...), nil
}

// NDEFMessages decodes every NDEF Message TLV entry on the tag.
func (t *Type2Tag) NDEFMessages() ([]*Message, error) {
	var msgs []*Message
	for _, tlv := range t.tlvs {
		if tlv.Type() != TLVTypeNDEFMessage {
			continue
		}
		msg, err := DecodeMessage(tlv.Value())
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// ParseType2Tag decodes a tag image produced by Type2Tag.Bytes or read from
// tag memory. The capability container must carry the NDEF magic byte; the
// TLV stream is decoded up to a Terminator entry if one is present.
func ParseType2Tag(data []byte) (*Type2Tag, error) {
	if len(data) < ccSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a capability container",
			ErrInvalidTag, len(data))
	}
	if data[0] != NDEFMagic {
		return nil, fmt.Errorf("%w: capability container magic 0x%02X, want 0x%02X",
			ErrInvalidTag, data[0], NDEFMagic)
	}

	tlvs, err := decodeTLVs(data[ccSize:])
	if err != nil {
		return nil, err
	}

	return &Type2Tag{
		version:   data[1],
		sizeUnits: int(data[2]),
		access:    data[3],
		tlvs:      tlvs,
	}, nil
}

// Type2TagBuilder accumulates a capability container and an ordered list of
// TLV entries. Validation happens in Type2Tag.Bytes, not while building.
type Type2TagBuilder struct {
	tlvs      []TLV
	sizeUnits int
	access    byte
}

// NewType2TagBuilder returns a builder with version 1.0, zero capacity and
// read-only access.
func NewType2TagBuilder() *Type2TagBuilder {
	return &Type2TagBuilder{access: defaultAccess}
}

// SizeBytes declares the data area capacity as a byte count, rounded up to
// the next 8-byte unit.
func (b *Type2TagBuilder) SizeBytes(n int) *Type2TagBuilder {
	if n <= 0 {
		b.sizeUnits = 0
		return b
	}
	b.sizeUnits = (n-1)/memoryUnitSize + 1
	return b
}

// SizeUnits declares the data area capacity directly in 8-byte units.
func (b *Type2TagBuilder) SizeUnits(n int) *Type2TagBuilder {
	b.sizeUnits = n
	return b
}

// Access sets the access byte from separate read and write nibbles.
func (b *Type2TagBuilder) Access(read, write byte) *Type2TagBuilder {
	b.access = (read << 4) | (write & 0x0F)
	return b
}

// AddTLV appends a TLV entry to the tag's data area.
func (b *Type2TagBuilder) AddTLV(tlv TLV) *Type2TagBuilder {
	b.tlvs = append(b.tlvs, tlv)
	return b
}

// Build assembles the tag image value.
func (b *Type2TagBuilder) Build() *Type2Tag {
	return &Type2Tag{
		version:   NDEFVersion,
		sizeUnits: b.sizeUnits,
		access:    b.access,
		tlvs:      b.tlvs,
	}
}
