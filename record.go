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
	"io"
)

const (
	shortRecordMaxLen = 255
	maxTypeLength     = 255
	maxIDLength       = 255
)

// Record is a single NDEF record. Records are immutable once built: they are
// produced either by RecordBuilder.Build or by DecodeRecord, and own their
// byte buffers.
type Record struct {
	typ     []byte
	id      []byte
	payload []byte
	flags   RecordFlags
	tnf     TNF
}

// Flags returns the record's behavioral flags (MB/ME/SR/IL). The TNF bits
// of the wire header are never part of this value.
func (r *Record) Flags() RecordFlags { return r.flags }

// TNF returns the record's Type Name Format.
func (r *Record) TNF() TNF { return r.tnf }

// Type returns a copy of the record's type field bytes.
func (r *Record) Type() []byte { return bytes.Clone(r.typ) }

// ID returns a copy of the record's ID field bytes, or nil when no ID is
// present.
func (r *Record) ID() []byte { return bytes.Clone(r.id) }

// Payload returns a copy of the record's payload bytes.
func (r *Record) Payload() []byte { return bytes.Clone(r.payload) }

// Marshal serializes the record. chain carries the caller-decided MB/ME bits
// for the record's position within its message; they replace any MB/ME state
// stored on the record. SR and IL are used as determined at build or decode
// time, and CF is never emitted.
func (r *Record) Marshal(chain RecordFlags) []byte {
	flags := r.flags.Clear(FlagMB | FlagME | FlagCF)
	flags = flags.Set(chain & (FlagMB | FlagME))

	header := byte(flags) | (byte(r.tnf) & tnfMask)

	buf := make([]byte, 0, 7+len(r.typ)+len(r.id)+len(r.payload))
	buf = append(buf, header, byte(len(r.typ)))

	if flags.Has(FlagSR) {
		buf = append(buf, byte(len(r.payload)))
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(r.payload)))
	}

	if flags.Has(FlagIL) {
		buf = append(buf, byte(len(r.id)))
	}

	buf = append(buf, r.typ...)
	buf = append(buf, r.id...)
	buf = append(buf, r.payload...)

	return buf
}

// DecodeRecord consumes exactly one record from the reader, leaving the
// cursor positioned at the byte after it. A record whose CF flag is set is
// accepted structurally, but chunked continuations are never reassembled.
func DecodeRecord(rd *bytes.Reader) (*Record, error) {
	header, err := rd.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing record header", ErrIncompleteRecord)
	}

	tnf, err := ParseTNF(header & tnfMask)
	if err != nil {
		return nil, err
	}
	wireFlags := RecordFlags(header &^ tnfMask)

	typeLen, err := rd.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing type length", ErrInvalidRecordType)
	}

	payloadLen, err := readPayloadLength(rd, wireFlags.Has(FlagSR))
	if err != nil {
		return nil, err
	}

	var idLen byte
	if wireFlags.Has(FlagIL) {
		idLen, err = rd.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: missing ID length", ErrInvalidID)
		}
	}

	typ, err := readField(rd, int(typeLen), ErrInvalidRecordType, "type")
	if err != nil {
		return nil, err
	}
	id, err := readField(rd, int(idLen), ErrInvalidID, "ID")
	if err != nil {
		return nil, err
	}
	payload, err := readField(rd, int(payloadLen), ErrInvalidPayload, "payload")
	if err != nil {
		return nil, err
	}

	if tnf == TNFEmpty && (len(typ) > 0 || len(id) > 0 || len(payload) > 0) {
		return nil, fmt.Errorf("%w: TNF Empty record carries data", ErrInvalidEmptyRecord)
	}

	return &Record{
		// CF is dropped from the stored flags: chunking is not supported,
		// so re-encoding a decoded chunk yields a plain record.
		flags:   wireFlags & (FlagMB | FlagME | FlagSR | FlagIL),
		tnf:     tnf,
		typ:     typ,
		id:      id,
		payload: payload,
	}, nil
}

// readPayloadLength reads the payload length field: one byte for short
// records, four bytes little-endian otherwise.
func readPayloadLength(rd *bytes.Reader, short bool) (uint32, error) {
	if short {
		b, err := rd.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: missing payload length", ErrInvalidPayload)
		}
		return uint32(b), nil
	}

	var lenBytes [4]byte
	if _, err := io.ReadFull(rd, lenBytes[:]); err != nil {
		return 0, fmt.Errorf("%w: missing long payload length", ErrInvalidPayload)
	}
	return binary.LittleEndian.Uint32(lenBytes[:]), nil
}

// readField reads exactly n bytes, failing with the field's sentinel error
// on a short read. Returns nil for n == 0.
func readField(rd *bytes.Reader, n int, sentinel error, field string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd, buf); err != nil {
		return nil, fmt.Errorf("%w: short read on %s field", sentinel, field)
	}
	return buf, nil
}

// RecordBuilder accumulates record fields before a single fallible Build.
// All validation is deferred to Build; the intermediate state cannot be
// inspected.
type RecordBuilder struct {
	typ     []byte
	id      []byte
	payload []byte
	tnf     TNF
}

// NewRecordBuilder returns a builder for a single NDEF record.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// TNF sets the record's Type Name Format.
func (b *RecordBuilder) TNF(tnf TNF) *RecordBuilder {
	b.tnf = tnf
	return b
}

// Payload takes the record type and payload bytes from a payload adapter.
func (b *RecordBuilder) Payload(p RecordPayload) *RecordBuilder {
	return b.RawPayload(p.RecordType(), p.PayloadBytes())
}

// RawPayload sets the record type and payload bytes directly.
func (b *RecordBuilder) RawPayload(recordType, payload []byte) *RecordBuilder {
	b.typ = recordType
	b.payload = payload
	return b
}

// ID sets the record's optional ID field.
func (b *RecordBuilder) ID(id []byte) *RecordBuilder {
	b.id = id
	return b
}

// Build validates the accumulated fields and returns an immutable record.
// The SR flag is derived from the payload length (short when it fits one
// byte) and cannot be overridden; IL is set when an ID is present.
func (b *RecordBuilder) Build() (*Record, error) {
	if b.tnf > TNFReserved {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidTNF, byte(b.tnf))
	}
	if b.tnf == TNFEmpty && (len(b.typ) > 0 || len(b.id) > 0 || len(b.payload) > 0) {
		return nil, fmt.Errorf("%w: TNF Empty record must carry no type, ID or payload",
			ErrInvalidEmptyRecord)
	}
	if len(b.typ) > maxTypeLength {
		return nil, fmt.Errorf("%w: type field is %d bytes, limit %d",
			ErrInvalidRecordType, len(b.typ), maxTypeLength)
	}
	if len(b.id) > maxIDLength {
		return nil, fmt.Errorf("%w: ID field is %d bytes, limit %d",
			ErrInvalidID, len(b.id), maxIDLength)
	}

	var flags RecordFlags
	if len(b.payload) <= shortRecordMaxLen {
		flags = flags.Set(FlagSR)
	}
	if len(b.id) > 0 {
		flags = flags.Set(FlagIL)
	}

	return &Record{
		flags:   flags,
		tnf:     b.tnf,
		typ:     bytes.Clone(b.typ),
		id:      bytes.Clone(b.id),
		payload: bytes.Clone(b.payload),
	}, nil
}
