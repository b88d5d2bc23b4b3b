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
	"fmt"
)

// Message is an ordered sequence of NDEF records. Chain flags (MB/ME) are
// computed per position during Marshal, not persisted on the stored records.
type Message struct {
	records []*Record
}

// NewMessage creates a message from zero or more records.
func NewMessage(records ...*Record) *Message {
	m := &Message{records: make([]*Record, 0, len(records))}
	m.records = append(m.records, records...)
	return m
}

// AddRecord appends a record to the message.
func (m *Message) AddRecord(rec *Record) {
	m.records = append(m.records, rec)
}

// Records returns the message's records in order.
func (m *Message) Records() []*Record {
	return m.records
}

// chainFlags returns the MB/ME bits for the record at index in a message of
// total records: both set on a single record, MB on the first of several,
// ME on the last, neither in between.
func chainFlags(index, total int) RecordFlags {
	var flags RecordFlags
	if index == 0 {
		flags = flags.Set(FlagMB)
	}
	if index == total-1 {
		flags = flags.Set(FlagME)
	}
	return flags
}

// Marshal serializes the message by concatenating its records with the
// chain flags their position dictates. A message with no records is not a
// valid wire message and is rejected.
func (m *Message) Marshal() ([]byte, error) {
	if len(m.records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidMessage)
	}

	var buf []byte
	for i, rec := range m.records {
		buf = append(buf, rec.Marshal(chainFlags(i, len(m.records)))...)
	}
	return buf, nil
}

// DecodeMessage parses a buffer holding a complete NDEF message. Records are
// decoded from the front until the input is exhausted; MB must appear only
// on the first record and ME must be set on the record that consumes the
// final byte. Chunked records (CF set on the wire) are returned unmerged.
func DecodeMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidMessage)
	}

	rd := bytes.NewReader(data)
	var records []*Record
	for {
		rec, err := DecodeRecord(rd)
		if err != nil {
			return nil, err
		}
		if rec.Flags().Has(FlagMB) && len(records) > 0 {
			return nil, fmt.Errorf("%w: MB flag set on record %d",
				ErrInvalidFlags, len(records))
		}
		records = append(records, rec)

		if rd.Len() == 0 {
			if !rec.Flags().Has(FlagME) {
				return nil, fmt.Errorf("%w: ME flag not set on final record",
					ErrInvalidFlags)
			}
			break
		}
	}

	return &Message{records: records}, nil
}
