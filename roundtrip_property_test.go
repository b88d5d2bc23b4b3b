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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestPropertyMessageRoundTrip generates random multi-record messages and
// checks decode(encode(m)) preserves every record's TNF, type, ID and
// payload, plus the positional chain flags.
func TestPropertyMessageRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		tnfs := []TNF{
			TNFWellKnown, TNFMimeMedia, TNFAbsoluteURI, TNFExternal, TNFUnknown,
		}

		count := rapid.IntRange(1, 6).Draw(t, "count")
		records := make([]*Record, 0, count)
		for i := 0; i < count; i++ {
			builder := NewRecordBuilder().
				TNF(rapid.SampledFrom(tnfs).Draw(t, "tnf")).
				RawPayload(
					rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "type"),
					rapid.SliceOfN(rapid.Byte(), 0, 600).Draw(t, "payload"),
				)
			if rapid.Bool().Draw(t, "withID") {
				builder = builder.ID(rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(t, "id"))
			}
			rec, err := builder.Build()
			require.NoError(t, err)
			records = append(records, rec)
		}

		data, err := NewMessage(records...).Marshal()
		require.NoError(t, err)

		decoded, err := DecodeMessage(data)
		require.NoError(t, err)
		got := decoded.Records()
		require.Len(t, got, count)

		for i, rec := range got {
			want := records[i]
			assert.Equal(t, want.TNF(), rec.TNF())
			assert.Equal(t, want.Type(), rec.Type())
			assert.Equal(t, want.ID(), rec.ID())
			assert.Equal(t, want.Payload(), rec.Payload())
			assert.Equal(t, chainFlags(i, count),
				rec.Flags()&(FlagMB|FlagME))
		}
	})
}

// TestPropertyShortRecordFlag checks the SR flag tracks the payload length
// boundary exactly.
func TestPropertyShortRecordFlag(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1024).Draw(t, "payloadLen")
		rec, err := NewRecordBuilder().
			TNF(TNFUnknown).
			RawPayload(nil, make([]byte, n)).
			Build()
		require.NoError(t, err)

		assert.Equal(t, n <= 255, rec.Flags().Has(FlagSR))

		decoded, err := DecodeRecord(bytes.NewReader(rec.Marshal(FlagMB | FlagME)))
		require.NoError(t, err)
		assert.Equal(t, n <= 255, decoded.Flags().Has(FlagSR))
		assert.Len(t, decoded.Payload(), n)
	})
}

// TestPropertyTLVRoundTrip generates random value-carrying TLV entries and
// checks the byte form decodes back to the same entry.
func TestPropertyTLVRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		value := rapid.SliceOfN(rapid.Byte(), 0, 2000).Draw(t, "value")
		tlv := ProprietaryTLV(value)

		encoded, err := tlv.Bytes()
		require.NoError(t, err)

		decoded, err := decodeTLVs(encoded)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.Equal(t, TLVTypeProprietary, decoded[0].Type())
		if len(value) == 0 {
			assert.Empty(t, decoded[0].Value())
		} else {
			assert.Equal(t, value, decoded[0].Value())
		}
	})
}
