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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIPayload_AbbrevGuessing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri      string
		rest     string
		fullURI  string
		wantCode byte
	}{
		{uri: "https://www.sina.com.cn", wantCode: 0x02, rest: "sina.com.cn", fullURI: "https://www.sina.com.cn"},
		{uri: "http://www.supwisdom.com", wantCode: 0x01, rest: "supwisdom.com", fullURI: "http://www.supwisdom.com"},
		{uri: "https://zaparoo.org", wantCode: 0x04, rest: "zaparoo.org", fullURI: "https://zaparoo.org"},
		{uri: "tel:+123456", wantCode: 0x05, rest: "+123456", fullURI: "tel:+123456"},
		{uri: "weixin://dl/business", wantCode: 0x00, rest: "weixin://dl/business", fullURI: "weixin://dl/business"},
		// "urn:" precedes "urn:nfc:" in the table, so first-match wins.
		{uri: "urn:nfc:sn", wantCode: 0x13, rest: "nfc:sn", fullURI: "urn:nfc:sn"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.uri, func(t *testing.T) {
			t.Parallel()
			p := NewURIPayload(tt.uri)
			assert.Equal(t, tt.wantCode, p.Abbreviation().Code)
			assert.Equal(t, tt.rest, p.URI())
			assert.Equal(t, tt.fullURI, p.FullURI())
		})
	}
}

func TestURIPayload_PayloadBytes(t *testing.T) {
	t.Parallel()

	p := NewURIPayload("https://www.sina.com.cn")
	assert.Equal(t, append([]byte{0x02}, []byte("sina.com.cn")...), p.PayloadBytes())
	assert.Equal(t, []byte("U"), p.RecordType())
}

func TestLookupURIAbbrev(t *testing.T) {
	t.Parallel()

	abbrev, ok := LookupURIAbbrev(0x05)
	require.True(t, ok)
	assert.Equal(t, "tel:", abbrev.Prefix)

	abbrev, ok = LookupURIAbbrev(0x23)
	require.True(t, ok)
	assert.Equal(t, "urn:nfc:", abbrev.Prefix)

	_, ok = LookupURIAbbrev(0x24)
	assert.False(t, ok)
}

// TestURIPayloadFromRecord_UnknownCode checks that a reserved abbreviation
// code falls back to no abbreviation instead of failing.
func TestURIPayloadFromRecord_UnknownCode(t *testing.T) {
	t.Parallel()

	rec, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		RawPayload([]byte(RTDURI), append([]byte{0x7F}, []byte("example.org")...)).
		Build()
	require.NoError(t, err)

	p, err := URIPayloadFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, URIAbbrevNone, p.Abbreviation())
	assert.Equal(t, "example.org", p.FullURI())
}

func TestURIPayloadFromRecord_Invalid(t *testing.T) {
	t.Parallel()

	empty, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		RawPayload([]byte(RTDURI), nil).
		Build()
	require.NoError(t, err)
	_, err = URIPayloadFromRecord(empty)
	require.ErrorIs(t, err, ErrInvalidPayload)

	badUTF8, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		RawPayload([]byte(RTDURI), []byte{0x00, 0xFF, 0xFE}).
		Build()
	require.NoError(t, err)
	_, err = URIPayloadFromRecord(badUTF8)
	require.ErrorIs(t, err, ErrInvalidEncoding)

	text, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewTextPayload("hi")).
		Build()
	require.NoError(t, err)
	_, err = URIPayloadFromRecord(text)
	require.ErrorIs(t, err, ErrInvalidRecordType)
}

func TestTextPayload(t *testing.T) {
	t.Parallel()

	rec, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewTextPayload("héllo")).
		Build()
	require.NoError(t, err)

	p, err := TextPayloadFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "héllo", p.Text())

	bad, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		RawPayload([]byte(RTDText), []byte{0xFF, 0xFE}).
		Build()
	require.NoError(t, err)
	_, err = TextPayloadFromRecord(bad)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestSmartPosterPayload(t *testing.T) {
	t.Parallel()

	inner, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewURIPayload("https://zaparoo.org")).
		Build()
	require.NoError(t, err)
	innerBytes, err := NewMessage(inner).Marshal()
	require.NoError(t, err)

	rec, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewSmartPosterPayload(innerBytes)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, []byte("Sp"), rec.Type())

	p, err := SmartPosterPayloadFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, innerBytes, p.Data())

	// The embedded bytes stay a decodable message.
	msg, err := DecodeMessage(p.Data())
	require.NoError(t, err)
	require.Len(t, msg.Records(), 1)
}

func TestExternalPayload(t *testing.T) {
	t.Parallel()

	rec, err := NewRecordBuilder().
		TNF(TNFExternal).
		Payload(NewExternalPayload([]byte("zaparoo.org:card"), []byte{0x01})).
		Build()
	require.NoError(t, err)

	p, err := ExternalPayloadFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte("zaparoo.org:card"), p.RecordType())
	assert.Equal(t, []byte{0x01}, p.PayloadBytes())

	wrongTNF, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewTextPayload("hi")).
		Build()
	require.NoError(t, err)
	_, err = ExternalPayloadFromRecord(wrongTNF)
	require.ErrorIs(t, err, ErrInvalidTNF)
}

func TestMIMEPayload(t *testing.T) {
	t.Parallel()

	p, err := NewMIMEPayload("application/json; charset=utf-8", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "application/json", p.MediaType())

	_, err = NewMIMEPayload("not a media type", nil)
	require.ErrorIs(t, err, ErrInvalidMime)

	rec, err := NewRecordBuilder().
		TNF(TNFMimeMedia).
		Payload(p).
		Build()
	require.NoError(t, err)

	decoded, err := MIMEPayloadFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "application/json", decoded.MediaType())
	assert.Equal(t, []byte(`{}`), decoded.PayloadBytes())

	badType, err := NewRecordBuilder().
		TNF(TNFMimeMedia).
		RawPayload([]byte("nosubtype"), nil).
		Build()
	require.NoError(t, err)
	_, err = MIMEPayloadFromRecord(badType)
	require.ErrorIs(t, err, ErrInvalidMime)
}

func TestDecodePayload_Dispatch(t *testing.T) {
	t.Parallel()

	uriRec, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		Payload(NewURIPayload("https://zaparoo.org")).
		Build()
	require.NoError(t, err)
	p, err := DecodePayload(uriRec)
	require.NoError(t, err)
	uri, ok := p.(*URIPayload)
	require.True(t, ok)
	assert.Equal(t, "https://zaparoo.org", uri.FullURI())

	extRec, err := NewRecordBuilder().
		TNF(TNFExternal).
		RawPayload([]byte("zaparoo.org:card"), []byte{0x01}).
		Build()
	require.NoError(t, err)
	p, err = DecodePayload(extRec)
	require.NoError(t, err)
	_, ok = p.(*ExternalPayload)
	assert.True(t, ok)

	// WellKnown with an unregistered type has no fallback decoder.
	unknown, err := NewRecordBuilder().
		TNF(TNFWellKnown).
		RawPayload([]byte("Xx"), []byte{0x01}).
		Build()
	require.NoError(t, err)
	_, err = DecodePayload(unknown)
	require.ErrorIs(t, err, ErrInvalidRecordType)
}

// customPayload exercises third-party decoder registration.
type customPayload struct {
	data []byte
}

func (p *customPayload) RecordType() []byte   { return []byte("zaparoo.org:custom") }
func (p *customPayload) PayloadBytes() []byte { return p.data }

func TestRegisterPayloadDecoder(t *testing.T) {
	t.Parallel()

	RegisterPayloadDecoder(TNFExternal, "zaparoo.org:custom",
		func(rec *Record) (RecordPayload, error) {
			return &customPayload{data: rec.Payload()}, nil
		})

	rec, err := NewRecordBuilder().
		TNF(TNFExternal).
		RawPayload([]byte("zaparoo.org:custom"), []byte{0xCA, 0xFE}).
		Build()
	require.NoError(t, err)

	p, err := DecodePayload(rec)
	require.NoError(t, err)
	custom, ok := p.(*customPayload)
	require.True(t, ok, "exact match takes priority over the TNF fallback")
	assert.Equal(t, []byte{0xCA, 0xFE}, custom.PayloadBytes())
}
