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
	"mime"
	"unicode/utf8"
)

// RecordPayload is the contract between payload adapters and the record
// codec. The codec only ever consumes the two derived byte sequences; the
// typed payload value stays outside the core.
type RecordPayload interface {
	// RecordType returns the record type field bytes for this payload kind.
	RecordType() []byte
	// PayloadBytes returns the serialized payload field.
	PayloadBytes() []byte
}

// URIPayload is the well-known "U" record payload: a single abbreviation
// code byte followed by the remaining URI text.
type URIPayload struct {
	uri    string
	abbrev URIAbbrev
}

// NewURIPayload builds a URI payload, compressing the URI with the first
// matching entry of the abbreviation table.
func NewURIPayload(uri string) *URIPayload {
	abbrev, rest := guessURIAbbrev(uri)
	return &URIPayload{abbrev: abbrev, uri: rest}
}

// NewURIPayloadWithAbbrev builds a URI payload from an explicit abbreviation
// and the already-stripped remainder. No prefix matching is performed.
func NewURIPayloadWithAbbrev(abbrev URIAbbrev, uri string) *URIPayload {
	return &URIPayload{abbrev: abbrev, uri: uri}
}

// URIPayloadFromRecord reconstructs a URI payload from a decoded record.
// The record must be WellKnown/"U"; an abbreviation code outside the table
// is treated as no abbreviation.
func URIPayloadFromRecord(rec *Record) (*URIPayload, error) {
	if rec.TNF() != TNFWellKnown {
		return nil, fmt.Errorf("%w: URI record requires TNF WellKnown, got %s",
			ErrInvalidTNF, rec.TNF())
	}
	if !bytes.Equal(rec.Type(), []byte(RTDURI)) {
		return nil, fmt.Errorf("%w: not a URI record", ErrInvalidRecordType)
	}

	payload := rec.Payload()
	if len(payload) < 1 {
		return nil, fmt.Errorf("%w: URI payload missing abbreviation byte", ErrInvalidPayload)
	}

	abbrev, ok := LookupURIAbbrev(payload[0])
	if !ok {
		abbrev = URIAbbrevNone
	}
	if !utf8.Valid(payload[1:]) {
		return nil, fmt.Errorf("%w: URI is not valid UTF-8", ErrInvalidEncoding)
	}

	return &URIPayload{abbrev: abbrev, uri: string(payload[1:])}, nil
}

// Abbreviation returns the payload's abbreviation table entry.
func (p *URIPayload) Abbreviation() URIAbbrev { return p.abbrev }

// URI returns the URI remainder after the abbreviated prefix.
func (p *URIPayload) URI() string { return p.uri }

// FullURI reconstructs the complete URI with the abbreviated prefix
// restored.
func (p *URIPayload) FullURI() string {
	if p.abbrev.Code == URIAbbrevNone.Code {
		return p.uri
	}
	return p.abbrev.Prefix + p.uri
}

// RecordType implements RecordPayload.
func (p *URIPayload) RecordType() []byte { return []byte(RTDURI) }

// PayloadBytes implements RecordPayload.
func (p *URIPayload) PayloadBytes() []byte {
	buf := make([]byte, 1+len(p.uri))
	buf[0] = p.abbrev.Code
	copy(buf[1:], p.uri)
	return buf
}

// TextPayload is the well-known "T" record payload carrying plain UTF-8
// text.
type TextPayload struct {
	text string
}

// NewTextPayload builds a text payload.
func NewTextPayload(text string) *TextPayload {
	return &TextPayload{text: text}
}

// TextPayloadFromRecord reconstructs a text payload from a decoded record.
// The record must be WellKnown/"T" with valid UTF-8 payload bytes.
func TextPayloadFromRecord(rec *Record) (*TextPayload, error) {
	if rec.TNF() != TNFWellKnown {
		return nil, fmt.Errorf("%w: text record requires TNF WellKnown, got %s",
			ErrInvalidTNF, rec.TNF())
	}
	if !bytes.Equal(rec.Type(), []byte(RTDText)) {
		return nil, fmt.Errorf("%w: not a text record", ErrInvalidRecordType)
	}
	if !utf8.Valid(rec.Payload()) {
		return nil, fmt.Errorf("%w: text payload is not valid UTF-8", ErrInvalidEncoding)
	}
	return &TextPayload{text: string(rec.Payload())}, nil
}

// Text returns the payload text.
func (p *TextPayload) Text() string { return p.text }

// RecordType implements RecordPayload.
func (p *TextPayload) RecordType() []byte { return []byte(RTDText) }

// PayloadBytes implements RecordPayload.
func (p *TextPayload) PayloadBytes() []byte { return []byte(p.text) }

// SmartPosterPayload is the well-known "Sp" record payload. The inner bytes
// are an embedded NDEF message, carried opaquely.
type SmartPosterPayload struct {
	data []byte
}

// NewSmartPosterPayload builds a smart poster payload from raw inner bytes.
func NewSmartPosterPayload(data []byte) *SmartPosterPayload {
	return &SmartPosterPayload{data: bytes.Clone(data)}
}

// SmartPosterPayloadFromRecord reconstructs a smart poster payload from a
// decoded record. The record must be WellKnown/"Sp".
func SmartPosterPayloadFromRecord(rec *Record) (*SmartPosterPayload, error) {
	if rec.TNF() != TNFWellKnown {
		return nil, fmt.Errorf("%w: smart poster record requires TNF WellKnown, got %s",
			ErrInvalidTNF, rec.TNF())
	}
	if !bytes.Equal(rec.Type(), []byte(RTDSmartPoster)) {
		return nil, fmt.Errorf("%w: not a smart poster record", ErrInvalidRecordType)
	}
	return &SmartPosterPayload{data: bytes.Clone(rec.Payload())}, nil
}

// Data returns the embedded message bytes.
func (p *SmartPosterPayload) Data() []byte { return p.data }

// RecordType implements RecordPayload.
func (p *SmartPosterPayload) RecordType() []byte { return []byte(RTDSmartPoster) }

// PayloadBytes implements RecordPayload.
func (p *SmartPosterPayload) PayloadBytes() []byte { return p.data }

// ExternalPayload is an NFC Forum external type payload: an application
// chosen "domain:type" record type with opaque payload bytes.
type ExternalPayload struct {
	recordType []byte
	payload    []byte
}

// NewExternalPayload builds an external payload from raw type and payload
// bytes.
func NewExternalPayload(recordType, payload []byte) *ExternalPayload {
	return &ExternalPayload{
		recordType: bytes.Clone(recordType),
		payload:    bytes.Clone(payload),
	}
}

// ExternalPayloadFromRecord reconstructs an external payload from a decoded
// record. Only the TNF is checked; the type field is application-defined.
func ExternalPayloadFromRecord(rec *Record) (*ExternalPayload, error) {
	if rec.TNF() != TNFExternal {
		return nil, fmt.Errorf("%w: external record requires TNF External, got %s",
			ErrInvalidTNF, rec.TNF())
	}
	return &ExternalPayload{
		recordType: bytes.Clone(rec.Type()),
		payload:    bytes.Clone(rec.Payload()),
	}, nil
}

// RecordType implements RecordPayload.
func (p *ExternalPayload) RecordType() []byte { return p.recordType }

// PayloadBytes implements RecordPayload.
func (p *ExternalPayload) PayloadBytes() []byte { return p.payload }

// MIMEPayload is a MimeMedia record payload: a MIME media type as the
// record type with opaque payload bytes.
type MIMEPayload struct {
	mediaType string
	payload   []byte
}

// NewMIMEPayload builds a MIME payload. The media type must parse per RFC
// 1521 (e.g. "application/json").
func NewMIMEPayload(mediaType string, payload []byte) (*MIMEPayload, error) {
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMime, mediaType, err)
	}
	return &MIMEPayload{mediaType: parsed, payload: bytes.Clone(payload)}, nil
}

// MIMEPayloadFromRecord reconstructs a MIME payload from a decoded record.
// The record must have TNF MimeMedia and a parseable media type.
func MIMEPayloadFromRecord(rec *Record) (*MIMEPayload, error) {
	if rec.TNF() != TNFMimeMedia {
		return nil, fmt.Errorf("%w: MIME record requires TNF MimeMedia, got %s",
			ErrInvalidTNF, rec.TNF())
	}
	if !utf8.Valid(rec.Type()) {
		return nil, fmt.Errorf("%w: media type is not valid UTF-8", ErrInvalidEncoding)
	}
	parsed, _, err := mime.ParseMediaType(string(rec.Type()))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMime, string(rec.Type()), err)
	}
	return &MIMEPayload{mediaType: parsed, payload: bytes.Clone(rec.Payload())}, nil
}

// MediaType returns the parsed MIME media type.
func (p *MIMEPayload) MediaType() string { return p.mediaType }

// RecordType implements RecordPayload.
func (p *MIMEPayload) RecordType() []byte { return []byte(p.mediaType) }

// PayloadBytes implements RecordPayload.
func (p *MIMEPayload) PayloadBytes() []byte { return p.payload }
