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

// TNF is the 3-bit Type Name Format field of an NDEF record header.
type TNF byte

// TNF values per the NDEF specification
const (
	TNFEmpty       TNF = 0x00
	TNFWellKnown   TNF = 0x01
	TNFMimeMedia   TNF = 0x02
	TNFAbsoluteURI TNF = 0x03
	TNFExternal    TNF = 0x04
	TNFUnknown     TNF = 0x05
	TNFUnchanged   TNF = 0x06
	TNFReserved    TNF = 0x07
)

// ParseTNF maps a raw byte to a TNF value. Any value outside the eight
// defined TNF codes is rejected with ErrInvalidTNF; there is no default
// fallback variant.
func ParseTNF(b byte) (TNF, error) {
	if b > byte(TNFReserved) {
		return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidTNF, b)
	}
	return TNF(b), nil
}

// String returns a human-readable name for the TNF value.
func (t TNF) String() string {
	switch t {
	case TNFEmpty:
		return "Empty"
	case TNFWellKnown:
		return "WellKnown"
	case TNFMimeMedia:
		return "MimeMedia"
	case TNFAbsoluteURI:
		return "AbsoluteURI"
	case TNFExternal:
		return "External"
	case TNFUnknown:
		return "Unknown"
	case TNFUnchanged:
		return "Unchanged"
	case TNFReserved:
		return "Reserved"
	default:
		return fmt.Sprintf("TNF(0x%02X)", byte(t))
	}
}

// RecordFlags is the high 5 bits of an NDEF record header byte. The low 3
// TNF bits share the same wire byte but are kept separate in memory.
type RecordFlags byte

// NDEF record header flags
const (
	// FlagMB marks the first record of a message (Message Begin).
	FlagMB RecordFlags = 0x80
	// FlagME marks the last record of a message (Message End).
	FlagME RecordFlags = 0x40
	// FlagCF marks a chunked record continuation. Never set on encode;
	// chunk reassembly is not supported.
	FlagCF RecordFlags = 0x20
	// FlagSR marks a short record whose payload length fits one byte.
	FlagSR RecordFlags = 0x10
	// FlagIL marks that the ID length field is present.
	FlagIL RecordFlags = 0x08

	// tnfMask selects the TNF bits of the header byte.
	tnfMask = 0x07
)

// Has reports whether all bits of f are set.
func (r RecordFlags) Has(f RecordFlags) bool {
	return r&f == f
}

// Set returns r with the bits of f set.
func (r RecordFlags) Set(f RecordFlags) RecordFlags {
	return r | f
}

// Clear returns r with the bits of f cleared.
func (r RecordFlags) Clear(f RecordFlags) RecordFlags {
	return r &^ f
}

// Well-known Record Type Definition (RTD) names, compared against a decoded
// record's type field by byte equality.
const (
	RTDText        = "T"
	RTDURI         = "U"
	RTDSmartPoster = "Sp"
)

// URIAbbrev is one entry of the URI abbreviation table: a single-byte code
// standing in for a common URI prefix. Entries are compared by code only.
type URIAbbrev struct {
	Prefix string
	Code   byte
}

// Named abbreviations used by the builder API. The full table is below.
var (
	URIAbbrevNone     = URIAbbrev{Code: 0x00, Prefix: ""}
	URIAbbrevHTTPWWW  = URIAbbrev{Code: 0x01, Prefix: "http://www."}
	URIAbbrevHTTPSWWW = URIAbbrev{Code: 0x02, Prefix: "https://www."}
	URIAbbrevHTTP     = URIAbbrev{Code: 0x03, Prefix: "http://"}
	URIAbbrevHTTPS    = URIAbbrev{Code: 0x04, Prefix: "https://"}
)

// uriAbbreviations is the URI abbreviation table from the NFC Forum URI RTD.
// Order matters: abbreviation guessing takes the first matching prefix, so
// "https://www." (0x02) wins over "https://" (0x04).
var uriAbbreviations = []URIAbbrev{
	{Code: 0x00, Prefix: ""},
	{Code: 0x01, Prefix: "http://www."},
	{Code: 0x02, Prefix: "https://www."},
	{Code: 0x03, Prefix: "http://"},
	{Code: 0x04, Prefix: "https://"},
	{Code: 0x05, Prefix: "tel:"},
	{Code: 0x06, Prefix: "mailto:"},
	{Code: 0x07, Prefix: "ftp://anonymous:anonymous@"},
	{Code: 0x08, Prefix: "ftp://ftp."},
	{Code: 0x09, Prefix: "ftps://"},
	{Code: 0x0A, Prefix: "sftp://"},
	{Code: 0x0B, Prefix: "smb://"},
	{Code: 0x0C, Prefix: "nfs://"},
	{Code: 0x0D, Prefix: "ftp://"},
	{Code: 0x0E, Prefix: "dav://"},
	{Code: 0x0F, Prefix: "news:"},
	{Code: 0x10, Prefix: "telnet://"},
	{Code: 0x11, Prefix: "imap:"},
	{Code: 0x12, Prefix: "rtsp://"},
	{Code: 0x13, Prefix: "urn:"},
	{Code: 0x14, Prefix: "pop:"},
	{Code: 0x15, Prefix: "sip:"},
	{Code: 0x16, Prefix: "sips:"},
	{Code: 0x17, Prefix: "tftp:"},
	{Code: 0x18, Prefix: "btspp://"},
	{Code: 0x19, Prefix: "btl2cap://"},
	{Code: 0x1A, Prefix: "btgoep://"},
	{Code: 0x1B, Prefix: "tcpobex://"},
	{Code: 0x1C, Prefix: "irdaobex://"},
	{Code: 0x1D, Prefix: "file://"},
	{Code: 0x1E, Prefix: "urn:epc:id:"},
	{Code: 0x1F, Prefix: "urn:epc:tag:"},
	{Code: 0x20, Prefix: "urn:epc:pat:"},
	{Code: 0x21, Prefix: "urn:epc:raw:"},
	{Code: 0x22, Prefix: "urn:epc:"},
	{Code: 0x23, Prefix: "urn:nfc:"},
}

// LookupURIAbbrev returns the abbreviation table entry for a code. The
// second return value is false for codes outside the table.
func LookupURIAbbrev(code byte) (URIAbbrev, bool) {
	if int(code) >= len(uriAbbreviations) {
		return URIAbbrev{}, false
	}
	return uriAbbreviations[code], true
}

// guessURIAbbrev finds the first table entry whose prefix starts the URI and
// returns it together with the remaining URI. The empty prefix of the None
// entry is skipped so it never shadows real prefixes.
func guessURIAbbrev(uri string) (URIAbbrev, string) {
	for _, abbr := range uriAbbreviations {
		if abbr.Code == URIAbbrevNone.Code {
			continue
		}
		if len(uri) >= len(abbr.Prefix) && uri[:len(abbr.Prefix)] == abbr.Prefix {
			return abbr, uri[len(abbr.Prefix):]
		}
	}
	return URIAbbrevNone, uri
}
